package scheduler

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/robfig/cron/v3"
	"gonum.org/v1/plot/vg"

	"TreeScope/internal/config"
	"TreeScope/internal/explorer"
	"TreeScope/internal/model"
	"TreeScope/internal/recorder"
	"TreeScope/internal/render"
)

// Scheduler re-renders configured plots on cron schedules.
type Scheduler struct {
	Cron     *cron.Cron
	Jobs     []config.Job
	Recorder recorder.Recorder
	Width    vg.Length
	Height   vg.Length
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, jobs []config.Job, rec recorder.Recorder, width, height vg.Length) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Jobs:     jobs,
		Recorder: rec,
		Width:    width,
		Height:   height,
		Ctx:      ctx,
	}
}

// RegisterAll registers every job on its cron schedule.
func (s *Scheduler) RegisterAll() error {
	for _, job := range s.Jobs {
		if _, err := s.Cron.AddFunc(job.Cron, func() { s.runLogged(job) }); err != nil {
			return fmt.Errorf("register job %q: %w", job.Name, err)
		}
		log.Printf("[INFO] job %q registered: %s", job.Name, job.Cron)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunAllNow executes every job immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunAllNow() {
	for _, job := range s.Jobs {
		s.runLogged(job)
	}
}

func (s *Scheduler) runLogged(job config.Job) {
	if s.Ctx.Err() != nil {
		return
	}
	log.Printf("[INFO] running job %q", job.Name)
	if err := s.RunJob(job); err != nil {
		log.Printf("[ERROR] job %q: %v", job.Name, err)
	}
}

// RunJob opens the job's file, draws the plot, writes it to job.Output and
// records the draw and the saved image.
func (s *Scheduler) RunJob(job config.Job) error {
	f, err := explorer.Open(job.File)
	if err != nil {
		return err
	}
	defer f.Close()

	out := &render.FileViewer{Path: job.Output, Width: s.Width, Height: s.Height}
	t, err := f.Get(job.Tree, explorer.WithViewer(out), explorer.WithImageSize(s.Width, s.Height))
	if err != nil {
		return err
	}

	var res *model.DrawResult
	if job.YBranch != "" {
		res, err = t.Draw2D(job.Branch, job.YBranch, explorer.Draw2DOptions{
			Bins:   job.Bins,
			XRange: job.XRange(),
			YRange: job.YAxisRange(),
			Cut:    job.Cut,
		})
	} else {
		res, err = t.Draw(job.Branch, explorer.DrawOptions{
			Bins:  job.Bins,
			Range: job.XRange(),
			Fit:   model.FitKind(job.Fit),
			Cut:   job.Cut,
		})
	}
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	runID := recorder.NewRunID()
	if err := s.Recorder.RecordDraw(&recorder.DrawEvent{
		RunID: runID, Source: job.File, Tree: job.Tree, Result: res,
	}); err != nil {
		log.Printf("[ERROR] record draw: %v", err)
	}

	path, err := filepath.Abs(job.Output)
	if err != nil {
		path = job.Output
	}
	if err := s.Recorder.RecordSave(&recorder.SaveEvent{
		RunID: runID, Label: res.Label, Path: path,
	}); err != nil {
		log.Printf("[ERROR] record save: %v", err)
	}
	log.Printf("[INFO] job %q wrote %s (%d entries)", job.Name, path, res.EntriesAfter)
	return nil
}
