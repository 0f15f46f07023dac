package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"gonum.org/v1/plot/vg"

	"TreeScope/internal/config"
	"TreeScope/internal/explorer"
	"TreeScope/internal/model"
	"TreeScope/internal/recorder"
	"TreeScope/internal/render"
	"TreeScope/internal/report"
	"TreeScope/internal/scheduler"
	"TreeScope/internal/source"
	"TreeScope/internal/state"
)

const usage = `Usage:
  treescope ls <file.root> [tree]
  treescope draw -file f.root -tree T -branch B [-bins N] [-min X -max Y] [-fit gaus] [-cut "B > 1"]
  treescope draw2d -file f.root -tree T -x X -y Y [-bins N] [-cut "B > 1"]
  treescope save [-o histogram.png]
  treescope history [-n 20]
  treescope watch

Environment:
  TREESCOPE_CONFIG      config file (default configs/treescope.yaml)
  TREESCOPE_VIEW_DIR    also write every drawn plot as PNG into this directory
  RUN_ON_START=true     watch: run every job once before waiting for cron
`

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfgPath := "configs/treescope.yaml"
	if v := os.Getenv("TREESCOPE_CONFIG"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "ls":
		err = runLs(args)
	case "draw":
		err = runDraw(cfg, args)
	case "draw2d":
		err = runDraw2D(cfg, args)
	case "save":
		err = runSave(cfg, args)
	case "history":
		err = runHistory(cfg, args)
	case "watch":
		err = runWatch(cfg)
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("[FATAL] %s: %v", cmd, err)
	}
}

func runLs(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("ls needs a file")
	}
	f, err := explorer.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if len(args) == 1 {
		fmt.Print(report.FormatKeys(f.Path, f.Keys()))
		return nil
	}
	t, err := f.Get(args[1])
	if err != nil {
		return err
	}
	fmt.Print(report.FormatTree(t))
	return nil
}

func runDraw(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	file := fs.String("file", "", "ROOT file (required)")
	tree := fs.String("tree", cfg.Draw.Tree, "tree key")
	branch := fs.String("branch", "", "branch to histogram (required)")
	bins := fs.Int("bins", cfg.Draw.Bins, "number of bins")
	xmin := fs.Float64("min", 0, "lower edge of the range (0 with -max 0 means data min/max)")
	xmax := fs.Float64("max", 0, "upper edge of the range")
	fit := fs.String("fit", "", `fit model: "" or "gaus"`)
	cutExpr := fs.String("cut", "", `selection, e.g. "pt > 20"`)
	fs.Parse(args)
	if *file == "" || *tree == "" || *branch == "" {
		return fmt.Errorf("-file, -tree and -branch are required")
	}

	f, t, err := openTree(cfg, *file, *tree)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := t.Draw(*branch, explorer.DrawOptions{
		Bins:  *bins,
		Range: model.Range{Min: *xmin, Max: *xmax},
		Fit:   model.FitKind(*fit),
		Cut:   *cutExpr,
	})
	if err != nil {
		return err
	}
	fmt.Print(report.FormatDrawSummary(res))

	if err := state.Save(cfg.State.File, &state.File{Source: *file, Tree: *tree, Plot: t.PlotState()}); err != nil {
		log.Printf("[WARN] save plot state: %v", err)
	}
	record(cfg, func(rec recorder.Recorder, runID string) error {
		return rec.RecordDraw(&recorder.DrawEvent{RunID: runID, Source: *file, Tree: *tree, Result: res})
	})
	return nil
}

func runDraw2D(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("draw2d", flag.ExitOnError)
	file := fs.String("file", "", "ROOT file (required)")
	tree := fs.String("tree", cfg.Draw.Tree, "tree key")
	x := fs.String("x", "", "x branch (required)")
	y := fs.String("y", "", "y branch (required)")
	bins := fs.Int("bins", cfg.Draw.Bins2D, "number of bins per axis")
	xmin := fs.Float64("xmin", 0, "x range lower edge")
	xmax := fs.Float64("xmax", 0, "x range upper edge")
	ymin := fs.Float64("ymin", 0, "y range lower edge")
	ymax := fs.Float64("ymax", 0, "y range upper edge")
	cutExpr := fs.String("cut", "", `selection, e.g. "pt > 20"`)
	fs.Parse(args)
	if *file == "" || *tree == "" || *x == "" || *y == "" {
		return fmt.Errorf("-file, -tree, -x and -y are required")
	}

	f, t, err := openTree(cfg, *file, *tree)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := t.Draw2D(*x, *y, explorer.Draw2DOptions{
		Bins:   *bins,
		XRange: model.Range{Min: *xmin, Max: *xmax},
		YRange: model.Range{Min: *ymin, Max: *ymax},
		Cut:    *cutExpr,
	})
	if err != nil {
		return err
	}
	fmt.Print(report.FormatDrawSummary(res))
	record(cfg, func(rec recorder.Recorder, runID string) error {
		return rec.RecordDraw(&recorder.DrawEvent{RunID: runID, Source: *file, Tree: *tree, Result: res})
	})
	return nil
}

func runSave(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	out := fs.String("o", cfg.Output.Image, "image file")
	fs.Parse(args)

	st, err := state.Load(cfg.State.File)
	if err != nil {
		return err
	}
	t := explorer.NewTree(source.NewMemTree(st.Tree), explorer.WithImageSize(imageSize(cfg)))
	if st.Plot != nil {
		t.Restore(st.Plot)
	}
	path, err := t.SaveHistogram(*out)
	if err != nil || path == "" {
		return err
	}
	fmt.Println(path)
	record(cfg, func(rec recorder.Recorder, runID string) error {
		return rec.RecordSave(&recorder.SaveEvent{RunID: runID, Label: st.Plot.Label, Path: path})
	})
	return nil
}

func runHistory(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	n := fs.Int("n", 20, "number of draws to show")
	fs.Parse(args)

	rec, err := openSQLite(cfg.Database.SQLitePath)
	if err != nil {
		return err
	}
	defer rec.Close()
	records, err := rec.RecentDraws(*n)
	if err != nil {
		return err
	}
	fmt.Print(report.FormatHistory(records))
	return nil
}

func runWatch(cfg *config.Config) error {
	if len(cfg.Jobs) == 0 {
		return fmt.Errorf("no jobs configured")
	}
	rec := openRecorder(cfg)
	defer rec.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, h := imageSize(cfg)
	sched := scheduler.NewScheduler(ctx, cfg.Jobs, rec, w, h)
	if err := sched.RegisterAll(); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, running all jobs now")
		go sched.RunAllNow()
	}

	log.Println("[INFO] TreeScope is watching. Press Ctrl+C to stop.")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	return nil
}

func openTree(cfg *config.Config, file, key string) (*explorer.File, *explorer.Tree, error) {
	f, err := explorer.Open(file)
	if err != nil {
		return nil, nil, err
	}
	w, h := imageSize(cfg)
	t, err := f.Get(key, explorer.WithViewer(viewer(cfg)), explorer.WithImageSize(w, h))
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, t, nil
}

// viewer previews plots on a terminal and writes PNGs when a view directory is set.
func viewer(cfg *config.Config) render.Viewer {
	var vs render.MultiViewer
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		vs = append(vs, render.NewTermViewer(os.Stdout))
	}
	if cfg.Output.ViewDir != "" {
		dv := render.NewDirViewer(cfg.Output.ViewDir)
		dv.Width, dv.Height = imageSize(cfg)
		vs = append(vs, dv)
	}
	return vs
}

func imageSize(cfg *config.Config) (vg.Length, vg.Length) {
	return vg.Length(cfg.Output.WidthIn) * vg.Inch, vg.Length(cfg.Output.HeightIn) * vg.Inch
}

func openSQLite(path string) (*recorder.SQLiteRecorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return recorder.NewSQLiteRecorder(path)
}

func openRecorder(cfg *config.Config) recorder.Recorder {
	sr, err := openSQLite(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

// record runs fn against a freshly opened recorder under a new run id.
func record(cfg *config.Config, fn func(rec recorder.Recorder, runID string) error) {
	rec := openRecorder(cfg)
	defer rec.Close()
	if err := fn(rec, recorder.NewRunID()); err != nil {
		log.Printf("[ERROR] record history: %v", err)
	}
}
