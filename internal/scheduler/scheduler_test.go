package scheduler

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TreeScope/internal/config"
	"TreeScope/internal/recorder"
	"TreeScope/internal/render"
	"TreeScope/internal/testutil"
)

func newTestScheduler(t *testing.T, ctx context.Context, jobs []config.Job) (*Scheduler, *recorder.SQLiteRecorder) {
	t.Helper()
	rec, err := recorder.NewSQLiteRecorder(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })
	return NewScheduler(ctx, jobs, rec, render.DefaultWidth, render.DefaultHeight), rec
}

func dataFile(t *testing.T) string {
	return testutil.WriteTree(t, "events",
		testutil.Column{Name: "pt", Values: []float64{12, 25, 31, 44, 58, 61, 77}},
		testutil.Column{Name: "eta", Values: []float64{0.1, 1.2, 2.8, 0.4, 1.9, 3.1, 0.7}},
	)
}

func TestRunJob_1D(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reports", "pt.png")
	job := config.Job{
		Name: "pt", Cron: "0 * * * * *", File: dataFile(t), Tree: "events",
		Branch: "pt", Bins: 10, Cut: "eta < 2", Output: out,
	}
	s, rec := newTestScheduler(t, context.Background(), []config.Job{job})

	require.NoError(t, s.RunJob(job))
	assert.FileExists(t, out)

	draws, err := rec.RecentDraws(5)
	require.NoError(t, err)
	require.Len(t, draws, 1)
	assert.Equal(t, "pt", draws[0].Label)
	assert.True(t, draws[0].CutApplied)
	assert.Equal(t, 5, draws[0].EntriesAfter)
}

func TestRunJob_2D(t *testing.T) {
	out := filepath.Join(t.TempDir(), "xy.png")
	job := config.Job{
		Name: "xy", Cron: "0 * * * * *", File: dataFile(t), Tree: "events",
		Branch: "pt", YBranch: "eta", Output: out,
	}
	s, rec := newTestScheduler(t, context.Background(), []config.Job{job})

	require.NoError(t, s.RunJob(job))
	assert.FileExists(t, out)

	draws, err := rec.RecentDraws(5)
	require.NoError(t, err)
	require.Len(t, draws, 1)
	assert.Equal(t, "eta", draws[0].YLabel)
}

func TestRunJob_MissingFile(t *testing.T) {
	job := config.Job{Name: "x", File: filepath.Join(t.TempDir(), "none.root"), Tree: "t", Branch: "b", Output: "o.png"}
	s, _ := newTestScheduler(t, context.Background(), nil)
	assert.Error(t, s.RunJob(job))
}

func TestRunAllNow_SkipsAfterCancel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pt.png")
	job := config.Job{Name: "pt", Cron: "0 * * * * *", File: dataFile(t), Tree: "events", Branch: "pt", Output: out}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, _ := newTestScheduler(t, ctx, []config.Job{job})
	s.RunAllNow()
	assert.NoFileExists(t, out)
}

func TestRegisterAll(t *testing.T) {
	jobs := []config.Job{{Name: "a", Cron: "0 */5 * * * *"}, {Name: "b", Cron: "0 0 * * * *"}}
	s, _ := newTestScheduler(t, context.Background(), jobs)
	require.NoError(t, s.RegisterAll())
	assert.Len(t, s.Cron.Entries(), 2)

	bad, _ := newTestScheduler(t, context.Background(), []config.Job{{Name: "c", Cron: "not a cron"}})
	assert.Error(t, bad.RegisterAll())
}
