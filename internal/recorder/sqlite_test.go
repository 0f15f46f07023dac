package recorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TreeScope/internal/model"
)

func TestSQLiteRecorder(t *testing.T) {
	rec, err := NewSQLiteRecorder(":memory:")
	require.NoError(t, err)
	defer rec.Close()

	runID := NewRunID()
	require.NoError(t, rec.RecordDraw(&DrawEvent{
		RunID: runID, Source: "run.root", Tree: "events",
		Result: &model.DrawResult{
			Label: "pt", Cut: "pt > 20", CutApplied: true,
			EntriesBefore: 100, EntriesAfter: 40, Bins: 100,
			XRange: model.Range{Min: 20, Max: 90},
			Fit:    &model.FitResult{Kind: model.FitGaussian, Converged: true, Amplitude: 7, Mean: 45, Sigma: 9},
		},
	}))
	require.NoError(t, rec.RecordDraw(&DrawEvent{
		RunID: runID, Source: "run.root", Tree: "events",
		Result: &model.DrawResult{Label: "x", YLabel: "y", EntriesBefore: 10, EntriesAfter: 10, Bins: 50},
	}))
	require.NoError(t, rec.RecordSave(&SaveEvent{RunID: runID, Label: "pt", Path: "/tmp/h.png"}))

	draws, err := rec.RecentDraws(10)
	require.NoError(t, err)
	require.Len(t, draws, 2)

	assert.Equal(t, "x", draws[0].Label)
	assert.Equal(t, "y", draws[0].YLabel)
	assert.Empty(t, draws[0].FitKind)

	pt := draws[1]
	assert.Equal(t, runID, pt.RunID)
	assert.Equal(t, "pt", pt.Label)
	assert.True(t, pt.CutApplied)
	assert.Equal(t, 40, pt.EntriesAfter)
	assert.Equal(t, "gaus", pt.FitKind)
	assert.True(t, pt.FitConverged)
	assert.Equal(t, 45.0, pt.FitMean)

	draws, err = rec.RecentDraws(1)
	require.NoError(t, err)
	assert.Len(t, draws, 1)
}

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = NewNoopRecorder()
	assert.NoError(t, rec.RecordDraw(&DrawEvent{}))
	assert.NoError(t, rec.RecordSave(&SaveEvent{}))
	assert.NoError(t, rec.Close())
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
