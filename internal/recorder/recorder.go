package recorder

import (
	"github.com/google/uuid"

	"TreeScope/internal/model"
)

// DrawEvent holds everything recorded about one draw.
type DrawEvent struct {
	RunID  string
	Source string // file path
	Tree   string
	Result *model.DrawResult
}

// SaveEvent records an image written by SaveHistogram.
type SaveEvent struct {
	RunID string
	Label string
	Path  string
}

// Recorder persists draw history for later comparison.
type Recorder interface {
	RecordDraw(evt *DrawEvent) error
	RecordSave(evt *SaveEvent) error
	Close() error
}

// NewRunID returns an id grouping the events of one CLI invocation or job run.
func NewRunID() string {
	return uuid.NewString()
}
