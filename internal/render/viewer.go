package render

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"

	"TreeScope/internal/model"
)

// DefaultWidth and DefaultHeight match a 640x480 figure at 100 dpi.
const (
	DefaultWidth  = 6.4 * vg.Inch
	DefaultHeight = 4.8 * vg.Inch
)

// Figure is a rendered plot handed to a Viewer.
type Figure struct {
	Name  string
	Title string
	Plot  *hplot.Plot

	// Counts and Range describe 1D histograms for text previews; nil for 2D.
	Counts []float64
	Range  model.Range
}

// Viewer displays a figure.
type Viewer interface {
	Show(fig *Figure) error
}

// NopViewer shows nothing.
type NopViewer struct{}

func (NopViewer) Show(*Figure) error { return nil }

// MultiViewer shows a figure on every viewer in turn.
type MultiViewer []Viewer

func (m MultiViewer) Show(fig *Figure) error {
	for _, v := range m {
		if err := v.Show(fig); err != nil {
			return err
		}
	}
	return nil
}

// DirViewer writes every figure it is shown to a PNG file under Dir.
type DirViewer struct {
	Dir    string
	Width  vg.Length
	Height vg.Length
}

// NewDirViewer creates a DirViewer; an empty dir means the OS temp directory.
func NewDirViewer(dir string) *DirViewer {
	if dir == "" {
		dir = os.TempDir()
	}
	return &DirViewer{Dir: dir, Width: DefaultWidth, Height: DefaultHeight}
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

func (v *DirViewer) Show(fig *Figure) error {
	if err := os.MkdirAll(v.Dir, 0755); err != nil {
		return fmt.Errorf("create view dir: %w", err)
	}
	name := unsafeName.ReplaceAllString(fig.Name, "_")
	path := filepath.Join(v.Dir, name+".png")
	if err := Save(fig.Plot, path, v.Width, v.Height); err != nil {
		return err
	}
	log.Printf("[INFO] plot written to %s", path)
	return nil
}

// FileViewer writes every figure it is shown to the same path.
type FileViewer struct {
	Path   string
	Width  vg.Length
	Height vg.Length
}

func (v *FileViewer) Show(fig *Figure) error {
	if dir := filepath.Dir(v.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return Save(fig.Plot, v.Path, v.Width, v.Height)
}

// TermViewer prints a text preview of 1D histograms.
type TermViewer struct {
	W        io.Writer
	Rows     int
	BarWidth int
}

// NewTermViewer creates a TermViewer with 20 rows of up to 50 characters.
func NewTermViewer(w io.Writer) *TermViewer {
	return &TermViewer{W: w, Rows: 20, BarWidth: 50}
}

func (v *TermViewer) Show(fig *Figure) error {
	_, err := io.WriteString(v.W, TextHistogram(fig, v.Rows, v.BarWidth))
	return err
}

// TextHistogram merges fig.Counts into at most rows rows and draws one bar per row.
func TextHistogram(fig *Figure, rows, barWidth int) string {
	var b strings.Builder
	b.WriteString(fig.Title + "\n")
	if len(fig.Counts) == 0 {
		b.WriteString("  (no 1D data)\n")
		return b.String()
	}
	if rows <= 0 || rows > len(fig.Counts) {
		rows = len(fig.Counts)
	}

	merged := make([]float64, rows)
	for i, c := range fig.Counts {
		merged[i*rows/len(fig.Counts)] += c
	}
	var max float64
	for _, c := range merged {
		if c > max {
			max = c
		}
	}

	width := (fig.Range.Max - fig.Range.Min) / float64(rows)
	for i, c := range merged {
		n := 0
		if max > 0 {
			n = int(c / max * float64(barWidth))
		}
		lo := fig.Range.Min + float64(i)*width
		fmt.Fprintf(&b, "%10.4g | %s %g\n", lo, strings.Repeat("#", n), c)
	}
	return b.String()
}
