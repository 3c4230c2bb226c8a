// Package chart persists daily series as JSON files for external plotting tools.
package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/ademuri/spotify-history-tools/internal/trend"
)

// DefaultDir is the directory charts are written to when none is configured.
const DefaultDir = "graph_data"

// pointTimeFormat matches what the plotting scripts parse.
const pointTimeFormat = "2006-01-02T15:04:05"

var ErrInvalidName = errors.New("invalid chart name")

// Point is one record of a chart file.
type Point struct {
	Date        time.Time
	AvgPlaytime float64
}

type point struct {
	Date        string
	AvgPlaytime float64
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(point{Date: p.Date.Format(pointTimeFormat), AvgPlaytime: p.AvgPlaytime})
}

// Points converts a series to chart records.
func Points(s trend.Series) []Point {
	points := make([]Point, 0, len(s))
	for _, p := range s {
		points = append(points, Point{Date: p.Date, AvgPlaytime: p.Value})
	}
	return points
}

type Writer struct {
	fs  afero.Fs
	dir string
}

func NewWriter(fs afero.Fs, dir string) *Writer {
	if dir == "" {
		dir = DefaultDir
	}
	return &Writer{fs: fs, dir: dir}
}

// Path returns the file a chart with the given name is written to.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, name+".json")
}

// Write stores the series as <dir>/<name>.json, creating dir if needed, and returns the file path.
func (w *Writer) Write(name string, s trend.Series) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	data, err := json.Marshal(Points(s))
	if err != nil {
		return "", fmt.Errorf("encoding chart %s: %w", name, err)
	}

	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", w.dir, err)
	}

	path := w.Path(name)
	if err := afero.WriteFile(w.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
