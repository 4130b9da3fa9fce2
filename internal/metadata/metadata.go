// Package metadata reads and writes SpatialVID-HQ metadata tables.
package metadata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrMissingColumns indicates the metadata table lacks required columns.
// Use errors.Is() to distinguish it from empty-result failures downstream.
var ErrMissingColumns = errors.New("missing required columns")

// RequiredColumns lists every column the sampling pipeline reads. The
// upstream dataset uses space-separated column names; they are kept verbatim.
var RequiredColumns = []string{
	"id",
	"video path",
	"annotation path",
	"num frames",
	"fps",
	"moveDist",
	"rotAngle",
	"trajTurns",
	"motion score",
	"distLevel",
	"aesthetic score",
	"brightness",
	"timeOfDay",
	"weather",
	"sceneType",
	"motionTags",
}

// Clip is one candidate row. The raw record is carried unchanged so the
// output manifest preserves every original column; the typed fields are the
// ones the pipeline computes with. Unparseable numeric fields become NaN and
// are handled by the binner; missing categoricals are empty strings.
type Clip struct {
	raw []string

	ID             string
	VideoPath      string
	AnnotationPath string
	NumFrames      int
	FPS            float64
	Duration       float64

	MoveDist  float64
	RotAngle  float64
	TrajTurns float64

	MotionScore    float64
	DistLevel      int
	AestheticScore float64

	Brightness string
	TimeOfDay  string
	Weather    string
	SceneType  string
	MotionTags string

	// Derived by the sampling pipeline; never written to the output file.
	MoveBin string
	RotBin  string
	TurnBin string
	Weight  float64
}

// Table is an in-memory metadata table. The pipeline owns it exclusively for
// the duration of a run: rows are filtered and annotated in place, never
// re-added.
type Table struct {
	Columns []string
	Rows    []*Clip
}

// Load reads a metadata CSV and validates that all required columns are
// present before any row is parsed.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read metadata header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[col] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w in metadata: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	t := &Table{Columns: header}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read metadata row: %w", err)
		}
		if len(record) < len(header) {
			continue
		}
		t.Rows = append(t.Rows, parseClip(record, idx))
	}

	return t, nil
}

func parseClip(record []string, idx map[string]int) *Clip {
	field := func(col string) string { return strings.TrimSpace(record[idx[col]]) }

	c := &Clip{
		raw:            record,
		ID:             field("id"),
		VideoPath:      field("video path"),
		AnnotationPath: field("annotation path"),

		MoveDist:  parseFloat(field("moveDist")),
		RotAngle:  parseFloat(field("rotAngle")),
		TrajTurns: parseFloat(field("trajTurns")),

		MotionScore:    parseFloat(field("motion score")),
		AestheticScore: parseFloat(field("aesthetic score")),

		Brightness: field("brightness"),
		TimeOfDay:  field("timeOfDay"),
		Weather:    field("weather"),
		SceneType:  field("sceneType"),
		MotionTags: field("motionTags"),
	}

	c.NumFrames, _ = strconv.Atoi(field("num frames"))
	c.FPS = parseFloat(field("fps"))
	if c.FPS > 0 {
		c.Duration = float64(c.NumFrames) / c.FPS
	}

	if lvl, err := strconv.Atoi(field("distLevel")); err == nil {
		c.DistLevel = lvl
	} else {
		c.DistLevel = -1
	}

	return c
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// WriteManifest writes the selected rows to a CSV with all original columns
// plus a trailing weight column. Derived bin columns are pipeline-internal
// and never appear in the file.
func WriteManifest(path string, columns []string, rows []*Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := append(append([]string{}, columns...), "weight")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write manifest header: %w", err)
	}

	for _, c := range rows {
		record := append(append([]string{}, c.raw...), strconv.FormatFloat(c.Weight, 'g', -1, 64))
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write manifest row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush manifest: %w", err)
	}
	return nil
}
