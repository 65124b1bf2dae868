package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/cycloid/internal/dynamo"
	"github.com/san-kum/cycloid/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

// ErrInvalidName is returned for run names and ids that are not a single
// path element.
var ErrInvalidName = errors.New("invalid run name")

var framesHeader = []string{"index", "angle", "time", "center_x", "center_y", "x", "y"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Timestamp       time.Time          `json:"timestamp"`
	Radius          float64            `json:"radius"`
	Velocity        float64            `json:"velocity"`
	FrameIntervalMs float64            `json:"frame_interval_ms"`
	FramesPerSecond float64            `json:"frames_per_second"`
	Distance        float64            `json:"distance"`
	TotalTime       float64            `json:"total_time"`
	FrameCount      int                `json:"frame_count"`
	Metrics         map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and frames.csv under a new run directory.
func (s *Store) Save(name string, result *sim.Result) (string, error) {
	if name == "" {
		name = "cycloid"
	}
	if err := checkName(name); err != nil {
		return "", err
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	plan := result.Plan
	meta := RunMetadata{
		ID:              runID,
		Name:            name,
		Timestamp:       now,
		Radius:          plan.Params.Radius,
		Velocity:        plan.Params.Velocity,
		FrameIntervalMs: float64(plan.Timing.FrameInterval) / float64(time.Millisecond),
		FramesPerSecond: plan.FramesPerSecond,
		Distance:        plan.Distance,
		TotalTime:       plan.TotalTime,
		FrameCount:      len(result.Frames),
		Metrics:         result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

func checkName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(path string, frames []dynamo.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(framesHeader); err != nil {
		return err
	}
	for _, fr := range frames {
		row := []string{
			strconv.Itoa(fr.Index),
			formatFloat(fr.Angle),
			formatFloat(fr.Time),
			formatFloat(fr.Center.X),
			formatFloat(fr.Center.Y),
			formatFloat(fr.Point.X),
			formatFloat(fr.Point.Y),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 9, 64)
}

// List returns saved runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if err := checkName(runID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]dynamo.Frame, error) {
	if err := checkName(runID); err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(framesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []dynamo.Frame{}, nil
	}

	frames := make([]dynamo.Frame, 0, len(records)-1)
	for i, rec := range records[1:] {
		var vals [6]float64
		for j := range vals {
			v, err := strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
			}
			vals[j] = v
		}
		idx, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		frames = append(frames, dynamo.Frame{
			Index:  idx,
			Angle:  vals[0],
			Time:   vals[1],
			Center: dynamo.Point{X: vals[2], Y: vals[3]},
			Point:  dynamo.Point{X: vals[4], Y: vals[5]},
		})
	}
	return frames, nil
}

type ExportData struct {
	RunMetadata
	Frames []dynamo.Frame `json:"frames"`
}

// ExportJSON writes the run metadata and its frames as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Frames: frames})
}

// ExportCSV copies the stored frames table to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	f, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
