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
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/antnav/internal/experiment"
	"github.com/san-kum/antnav/internal/navigation"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"index", "x", "y", "hx", "hy", "heading", "odometer"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type MoveRecord struct {
	Turn     float64 `json:"turn"`
	Distance float64 `json:"distance"`
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	SunAzimuth   float64            `json:"sun_azimuth"`
	Noise        float64            `json:"noise"`
	StepSize     float64            `json:"step_size"`
	Mode         string             `json:"mode"`
	HomeX        float64            `json:"home_x"`
	HomeY        float64            `json:"home_y"`
	Moves        []MoveRecord       `json:"moves"`
	Phase        string             `json:"phase"`
	Odometer     float64            `json:"odometer"`
	StraightLine float64            `json:"straight_line"`
	Efficiency   float64            `json:"efficiency"`
	StepsToHome  int                `json:"steps_to_home"`
	HomingStart  int                `json:"homing_start"`
	Metrics      map[string]float64 `json:"metrics"`
}

func newRunID(name string) string {
	return fmt.Sprintf("%s_%d_%s", name, time.Now().Unix(), uuid.NewString()[:8])
}

func metadataFor(id string, result *experiment.Result) RunMetadata {
	cfg := result.Config
	moves := make([]MoveRecord, len(cfg.Moves))
	for i, m := range cfg.Moves {
		moves[i] = MoveRecord{Turn: m.TurnDeg, Distance: m.Distance}
	}
	return RunMetadata{
		ID:           id,
		Name:         cfg.Name,
		Timestamp:    time.Now(),
		Seed:         cfg.Seed,
		SunAzimuth:   cfg.SunAzimuth,
		Noise:        cfg.Noise,
		StepSize:     cfg.StepSize,
		Mode:         cfg.Mode,
		HomeX:        cfg.Start.X,
		HomeY:        cfg.Start.Y,
		Moves:        moves,
		Phase:        result.Summary.Phase.String(),
		Odometer:     result.Summary.Odometer,
		StraightLine: result.Summary.StraightLine,
		Efficiency:   result.Summary.Efficiency,
		StepsToHome:  result.Summary.StepsToHome,
		HomingStart:  result.Summary.HomingStart,
		Metrics:      result.Metrics,
	}
}

// Save writes the run trajectory and metadata under a new run directory and
// returns the run id. Metadata is written last, so a run is only listed once
// both files are complete; on failure the directory is removed.
func (s *Store) Save(result *experiment.Result) (runID string, err error) {
	name := result.Config.Name
	if name == "" {
		name = "run"
	}
	runID = newRunID(name)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
			runID = ""
		}
	}()

	err = writeFile(filepath.Join(runDir, trajectoryFile), func(w io.Writer) error {
		return WriteCSV(w, result.Trajectory)
	})
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(metadataFor(runID, result))
	})
	if err != nil {
		return "", err
	}

	return runID, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes one row per snapshot.
func WriteCSV(w io.Writer, tr navigation.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(trajectoryHeader); err != nil {
		return err
	}

	for snap := range tr.All() {
		row := []string{
			strconv.Itoa(snap.Index),
			formatFloat(snap.Position.X),
			formatFloat(snap.Position.Y),
			formatFloat(snap.HomeVector.X),
			formatFloat(snap.HomeVector.Y),
			formatFloat(snap.Heading),
			formatFloat(snap.Odometer),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
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

// LoadTrajectory reads a stored trajectory back. A row that fails to parse
// fails the whole load.
func (s *Store) LoadTrajectory(runID string) (navigation.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return navigation.Trajectory{}, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses the format written by WriteCSV.
func ReadCSV(r io.Reader) (navigation.Trajectory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(trajectoryHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return navigation.Trajectory{}, err
	}
	if len(records) == 0 {
		return navigation.Trajectory{}, errors.New("storage: empty trajectory file")
	}

	snaps := make([]navigation.Snapshot, 0, len(records)-1)
	for i, record := range records[1:] {
		vals := make([]float64, len(record)-1)
		for j := 1; j < len(record); j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return navigation.Trajectory{}, fmt.Errorf("storage: row %d column %s: %w", i+1, trajectoryHeader[j], err)
			}
			vals[j-1] = v
		}
		snaps = append(snaps, navigation.Snapshot{
			Position:   navigation.Vec2{X: vals[0], Y: vals[1]},
			HomeVector: navigation.Vec2{X: vals[2], Y: vals[3]},
			Heading:    vals[4],
			Odometer:   vals[5],
		})
	}

	return navigation.NewTrajectory(snaps), nil
}
