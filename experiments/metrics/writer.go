package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"balance/game"
)

type SearchRecord struct {
	ID        int
	Policy    string
	Scenario  string
	Boundary  float64
	Reference game.Outcome
	Lower     float64
	Upper     float64
	Error     string // Empty when the search completed
	SearchMetric
}

type ProbeRecord struct {
	Search int // SearchRecord.ID
	ProbeMetric
}

type EpisodeRecord struct {
	Env string
	EpisodeMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold one experiment's results.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteSetup stores the experiment's configuration as indented JSON.
func (w *Writer) WriteSetup(setup any) error {
	f, err := os.Create(filepath.Join(w.baseDir, "setup.json"))
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

func (w *Writer) WriteSearchRecords(records []SearchRecord) error {
	header := []string{"id", "policy", "scenario", "boundary", "reference", "lower", "upper", "precision", "doublings", "probes", "start_time", "duration", "error"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			record.Policy,
			record.Scenario,
			formatFloat(record.Boundary),
			record.Reference.String(),
			formatFloat(record.Lower),
			formatFloat(record.Upper),
			formatFloat(record.Precision),
			strconv.Itoa(record.Doublings),
			strconv.Itoa(len(record.Probes)),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
			record.Error,
		}
	}
	return w.writeCSV("searches.csv", header, rows)
}

func (w *Writer) WriteProbeRecords(records []ProbeRecord) error {
	header := []string{"search", "step", "phase", "value", "outcome", "duration"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Search),
			strconv.Itoa(record.Step),
			string(record.Phase),
			formatFloat(record.Value),
			record.Outcome.String(),
			record.Duration.String(),
		}
	}
	return w.writeCSV("probes.csv", header, rows)
}

func (w *Writer) WriteEpisodeRecords(records []EpisodeRecord) error {
	header := []string{"env", "episode", "steps", "return", "outcome", "duration"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			record.Env,
			strconv.Itoa(record.Episode),
			strconv.Itoa(record.Steps),
			formatFloat(record.Return),
			record.Outcome.String(),
			record.Duration.String(),
		}
	}
	return w.writeCSV("episodes.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
