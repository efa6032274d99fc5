package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/torvend/pursuit/config"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir         string
	episodeFile *os.File

	episodeHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	episodePath := filepath.Join(dir, "episodes.csv")
	f, err := os.Create(episodePath)
	if err != nil {
		return nil, fmt.Errorf("creating episodes.csv: %w", err)
	}
	om.episodeFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteEpisode appends an episode record to episodes.csv.
func (om *OutputManager) WriteEpisode(record EpisodeRecord) error {
	if om == nil {
		return nil
	}

	records := []EpisodeRecord{record}

	if !om.episodeHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.episodeFile); err != nil {
			return fmt.Errorf("writing episode: %w", err)
		}
		om.episodeHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.episodeFile); err != nil {
			return fmt.Errorf("writing episode: %w", err)
		}
	}

	return nil
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return om.episodeFile.Close()
}
