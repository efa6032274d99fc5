package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/torvend/pursuit/env"
)

// SaveSnapshot writes one tick's game state as JSON.
// Returns the filepath where it was saved.
func SaveSnapshot(state *env.GameState, dir string, episode int) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_ep%d_t%d.json", episode, state.Tick))
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a game state snapshot from disk.
func LoadSnapshot(path string) (*env.GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var state env.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &state, nil
}
