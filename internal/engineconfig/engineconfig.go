package engineconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Path is the editor config file, relative to the process working directory.
// EDITOR_CONFIG overrides it.
const Path = "config/editor.json"

// Prefs holds editor preferences. Persisted across runs; scene content is not.
type Prefs struct {
	ShowFPS      bool `json:"show_fps"`
	ShowMemAlloc bool `json:"show_memalloc"`
	ShowStats    bool `json:"show_stats"`
	GridVisible  bool `json:"grid_visible"`

	Weather            string  `json:"weather"`
	EnvironmentEnabled bool    `json:"environment_enabled"`
	TimeOfDay          float32 `json:"time_of_day"`

	TranslationSnap float32 `json:"translation_snap"`
	RotationSnapDeg float32 `json:"rotation_snap_deg"`
	ScaleSnap       float32 `json:"scale_snap"`
	Snapping        bool    `json:"snapping"`
	VertexSnap      bool    `json:"vertex_snap"`
	SnapDistance    float32 `json:"snap_distance"`

	HistoryCapacity int     `json:"history_capacity"`
	FaceNudgeStep   float32 `json:"face_nudge_step"`
	Gravity         float32 `json:"gravity"`

	// Sources is the descriptor fallback chain: file paths or http(s) URLs.
	Sources          []string `json:"descriptor_sources"`
	UnitScale        float32  `json:"unit_scale"`
	WatchDescriptors bool     `json:"watch_descriptors"`
}

// Default returns the editor defaults: 0.1 m / 15° / 0.1 snapping, 50 undo
// steps, millimeter descriptors from house.json then building.json.
func Default() Prefs {
	return Prefs{
		GridVisible:     true,
		Weather:         "sunny",
		TimeOfDay:       12,
		TranslationSnap: 0.1,
		RotationSnapDeg: 15,
		ScaleSnap:       0.1,
		Snapping:        true,
		VertexSnap:      true,
		SnapDistance:    0.5,
		HistoryCapacity: 50,
		FaceNudgeStep:   0.1,
		Gravity:         -9.82,
		Sources:         []string{"house.json", "building.json"},
		UnitScale:       0.001,
	}
}

// Load reads preferences from path. Fields missing from the file keep their
// defaults. A missing file is not an error; an invalid one returns Default()
// and the parse error.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("load config: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("load config %s: %w", path, err)
	}
	return p, nil
}

// Save writes preferences to path, creating its directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
