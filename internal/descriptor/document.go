// Package descriptor converts building descriptor JSON to entities and back.
//
// Descriptors are Z-up and usually in millimeters; the editor works Y-up in
// meters. Ingest swaps Y and Z once and scales by Options.UnitScale; Export
// applies the inverse.
package descriptor

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoObjects is returned for documents without an objects array.
var ErrNoObjects = errors.New("missing or invalid objects array")

// Document is a building descriptor.
type Document struct {
	Objects  []Object  `json:"objects"`
	Building *Building `json:"building,omitempty"`
}

// Building carries whole-building parameters. The editor passes it through.
type Building struct {
	FloorHeight   float64 `json:"floor_height"`
	Floors        int     `json:"floors"`
	Width         float64 `json:"width"`
	Depth         float64 `json:"depth"`
	WallThickness float64 `json:"wall_thickness"`
}

// Object is one building component.
type Object struct {
	ID          string      `json:"id"`
	Layer       string      `json:"layer,omitempty"`
	Geometry    Geometry    `json:"geometry"`
	Material    Material    `json:"material"`
	Transform   Transform   `json:"transform"`
	BoundingBox BoundingBox `json:"bounding_box"`
}

// Geometry is a vertex list and polygon faces indexing into it.
type Geometry struct {
	Vertices [][]float32 `json:"vertices"`
	Faces    [][]int     `json:"faces"`
}

// Material is an RGB color (0-255), opacity and an optional texture reference.
// A missing transparency means DefaultOpacity; an explicit 0 is kept.
type Material struct {
	Color        []float32 `json:"color"`
	Transparency *float32  `json:"transparency,omitempty"`
	Texture      string    `json:"texture,omitempty"`
}

// Transform is informational on ingest and recomputed on export.
type Transform struct {
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
	Scale    [3]float32 `json:"scale"`
}

// BoundingBox is the world-space AABB in descriptor coordinates.
type BoundingBox struct {
	Min [3]float32 `json:"min"`
	Max [3]float32 `json:"max"`
}

// Parse decodes a descriptor and checks that it has an objects array.
func Parse(data []byte) (*Document, error) {
	var raw struct {
		Objects json.RawMessage `json:"objects"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}
	if len(raw.Objects) == 0 || raw.Objects[0] != '[' {
		return nil, fmt.Errorf("parse descriptor: %w", ErrNoObjects)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}
	return &doc, nil
}

// Marshal encodes a descriptor with tab indentation.
func (d *Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "\t")
}
