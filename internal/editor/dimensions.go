package editor

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/registry"
)

// dimensions is the readout of the active entity's world AABB size.
type dimensions struct {
	reg     *registry.Registry
	id      string
	size    rl.Vector3
	visible bool
}

func (d *dimensions) Show(id string) {
	d.id = id
	d.visible = true
	d.refresh()
}

func (d *dimensions) Hide() {
	d.id = ""
	d.visible = false
}

func (d *dimensions) refresh() {
	if !d.visible {
		return
	}
	e, ok := d.reg.Get(d.id)
	if !ok {
		d.Hide()
		return
	}
	d.size = e.Size()
}

// Dimensions returns the readout: the shown entity and its AABB size.
func (e *Editor) Dimensions() (id string, size rl.Vector3, ok bool) {
	return e.dims.id, e.dims.size, e.dims.visible
}

// DimensionsText formats the readout in meters.
func (e *Editor) DimensionsText() string {
	id, s, ok := e.Dimensions()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s  W %.2f m  H %.2f m  D %.2f m", id, s.X, s.Y, s.Z)
}
