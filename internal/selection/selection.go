// Package selection tracks the active entity, the selected faces and the
// whole-entity ground drag.
package selection

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/entity"
)

var (
	// Highlight is the emissive of the active entity and of clicked faces.
	Highlight = rl.NewColor(0x33, 0x33, 0x33, 0xff)
	// BoxHighlight is the emissive of faces picked by box-select.
	BoxHighlight = rl.NewColor(0xff, 0x00, 0x00, 0xff)
)

// Store is the entity lookup the controller reads from.
type Store interface {
	Get(id string) (*entity.Entity, bool)
	All() []*entity.Entity
}

// Gizmo is told which entity to attach to.
type Gizmo interface {
	Attach(id string)
	Detach()
}

// Panel is the dimensions readout.
type Panel interface {
	Show(id string)
	Hide()
}

// InteractionKind distinguishes idle from an entity ground drag.
type InteractionKind int

const (
	Idle InteractionKind = iota
	Dragging
)

// Interaction is the pointer interaction state. ID and Start are set while Dragging.
type Interaction struct {
	Kind  InteractionKind
	ID    string
	Start rl.Vector3
}

// Controller owns the active id, the face set and the interaction state.
type Controller struct {
	store Store
	gizmo Gizmo
	panel Panel

	active    string
	faces     map[string][]int
	draggable map[string]bool
	state     Interaction
}

// New returns a controller with nothing selected. gizmo and panel may be nil.
func New(store Store, gizmo Gizmo, panel Panel) *Controller {
	return &Controller{
		store:     store,
		gizmo:     gizmo,
		panel:     panel,
		faces:     make(map[string][]int),
		draggable: make(map[string]bool),
	}
}

// Active returns the active entity id, or "".
func (c *Controller) Active() string {
	return c.active
}

// SelectEntity makes id the active entity; "" clears. Selecting the active
// entity again does nothing. It reports false for ids that are not in the store.
func (c *Controller) SelectEntity(id string) bool {
	if id == c.active {
		return true
	}
	var next *entity.Entity
	if id != "" {
		e, ok := c.store.Get(id)
		if !ok {
			return false
		}
		next = e
	}
	if prev, ok := c.store.Get(c.active); ok {
		prev.Visual.Emissive = entity.Neutral
	}
	if c.active != "" && c.gizmo != nil {
		c.gizmo.Detach()
	}
	c.active = id
	if next == nil {
		if c.panel != nil {
			c.panel.Hide()
		}
		return true
	}
	next.Visual.Emissive = Highlight
	if c.gizmo != nil {
		c.gizmo.Attach(id)
	}
	if c.panel != nil {
		c.panel.Show(id)
	}
	return true
}

// Clear deselects the active entity and hides the dimensions panel.
func (c *Controller) Clear() {
	c.SelectEntity("")
}

// Reselect re-resolves the active entity by id after the store was replaced:
// it is highlighted and re-attached if it still exists, otherwise cleared.
// Face selection and drag state do not survive.
func (c *Controller) Reselect() {
	id := c.active
	c.active = ""
	c.faces = make(map[string][]int)
	c.draggable = make(map[string]bool)
	c.state = Interaction{}
	if c.gizmo != nil {
		c.gizmo.Detach()
	}
	if id == "" || !c.SelectEntity(id) {
		if c.panel != nil {
			c.panel.Hide()
		}
	}
}

// Forget drops every reference to id. Call before the entity is removed.
func (c *Controller) Forget(id string) {
	if c.state.Kind == Dragging && c.state.ID == id {
		c.state = Interaction{}
	}
	delete(c.draggable, id)
	if _, ok := c.faces[id]; ok {
		c.clearFaceHighlight(id)
		delete(c.faces, id)
	}
	if c.active == id {
		c.Clear()
	}
}

// Hit is the nearest ray intersection with an entity triangle.
type Hit struct {
	ID       string
	Face     int
	Point    rl.Vector3
	Distance float32
}

// Pick returns the nearest triangle hit over all entities.
func (c *Controller) Pick(ray rl.Ray) (Hit, bool) {
	var (
		best  Hit
		found bool
	)
	for _, e := range c.store.All() {
		if !rl.GetRayCollisionBox(ray, e.WorldBounds()).Hit {
			continue
		}
		m := e.Transform.Matrix()
		for i := range e.Geometry.Triangles {
			a, b, t := e.WorldTriangle(m, i)
			hit := rl.GetRayCollisionTriangle(ray, a, b, t)
			if !hit.Hit || (found && hit.Distance >= best.Distance) {
				continue
			}
			best = Hit{ID: e.ID, Face: e.Geometry.TriangleFace[i], Point: hit.Point, Distance: hit.Distance}
			found = true
		}
	}
	return best, found
}

// Click selects the entity under ray, or clears the selection on a miss.
func (c *Controller) Click(ray rl.Ray) (Hit, bool) {
	hit, ok := c.Pick(ray)
	if !ok {
		c.Clear()
		return Hit{}, false
	}
	c.SelectEntity(hit.ID)
	return hit, true
}

// SelectFace adds face of id to the face set. Without modifier, or when the
// set belongs to another entity, the previous set is cleared first.
func (c *Controller) SelectFace(id string, face int, modifier bool) {
	e, ok := c.store.Get(id)
	if !ok || face < 0 || face >= e.FaceCount() {
		return
	}
	if !modifier || !c.ownsFaces(id) {
		c.ClearFaces()
	}
	for _, f := range c.faces[id] {
		if f == face {
			return
		}
	}
	c.faces[id] = append(c.faces[id], face)
	setFaceHighlight(e, face, Highlight)
}

func (c *Controller) ownsFaces(id string) bool {
	if len(c.faces) == 0 {
		return true
	}
	_, ok := c.faces[id]
	return ok && len(c.faces) == 1
}

// SetFaces replaces the face set with a box-select result, highlighted red.
func (c *Controller) SetFaces(faces map[string][]int) {
	c.ClearFaces()
	for id, fs := range faces {
		e, ok := c.store.Get(id)
		if !ok {
			continue
		}
		c.faces[id] = append([]int(nil), fs...)
		for _, f := range fs {
			setFaceHighlight(e, f, BoxHighlight)
		}
	}
}

// ClearFaces empties the face set and removes face highlights.
func (c *Controller) ClearFaces() {
	for id := range c.faces {
		c.clearFaceHighlight(id)
	}
	c.faces = make(map[string][]int)
}

func (c *Controller) clearFaceHighlight(id string) {
	if e, ok := c.store.Get(id); ok {
		e.Visual.FaceHighlight = nil
	}
}

func setFaceHighlight(e *entity.Entity, face int, col rl.Color) {
	if e.Visual.FaceHighlight == nil {
		e.Visual.FaceHighlight = make(map[int]rl.Color)
	}
	e.Visual.FaceHighlight[face] = col
}

// Faces returns a copy of the face set.
func (c *Controller) Faces() map[string][]int {
	out := make(map[string][]int, len(c.faces))
	for id, fs := range c.faces {
		out[id] = append([]int(nil), fs...)
	}
	return out
}

// FaceOwners returns the ids that have selected faces, sorted.
func (c *Controller) FaceOwners() []string {
	out := make([]string, 0, len(c.faces))
	for id := range c.faces {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// EnableDrag allows whole-entity ground drags of id.
func (c *Controller) EnableDrag(id string) {
	c.draggable[id] = true
}

// ClearDrag revokes every ground-drag permission and ends a drag.
func (c *Controller) ClearDrag() {
	c.draggable = make(map[string]bool)
	c.state = Interaction{}
}

// Draggable reports whether id may be ground-dragged.
func (c *Controller) Draggable(id string) bool {
	return c.draggable[id]
}

// BeginDrag enters Dragging for a draggable entity.
func (c *Controller) BeginDrag(id string, start rl.Vector3) bool {
	if !c.draggable[id] || c.state.Kind == Dragging {
		return false
	}
	c.state = Interaction{Kind: Dragging, ID: id, Start: start}
	return true
}

// DragState returns the current interaction state.
func (c *Controller) DragState() Interaction {
	return c.state
}

// EndDrag returns to Idle and reports the state that ended.
func (c *Controller) EndDrag() Interaction {
	prev := c.state
	c.state = Interaction{}
	return prev
}
