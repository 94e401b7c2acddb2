// Package editor wires the registry, physics bridge, selection, gizmo,
// history and snapping into the operations the input layer and the console
// call. Everything runs on the frame goroutine.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/descriptor"
	"building-editor/internal/engineconfig"
	"building-editor/internal/entity"
	"building-editor/internal/gizmo"
	"building-editor/internal/history"
	"building-editor/internal/logger"
	"building-editor/internal/physics"
	"building-editor/internal/physsync"
	"building-editor/internal/primitives"
	"building-editor/internal/registry"
	"building-editor/internal/scene"
	"building-editor/internal/selection"
	"building-editor/internal/snap"
)

// ErrNoActive is returned by operations that need an active entity.
var ErrNoActive = errors.New("no active entity")

// Editor is the engine facade.
type Editor struct {
	Scene     *scene.Scene
	World     *physics.World
	Bridge    *physsync.Bridge
	Registry  *registry.Registry
	Selection *selection.Controller
	Gizmo     *gizmo.Gizmo
	History   *history.Manager
	Snap      *snap.Engine
	Catalog   *primitives.Catalog

	log      *logger.Logger
	prefs    engineconfig.Prefs
	descOpts descriptor.Options
	building *descriptor.Building
	source   string
	dims     dimensions
	pointer  pointer
}

// New builds an editor with a width x height viewport.
func New(prefs engineconfig.Prefs, log *logger.Logger, width, height float32) (*Editor, error) {
	cat, err := primitives.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}
	world := physics.NewWorld()
	if prefs.Gravity != 0 {
		world.SetGravity(rl.NewVector3(0, prefs.Gravity, 0))
	}
	br := physsync.New(world, log)
	reg := registry.New(br)
	br.Bind(reg)

	e := &Editor{
		Scene:    scene.New(width, height),
		World:    world,
		Bridge:   br,
		Registry: reg,
		Catalog:  cat,
		log:      log,
		prefs:    prefs,
		descOpts: descriptor.Options{UnitScale: prefs.UnitScale},
	}
	e.Scene.SetGridVisible(prefs.GridVisible)
	e.Scene.Env.Enabled = prefs.EnvironmentEnabled
	if prefs.Weather != "" {
		if err := e.Scene.Env.SetWeather(prefs.Weather); err != nil {
			log.Warnf("config: %v", err)
		}
	}
	e.Scene.Env.SetTimeOfDay(prefs.TimeOfDay)

	e.Snap = snap.New(reg, prefs.SnapDistance)
	e.Gizmo = gizmo.New(reg, e.Snap, gizmo.Hooks{
		BeforeDrag: e.snapshot,
		Change:     e.objectChanged,
		Camera:     e.Scene.Camera,
	}, gizmoConfig(prefs))
	e.dims.reg = reg
	e.Selection = selection.New(reg, e.Gizmo, &e.dims)
	e.History = history.New(reg, e.Selection, prefs.HistoryCapacity)
	return e, nil
}

func gizmoConfig(p engineconfig.Prefs) gizmo.Config {
	return gizmo.Config{
		TranslationSnap: p.TranslationSnap,
		RotationSnap:    p.RotationSnapDeg * rl.Deg2rad,
		ScaleSnap:       p.ScaleSnap,
		Snapping:        p.Snapping,
		VertexSnap:      p.VertexSnap,
	}
}

// Log returns the editor logger.
func (e *Editor) Log() *logger.Logger {
	return e.log
}

// Prefs returns the preferences the editor was built with.
func (e *Editor) Prefs() engineconfig.Prefs {
	return e.prefs
}

// Source returns where the current descriptor was loaded from.
func (e *Editor) Source() string {
	return e.source
}

// Frame runs once per frame after input: one physics step and the
// physics-to-visual sync for every entity but the active one.
func (e *Editor) Frame() {
	e.Bridge.Step(e.Selection.Active())
	e.dims.refresh()
}

// snapshot records the scene before a mutation. Failures are logged and the
// mutation proceeds.
func (e *Editor) snapshot() {
	if err := e.History.Snapshot(); err != nil {
		e.log.Errorf("history: %v", err)
	}
}

// objectChanged runs after every gizmo change: dimensions readout and
// physics commit.
func (e *Editor) objectChanged(id string) {
	if err := e.Bridge.Commit(id); err != nil {
		e.log.Errorf("commit: %v", err)
	}
	e.dims.refresh()
}

// Ingest adds the descriptor's objects to the scene as the initial state.
// Skipped objects are logged and returned.
func (e *Editor) Ingest(doc *descriptor.Document, source string) []error {
	ents, warnings := descriptor.Ingest(doc, e.descOpts)
	warnings = append(warnings, e.Registry.IngestAll(ents)...)
	for _, w := range warnings {
		e.log.Warnf("ingest: %v", w)
	}
	e.building = doc.Building
	e.source = source
	e.log.Infof("ingest: %d entities from %s", e.Registry.Len(), source)
	return warnings
}

// Reingest replaces the scene with a descriptor produced elsewhere as one
// undoable step.
func (e *Editor) Reingest(doc *descriptor.Document, source string) error {
	ents, warnings := descriptor.Ingest(doc, e.descOpts)
	for _, w := range warnings {
		e.log.Warnf("reingest: %v", w)
	}
	before, err := e.History.Capture()
	if err != nil {
		return fmt.Errorf("reingest: %w", err)
	}
	e.Gizmo.Detach()
	if err := e.Registry.Replace(ents); err != nil {
		e.log.Errorf("reingest %s: %v", source, err)
		return fmt.Errorf("reingest: %w", err)
	}
	e.History.Push(before)
	e.Selection.Reselect()
	e.building = doc.Building
	e.source = source
	e.log.Infof("reingest: %d entities from %s", e.Registry.Len(), source)
	return nil
}

// Load runs the descriptor fallback chain over sources and re-ingests the
// first valid document.
func (e *Editor) Load(ctx context.Context, sources ...string) error {
	if len(sources) == 0 {
		sources = e.prefs.Sources
	}
	l := &descriptor.Loader{Sources: sources, Log: e.log}
	doc, src, err := l.Load(ctx)
	if err != nil {
		return err
	}
	return e.Reingest(doc, src)
}

// Export converts the scene back to a descriptor.
func (e *Editor) Export() *descriptor.Document {
	return descriptor.Export(e.Registry.All(), e.building, e.descOpts)
}

// ExportTo writes the exported descriptor to path.
func (e *Editor) ExportTo(path string) error {
	data, err := e.Export().Marshal()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	e.log.Infof("export: %d objects to %s", e.Registry.Len(), path)
	return nil
}

// Active returns the active entity.
func (e *Editor) Active() (*entity.Entity, bool) {
	id := e.Selection.Active()
	if id == "" {
		return nil, false
	}
	return e.Registry.Get(id)
}

// FrameSelection points the camera at the active entity, or the whole scene.
func (e *Editor) FrameSelection() {
	if a, ok := e.Active(); ok {
		e.Scene.Camera.Frame(a.WorldBounds())
		return
	}
	all := e.Registry.All()
	if len(all) == 0 {
		return
	}
	b := all[0].WorldBounds()
	for _, x := range all[1:] {
		wb := x.WorldBounds()
		b.Min = rl.Vector3Min(b.Min, wb.Min)
		b.Max = rl.Vector3Max(b.Max, wb.Max)
	}
	e.Scene.Camera.Frame(b)
}
