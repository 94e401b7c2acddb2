package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/commands"
	"building-editor/internal/debug"
	"building-editor/internal/descriptor"
	"building-editor/internal/editor"
	"building-editor/internal/engineconfig"
	"building-editor/internal/input"
	"building-editor/internal/render"
	"building-editor/internal/terminal"
	"building-editor/internal/ui"
)

const reloadTimeout = 10 * time.Second

// app is the per-frame glue between raylib and the editor.
type app struct {
	ed         *editor.Editor
	configPath string
	fontPath   string
	fontLoaded bool

	reg       *commands.Registry
	term      *terminal.Terminal
	input     *input.Dispatcher
	debug     *debug.Debug
	chrome    *ui.Engine
	palette   *ui.Palette
	inspector *ui.Inspector
	status    *ui.Status
	nodes     []*ui.Node

	// dragType is the palette shape being dragged into the scene.
	dragType string
	watch    *descriptor.Watcher
}

func newApp(ed *editor.Editor, configPath string) *app {
	log := ed.Log()
	reg := commands.NewRegistry()
	commands.RegisterEditor(reg, ed)

	sheet, err := ui.DefaultStylesheet()
	if err != nil {
		log.Errorf("stylesheet: %v", err)
	}
	prefs := ed.Prefs()
	a := &app{
		ed:         ed,
		configPath: configPath,
		reg:        reg,
		term:       terminal.New(log, reg),
		input:      input.NewDispatcher(ed, log),
		debug:      &debug.Debug{ShowFPS: prefs.ShowFPS, ShowMemAlloc: prefs.ShowMemAlloc, ShowStats: prefs.ShowStats},
		chrome:     ui.New(sheet),
		palette:    ui.NewPalette(ed.Catalog.Types()),
		inspector:  ui.NewInspector(),
		status:     ui.NewStatus(),
	}
	a.registerDebug()
	registerStyle(reg, a.chrome, sheet)
	return a
}

// registerStyle adds the console command that swaps the chrome stylesheet.
func registerStyle(reg *commands.Registry, chrome *ui.Engine, builtin *ui.Stylesheet) {
	reg.Register("style", "style [--css theme.css] [--reset] reloads the chrome stylesheet", func(fs *flag.FlagSet) func() error {
		css := fs.String("css", "", "stylesheet file")
		reset := fs.Bool("reset", false, "restore the built-in stylesheet")
		return func() error {
			switch {
			case *reset:
				chrome.SetStylesheet(builtin)
				return nil
			case *css != "":
				if err := chrome.LoadCSS(*css); err != nil {
					return fmt.Errorf("style: %w", err)
				}
				return nil
			}
			return fmt.Errorf("style: one of --css or --reset is required")
		}
	})
}

func (a *app) registerDebug() {
	a.reg.Register("debug", "debug [--fps] [--mem] [--stats] toggles overlays", func(fs *flag.FlagSet) func() error {
		fps := fs.Bool("fps", a.debug.ShowFPS, "show FPS")
		mem := fs.Bool("mem", a.debug.ShowMemAlloc, "show heap size")
		stats := fs.Bool("stats", a.debug.ShowStats, "show scene counts")
		return func() error {
			a.debug.ShowFPS, a.debug.ShowMemAlloc, a.debug.ShowStats = *fps, *mem, *stats
			return nil
		}
	})
}

func (a *app) update() {
	if !a.fontLoaded {
		a.fontLoaded = true
		if a.fontPath != "" {
			if err := a.chrome.LoadFont(a.fontPath); err != nil {
				a.ed.Log().Warnf("font %s: %v", a.fontPath, err)
			}
		}
	}
	a.reload()

	a.ed.Scene.Update()
	a.term.Update()
	a.layoutChrome()

	s := input.Poll()
	if a.term.IsOpen() {
		s.Pressed = nil
	}
	a.paletteDrag(&s)
	a.input.Dispatch(s)
	a.ed.Frame()
}

// reload re-ingests every watched descriptor that changed on disk since the
// last frame.
func (a *app) reload() {
	if a.watch == nil {
		return
	}
	select {
	case <-a.watch.Changed():
	default:
		return
	}
	for _, path := range a.watch.Pending() {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		if err := a.ed.Load(ctx, path); err != nil {
			a.ed.Log().Warnf("reload %s: %v", path, err)
		}
		cancel()
	}
}

// paletteDrag starts a shape drag on a palette press and drops the shape on
// release over the scene. A release back on the palette spawns at the camera
// target.
func (a *app) paletteDrag(s *input.State) {
	n, overUI := a.chrome.NodeAt(s.Mouse)
	s.OverUI = overUI
	if s.LeftPressed && overUI {
		a.dragType, _ = a.palette.TypeOf(n)
		return
	}
	if !s.LeftReleased || a.dragType == "" {
		return
	}
	kind := a.dragType
	a.dragType = ""
	var err error
	if overUI {
		_, err = a.ed.CreateShape(kind, a.ed.Scene.Camera.Target)
	} else {
		_, err = a.ed.DropShape(kind, s.Mouse)
	}
	if err != nil {
		a.ed.Log().Warnf("%v", err)
	}
	s.LeftReleased = false
}

// layoutChrome rebuilds the chrome node list for this frame.
func (a *app) layoutChrome() {
	a.nodes = a.palette.AppendNodes(a.nodes[:0])
	active, ok := a.ed.Active()
	var r ui.Readout
	if ok {
		body, _ := a.ed.Registry.Body(active.ID)
		r = ui.ReadoutOf(active, body, len(a.ed.Selection.Faces()[active.ID]))
	}
	a.nodes = a.inspector.AppendNodes(a.nodes, ok, r)
	a.nodes = a.status.AppendNodes(a.nodes, statusText(a.ed))
	a.chrome.SetNodes(a.nodes)
	a.chrome.Layout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
}

func (a *app) draw() {
	ed := a.ed
	a.ed.Scene.Draw(func() {
		sun, ambient := ed.Scene.Env.Intensities()
		render.Draw(render.Triangles(ed.Registry.Visuals(), render.Light{
			Dir:     ed.Scene.Env.LightDir(),
			Sun:     sun,
			Ambient: ambient,
			View:    ed.Scene.Camera.Position,
		}))
		if id, ok := ed.Gizmo.Attached(); ok {
			if e, ok := ed.Registry.Get(id); ok {
				render.DrawGizmo(render.Handles(e, ed.Gizmo.Axes()), ed.Gizmo.Mode())
			}
		}
	})
	if r, ok := ed.BoxRect(); ok {
		a.chrome.DrawRect("box-select", rl.NewRectangle(r.X0, r.Y0, r.X1-r.X0, r.Y1-r.Y0))
	}
	if a.dragType != "" {
		m := rl.GetMousePosition()
		rl.DrawText(a.dragType, int32(m.X)+12, int32(m.Y)+12, 20, rl.White)
	}
	a.chrome.Draw()
	a.term.Draw()
	a.debug.Draw(func() debug.Stats { return sceneStats(ed) })
}

// statusText is the top status line: gizmo mode and axes, snapping and the
// dimensions of the active entity.
func statusText(ed *editor.Editor) string {
	snap := "off"
	if ed.Gizmo.Config.Snapping {
		snap = "on"
	}
	s := fmt.Sprintf("%s %s  snap %s", ed.Gizmo.Mode(), ed.Gizmo.Axes(), snap)
	if dims := ed.DimensionsText(); dims != "" {
		s += "  |  " + dims
	}
	return s
}

func sceneStats(ed *editor.Editor) debug.Stats {
	s := debug.Stats{
		Entities: ed.Registry.Len(),
		Bodies:   ed.World.Len(),
		Undo:     ed.History.UndoLen(),
		Redo:     ed.History.RedoLen(),
	}
	for _, b := range ed.World.Bodies() {
		if !b.Static() && !b.Sleeping() {
			s.Awake++
		}
	}
	return s
}

// currentPrefs folds the live view and snapping settings back into the
// preferences the editor started with.
func currentPrefs(ed *editor.Editor, d *debug.Debug) engineconfig.Prefs {
	p := ed.Prefs()
	cfg := ed.Gizmo.Config
	p.ShowFPS, p.ShowMemAlloc, p.ShowStats = d.ShowFPS, d.ShowMemAlloc, d.ShowStats
	p.GridVisible = ed.Scene.GridVisible
	p.Weather = ed.Scene.Env.Weather().Name
	p.EnvironmentEnabled = ed.Scene.Env.Enabled
	p.TimeOfDay = ed.Scene.Env.TimeOfDay()
	p.TranslationSnap = cfg.TranslationSnap
	p.RotationSnapDeg = cfg.RotationSnap / rl.Deg2rad
	p.ScaleSnap = cfg.ScaleSnap
	p.Snapping = cfg.Snapping
	p.VertexSnap = cfg.VertexSnap
	p.SnapDistance = ed.Snap.Distance
	return p
}

func (a *app) savePrefs() error {
	return engineconfig.Save(a.configPath, currentPrefs(a.ed, a.debug))
}
