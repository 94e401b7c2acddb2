package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"building-editor/internal/editor"
	"building-editor/internal/entity"
	"building-editor/internal/gizmo"
	"building-editor/internal/scene"
)

// loadTimeout bounds a console-triggered descriptor load.
const loadTimeout = 10 * time.Second

// RegisterEditor adds the editor commands to r. Results are logged through
// the editor logger.
func RegisterEditor(r *Registry, ed *editor.Editor) {
	log := ed.Log()

	r.Register("spawn", "spawn --type cube [--x 0 --z 0]", func(fs *flag.FlagSet) func() error {
		kind := fs.String("type", "cube", "primitive type: "+strings.Join(ed.Catalog.Types(), ", "))
		x := fs.Float64("x", 0, "ground x")
		z := fs.Float64("z", 0, "ground z")
		return func() error {
			id, err := ed.CreateShape(*kind, rl.NewVector3(float32(*x), 0, float32(*z)))
			if err != nil {
				return err
			}
			log.Log("spawned " + id)
			return nil
		}
	})

	r.Register("select", "select --id <entity id> (empty clears)", func(fs *flag.FlagSet) func() error {
		id := fs.String("id", "", "entity id")
		return func() error {
			if *id == "" {
				ed.Selection.Clear()
				return nil
			}
			return ed.Select(*id)
		}
	})

	r.Register("delete", "delete the active entity", func(fs *flag.FlagSet) func() error {
		return ed.Delete
	})

	r.Register("undo", "undo the last edit", func(fs *flag.FlagSet) func() error {
		return func() error {
			if !ed.Undo() {
				log.Log("nothing to undo")
			}
			return nil
		}
	})

	r.Register("redo", "redo the last undone edit", func(fs *flag.FlagSet) func() error {
		return func() error {
			if !ed.Redo() {
				log.Log("nothing to redo")
			}
			return nil
		}
	})

	r.Register("mode", "mode --set translate|rotate|scale", func(fs *flag.FlagSet) func() error {
		set := fs.String("set", "translate", "gizmo mode")
		return func() error {
			m, ok := gizmo.ParseMode(*set)
			if !ok {
				return fmt.Errorf("mode: unknown mode %q", *set)
			}
			ed.SetMode(m)
			return nil
		}
	})

	r.Register("plane", "plane --axes xy|yz|xz|xyz", func(fs *flag.FlagSet) func() error {
		axes := fs.String("axes", "xyz", "translate constraint")
		return func() error {
			a, ok := gizmo.ParsePlane(*axes)
			if !ok {
				return fmt.Errorf("plane: unknown axes %q", *axes)
			}
			ed.SetPlane(a)
			return nil
		}
	})

	r.Register("snap", "snap [--on=true] [--vertex=true] [--translate 0.1] [--rotate 15] [--scale 0.1] [--distance 0.5]", func(fs *flag.FlagSet) func() error {
		cfg := ed.Gizmo.Config
		on := fs.Bool("on", cfg.Snapping, "snapping enabled")
		vertex := fs.Bool("vertex", cfg.VertexSnap, "snap translate drags to nearby vertices")
		translate := fs.Float64("translate", float64(cfg.TranslationSnap), "translate step in meters")
		rotate := fs.Float64("rotate", float64(cfg.RotationSnap/rl.Deg2rad), "rotate step in degrees")
		scale := fs.Float64("scale", float64(cfg.ScaleSnap), "scale step")
		distance := fs.Float64("distance", float64(ed.Snap.Distance), "vertex snap distance in meters")
		return func() error {
			ed.Gizmo.Config = gizmo.Config{
				TranslationSnap: float32(*translate),
				RotationSnap:    float32(*rotate) * rl.Deg2rad,
				ScaleSnap:       float32(*scale),
				Snapping:        *on,
				VertexSnap:      *vertex,
			}
			ed.Snap.Distance = float32(*distance)
			log.Log(fmt.Sprintf("snap on=%t vertex=%t translate=%.3g rotate=%.3g° scale=%.3g distance=%.3g",
				*on, *vertex, *translate, *rotate, *scale, *distance))
			return nil
		}
	})

	r.Register("nudge", "nudge --axis x|y|z [--step 0.1] moves the selected faces", func(fs *flag.FlagSet) func() error {
		axis := fs.String("axis", "y", "local axis")
		step := fs.Float64("step", float64(ed.NudgeStep()), "distance in meters")
		return func() error {
			var a gizmo.Axes
			switch *axis {
			case "x":
				a = gizmo.AxisX
			case "y":
				a = gizmo.AxisY
			case "z":
				a = gizmo.AxisZ
			default:
				return fmt.Errorf("nudge: unknown axis %q", *axis)
			}
			return ed.NudgeFaces(a, float32(*step))
		}
	})

	r.Register("color", "color --hex #rrggbb recolors the active entity", func(fs *flag.FlagSet) func() error {
		hex := fs.String("hex", "#cccccc", "color")
		return func() error {
			c, err := entity.ParseColor(*hex)
			if err != nil {
				return err
			}
			return ed.SetColor(c)
		}
	})

	r.Register("opacity", "opacity --value 0.8 sets the active entity's opacity", func(fs *flag.FlagSet) func() error {
		v := fs.Float64("value", 1, "opacity in [0,1]")
		return func() error {
			return ed.SetOpacity(float32(*v))
		}
	})

	r.Register("export", "export --out building.out.json", func(fs *flag.FlagSet) func() error {
		out := fs.String("out", "building.out.json", "output path")
		return func() error {
			return ed.ExportTo(*out)
		}
	})

	r.Register("load", "load [--src house.json,building.json] replaces the scene (undoable)", func(fs *flag.FlagSet) func() error {
		src := fs.String("src", "", "comma-separated sources, files or http(s) URLs")
		return func() error {
			var sources []string
			if *src != "" {
				sources = strings.Split(*src, ",")
			}
			ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
			defer cancel()
			return ed.Load(ctx, sources...)
		}
	})

	r.Register("weather", "weather [--preset sunny] [--time 12] [--on=true]", func(fs *flag.FlagSet) func() error {
		env := ed.Scene.Env
		preset := fs.String("preset", env.Weather().Name, "one of "+strings.Join(scene.WeatherNames(), ", "))
		hour := fs.Float64("time", float64(env.TimeOfDay()), "time of day in hours")
		on := fs.Bool("on", env.Enabled, "environment lighting enabled")
		return func() error {
			if err := env.SetWeather(*preset); err != nil {
				return err
			}
			env.SetTimeOfDay(float32(*hour))
			env.Enabled = *on
			return nil
		}
	})

	r.Register("grid", "grid --visible=true", func(fs *flag.FlagSet) func() error {
		visible := fs.Bool("visible", true, "grid visible")
		return func() error {
			ed.Scene.SetGridVisible(*visible)
			return nil
		}
	})

	r.Register("frame", "frame points the camera at the selection or the whole scene", func(fs *flag.FlagSet) func() error {
		return func() error {
			ed.FrameSelection()
			return nil
		}
	})

	r.Register("list", "list the entities in registry order", func(fs *flag.FlagSet) func() error {
		return func() error {
			for _, e := range ed.Registry.All() {
				p := e.Transform.Position
				log.Log(fmt.Sprintf("%s %s (%.2f, %.2f, %.2f)", e.ID, e.Layer, p.X, p.Y, p.Z))
			}
			return nil
		}
	})

	r.Register("help", "help lists the commands", func(fs *flag.FlagSet) func() error {
		return func() error {
			for _, name := range r.Names() {
				usage, _ := r.Usage(name)
				log.Log("cmd " + name + ": " + usage)
			}
			return nil
		}
	})
}
