package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"building-editor/internal/descriptor"
	"building-editor/internal/editor"
	"building-editor/internal/engineconfig"
	"building-editor/internal/env"
	"building-editor/internal/graphics"
	"building-editor/internal/logger"
)

// startupLoadTimeout bounds the initial descriptor fetch.
const startupLoadTimeout = 30 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if err := env.Load(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	fs := flag.NewFlagSet("editor", flag.ContinueOnError)
	configPath := fs.String("config", env.Get(env.ConfigPath, engineconfig.Path), "preferences file")
	fullscreen := fs.Bool("fullscreen", false, "open fullscreen")
	exportPath := fs.String("export", "", "load the descriptor, write it back to this path and exit without a window")
	font := fs.String("font", "", "TTF font for the editor chrome")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logger.New(env.Get(env.LogPath, logger.DefaultPath))
	prefs, err := engineconfig.Load(*configPath)
	if err != nil {
		log.Warnf("%v", err)
	}
	prefs.Sources = env.List(env.Sources, prefs.Sources)
	if fs.NArg() > 0 {
		prefs.Sources = fs.Args()
	}

	opts := graphics.DefaultOptions()
	opts.Fullscreen = *fullscreen
	ed, err := editor.New(prefs, log, float32(opts.Width), float32(opts.Height))
	if err != nil {
		return err
	}
	loadErr := loadInitial(ed, prefs.Sources)

	if *exportPath != "" {
		if loadErr != nil {
			return loadErr
		}
		return ed.ExportTo(*exportPath)
	}

	app := newApp(ed, *configPath)
	if prefs.WatchDescriptors {
		w, err := descriptor.Watch(prefs.Sources, log)
		if err != nil {
			log.Warnf("watch: %v", err)
		} else {
			defer w.Close()
			app.watch = w
		}
	}
	app.fontPath = *font
	graphics.Run(opts, app.update, ed.Scene.Env.Background, app.draw)
	return app.savePrefs()
}

// loadInitial ingests the first valid descriptor. With none the editor starts
// empty.
func loadInitial(ed *editor.Editor, sources []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), startupLoadTimeout)
	defer cancel()
	l := &descriptor.Loader{Sources: sources, Log: ed.Log()}
	doc, src, err := l.Load(ctx)
	if err != nil {
		ed.Log().Warnf("starting with an empty scene: %v", err)
		return err
	}
	ed.Ingest(doc, src)
	ed.FrameSelection()
	return nil
}
