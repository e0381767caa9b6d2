package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/smasonuk/geosphere"
	"github.com/smasonuk/geosphere/render"
)

func main() {
	configPath := flag.String("config", "", "scene config file (YAML)")
	verbose := flag.Bool("v", false, "debug logging")
	wireframe := flag.Bool("wireframe", false, "outline triangles")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := geosphere.DefaultSceneConfig()
	if *configPath != "" {
		c, err := geosphere.LoadSceneConfig(*configPath)
		if err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = c
	}

	scene, err := cfg.Build()
	if err != nil {
		slog.Error("failed to build scene", "error", err)
		os.Exit(1)
	}
	slog.Info("scene ready", "objects", len(scene.Objects()))

	opts := render.Options{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		FPS:       cfg.Window.FPS,
		Wireframe: cfg.Window.Wireframe || *wireframe,
	}
	if err := render.Run(scene, opts, nil); err != nil {
		slog.Error("render loop failed", "error", err)
		os.Exit(1)
	}
}
