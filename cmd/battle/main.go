package main

import (
	"os"

	"github.com/hubastard/skirmish/engine/core"
	glbackend "github.com/hubastard/skirmish/engine/gfx/gl"
	"github.com/hubastard/skirmish/engine/logger"
	"github.com/hubastard/skirmish/engine/platform"
)

func main() {
	cfg, err := core.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("config")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if err := core.Run(&App{}, cfg, platform.NewGLFWWindow, glbackend.NewRendererGL); err != nil {
		logger.Log.WithError(err).Error("run")
		os.Exit(1)
	}
}
