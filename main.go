/*
Builds the lathe scene: revolves the bezier profile into a body,
exports it, and optionally keeps rebuilding while the scene file changes.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/lathe/engine"
	"github.com/spaghettifunk/lathe/engine/config"
	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/testbed"
)

func main() {
	var (
		scenePath = flag.String("config", "", "TOML scene file, the built-in vase scene when empty")
		watch     = flag.Bool("watch", false, "rebuild whenever the scene file changes")
		initScene = flag.Bool("init", false, "write the default scene to -config and exit")
		outputDir = flag.String("out", "", "output directory, overrides [application] output_dir")
		logLevel  = flag.String("log-level", "", "overrides [application] log_level")
	)
	flag.Parse()

	if *initScene {
		if *scenePath == "" {
			core.LogFatal("-init needs -config")
		}
		if err := config.Save(*scenePath, config.Default()); err != nil {
			core.LogFatal(err.Error())
		}
		core.LogInfo("wrote %s", *scenePath)
		return
	}

	tb := testbed.NewTestGame(&engine.ApplicationConfig{
		Name:      "lathe",
		ScenePath: *scenePath,
		Watch:     *watch,
		LogLevel:  *logLevel,
		OutputDir: *outputDir,
	})

	e, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	// cancel the run on sigterm and other system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogError(runErr.Error())
		os.Exit(1)
	}
}
