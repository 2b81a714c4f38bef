package main

import (
	"context"
	"os"

	"github.com/agbru/pireduce/internal/app"
	"github.com/agbru/pireduce/internal/engine"
	apperrors "github.com/agbru/pireduce/internal/errors"
)

func main() {
	// Worker processes are this binary re-executed by the process backend.
	if engine.IsWorkerProcess() {
		os.Exit(engine.RunWorker(os.Stderr))
	}

	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.HandleError(err, os.Stderr))
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
