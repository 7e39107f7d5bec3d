// Package main provides the entry point for the scout CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/scouthq/scout/internal/config"
	"github.com/scouthq/scout/internal/output"
	"github.com/scouthq/scout/internal/store"
	"github.com/scouthq/scout/internal/tracker"
)

// projectContext resolves a project path argument to the absolute path,
// its display name, and its per-project document store.
type projectContext struct {
	Path  string
	Name  string
	Store *store.Store
}

// resolveProject turns an optional positional path argument into a
// project context, defaulting to the working directory.
func resolveProject(args []string) (projectContext, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return projectContext{}, output.NewSystemErrorWithCause("resolving working directory", err)
		}
		path = wd
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return projectContext{}, output.NewUserError(fmt.Sprintf("invalid project path %q", path))
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return projectContext{}, output.NewUserError(fmt.Sprintf("project path %q is not a directory", abs))
	}

	return projectContext{
		Path:  abs,
		Name:  filepath.Base(abs),
		Store: store.New(config.ProjectDataDir(abs)),
	}, nil
}

// globalStore opens the data-root store holding the current-project
// pointer and the error database.
func globalStore() *store.Store {
	return store.New(config.DataDir())
}

// globalTracker opens the error tracker over the global store.
func globalTracker() *tracker.Tracker {
	return tracker.New(globalStore())
}
