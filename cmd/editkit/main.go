package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"editkit/internal/logging"
	"editkit/internal/mount"
	"editkit/internal/state"
	"editkit/internal/syntax"
)

var logger = logging.GetLogger()

func main() {
	renderPath := flag.String("render", "", "Render a source file as highlighted HTML to stdout")
	langID := flag.String("lang", "", "Language id for -render (default: detect from extension)")
	mountPoint := flag.String("mount", "", "Mount point for the project filesystem")
	projectFile := flag.String("project", "", "Project state file (required with -mount)")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Parse()

	if *verbose {
		logger.SetLevel(logging.LevelDebug)
	}

	switch {
	case *renderPath != "":
		if err := render(*renderPath, *langID); err != nil {
			logger.Error("Render failed: %v", err)
			os.Exit(1)
		}
	case *mountPoint != "":
		if *projectFile == "" {
			logger.Error("-mount requires -project")
			os.Exit(1)
		}
		if err := serve(filepath.Clean(*mountPoint), *projectFile); err != nil {
			logger.Error("Mount failed: %v", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// render highlights one file and writes the HTML fragment to stdout.
func render(path, lang string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if lang == "" {
		lang = syntax.DetectLanguage(path)
	}
	logger.Debug("Rendering %s as %s (%d bytes)", path, lang, len(data))

	html := syntax.Highlight(string(data), lang, nil, nil, syntax.NoActiveMatch)
	_, err = fmt.Println(html)
	return err
}

// serve mounts the project tree over FUSE and blocks until a signal.
func serve(mountPoint, projectFile string) error {
	logger.Info("Starting editkit...")

	manager, err := state.NewManager(projectFile)
	if err != nil {
		return fmt.Errorf("failed to initialize state manager: %w", err)
	}

	root, err := manager.Load()
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	fs := mount.New(root, manager)
	if err := fs.Mount(mountPoint); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Received signal %v, shutting down", sig)

	if err := fs.Unmount(mountPoint); err != nil {
		return err
	}
	logger.Info("Clean shutdown complete")
	return nil
}
