package ciutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// GoModFile marks the project root.
const GoModFile = "go.mod"

// maxTraversal bounds the upward directory search.
const maxTraversal = 10

// Common errors for project root detection
var (
	ErrProjectRootNotFound = errors.New("unable to find project root")
	ErrInvalidProjectRoot  = errors.New("invalid project root: no go.mod file found")
)

// FindProjectRoot returns the absolute path to the project root directory.
// Sources, in order:
//
//  1. TASK_API_PROJECT_ROOT (explicit override)
//  2. GITHUB_WORKSPACE on GitHub Actions
//  3. CI_PROJECT_DIR on GitLab CI
//  4. the nearest ancestor of the working directory holding go.mod
func FindProjectRoot(logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	candidates := []struct {
		source string
		dir    string
		active bool
	}{
		{EnvProjectRoot, os.Getenv(EnvProjectRoot), os.Getenv(EnvProjectRoot) != ""},
		{EnvGitHubWorkspace, os.Getenv(EnvGitHubWorkspace), IsGitHubActions()},
		{EnvGitLabProjectDir, os.Getenv(EnvGitLabProjectDir), IsGitLabCI()},
	}
	for _, c := range candidates {
		if !c.active {
			continue
		}
		if !isValidProjectRoot(c.dir) {
			return "", fmt.Errorf("%w at %s (from %s)", ErrInvalidProjectRoot, c.dir, c.source)
		}
		logger.Debug("using project root from environment", "source", c.source, "project_root", c.dir)
		return c.dir, nil
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return findProjectRootByTraversal(workingDir, logger)
}

// findProjectRootByTraversal walks upward from startDir looking for go.mod.
func findProjectRootByTraversal(startDir string, logger *slog.Logger) (string, error) {
	currentDir := startDir
	for i := 0; i < maxTraversal; i++ {
		if fileExists(filepath.Join(currentDir, GoModFile)) {
			logger.Debug("found project root", "project_root", currentDir)
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("%w from %s", ErrProjectRootNotFound, startDir)
}

func isValidProjectRoot(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	return fileExists(filepath.Join(dir, GoModFile))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
