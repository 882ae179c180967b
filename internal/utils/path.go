package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// PathResolver locates user-supplied files such as custom rule tables.
type PathResolver struct {
	configDir     string
	executableDir string
	workDir       string
}

// NewPathResolver creates a resolver that searches configDir, then the
// executable's directory, then the working directory. Locations that cannot
// be determined are skipped.
func NewPathResolver(configDir string) *PathResolver {
	pr := &PathResolver{configDir: configDir}
	if dir, err := GetExecutableDir(); err == nil {
		pr.executableDir = dir
	}
	if cwd, err := os.Getwd(); err == nil {
		pr.workDir = cwd
	}
	return pr
}

// SearchPaths returns the directories a relative name is looked up in, in order.
func (pr *PathResolver) SearchPaths() []string {
	var dirs []string
	for _, dir := range []string{pr.configDir, pr.executableDir, pr.workDir} {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Resolve returns name itself when it is absolute, otherwise the first
// existing file found under SearchPaths.
func (pr *PathResolver) Resolve(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty path")
	}
	if filepath.IsAbs(name) {
		if !FileExists(name) {
			return "", fmt.Errorf("%s: %w", name, os.ErrNotExist)
		}
		return name, nil
	}
	path, err := FindFileInPaths(name, pr.SearchPaths())
	if err != nil {
		return "", fmt.Errorf("%s not found in %v: %w", name, pr.SearchPaths(), err)
	}
	return path, nil
}

// FindFileInPaths searches for a file in multiple possible locations
func FindFileInPaths(filename string, searchPaths []string) (string, error) {
	for _, searchPath := range searchPaths {
		fullPath := filepath.Join(searchPath, filename)
		if FileExists(fullPath) {
			return fullPath, nil
		}
	}
	return "", os.ErrNotExist
}

// RuntimeInfo returns debug information about the resolver's environment
func (pr *PathResolver) RuntimeInfo() map[string]string {
	return map[string]string{
		"config_dir":     pr.configDir,
		"executable_dir": pr.executableDir,
		"current_dir":    pr.workDir,
		"os":             runtime.GOOS,
		"arch":           runtime.GOARCH,
	}
}
