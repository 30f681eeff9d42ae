// Package home lays out the hierarh workspace directory.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the hierarh home directory.
	DefaultDirName = ".hierarh"

	// DataDirName is the subdirectory for pipeline outputs.
	DataDirName = "data"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Output file names inside the data directory.
const (
	ArticlesFileName = "articles.json"
	SeesFileName     = "sees.json"
	ReportFileName   = "unparsed.yaml"
	SignalsFileName  = "signals.txt"
)

// Dir is the hierarh home directory:
//
//	~/.hierarh/
//	  config.yaml
//	  data/articles.json, sees.json, unparsed.yaml, signals.txt
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.hierarh).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// DataPath returns the path to the data directory.
func (d *Dir) DataPath() string {
	return filepath.Join(d.path, DataDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// ArticlesPath returns the default articles output.
func (d *Dir) ArticlesPath() string { return d.dataFile(ArticlesFileName) }

// SeesPath returns the default structured sees output.
func (d *Dir) SeesPath() string { return d.dataFile(SeesFileName) }

// ReportPath returns the default unparsed row report.
func (d *Dir) ReportPath() string { return d.dataFile(ReportFileName) }

// SignalsPath returns the default signal dump.
func (d *Dir) SignalsPath() string { return d.dataFile(SignalsFileName) }

func (d *Dir) dataFile(name string) string {
	return filepath.Join(d.DataPath(), name)
}

// EnsureExists creates the home and data directories.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.DataPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Exists reports whether the home directory exists.
func (d *Dir) Exists() bool { return exists(d.path) }

// ConfigExists reports whether the home directory holds a config file.
func (d *Dir) ConfigExists() bool { return exists(d.ConfigPath()) }

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Or returns path, or fallback when path is empty.
func Or(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}
