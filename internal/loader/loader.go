// Package loader reads *.graph.hcl model files into the object graph the
// cycle checks run against.
//
// A model file declares packages of types, the fields holding references
// between them, and the enclosing-scope context that drives canonical
// naming:
//
//	package "com.example.store" {
//	  type "Registry" {
//	    field "cache" { type = "com.example.store.Cache" }
//	  }
//	  type "Session" {
//	    outer = "com.example.store.Registry"
//	  }
//	}
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/trujunzhang/cyclefinder/internal/graph"
	"github.com/trujunzhang/cyclefinder/internal/pathfilter"
)

// Loader discovers and parses model files
type Loader struct {
	logger hclog.Logger
}

// New creates a loader with a default stderr logger
func New() *Loader {
	return &Loader{
		logger: hclog.New(&hclog.LoggerOptions{
			Name:   "cyclefinder-loader",
			Level:  hclog.Warn,
			Output: os.Stderr,
		}),
	}
}

// NewWithLogger creates a loader with a custom logger
func NewWithLogger(logger hclog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads every model file under dir selected by the filter and
// assembles the object graph. A nil filter selects the default
// **/*.graph.hcl set. Files are parsed in sorted path order so duplicate
// detection and diagnostics are deterministic.
func (l *Loader) Load(dir string, filter *pathfilter.Filter) (*graph.Graph, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory does not exist: %s", dir)
		}
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if filter == nil {
		filter = pathfilter.ModelFilter()
	}
	files, err := filter.FilterFilesAbs(absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to discover model files: %w", err)
	}
	sort.Strings(files)
	l.logger.Debug("discovered model files", "dir", absDir, "count", len(files))

	g := graph.New()
	parser := hclparse.NewParser()
	for _, path := range files {
		n, err := l.loadFile(parser, path, g)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("parsed model file", "file", path, "types", n)
	}
	l.logger.Debug("model graph assembled", "types", g.Len())

	return g, nil
}
