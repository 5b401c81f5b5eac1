// Package registry manages the set of supported red-teaming detectors.
//
// Detectors are risk categories (stereotypes, harmful_content, ...) a
// pipeline run can target. The known set is loaded once from a TOML
// configuration source at construction:
//
//	[detectors]
//	detector_names = ["stereotypes", "harmful_content"]
//
// A missing or malformed source degrades to an empty known set with a
// logged warning rather than failing construction. An empty registry
// rejects every requested detector, so a packaging problem surfaces at
// validation time instead of crashing pipeline setup.
package registry

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/redteam/internal/logging"
)

// detectorsFile is the TOML shape of the configuration source.
type detectorsFile struct {
	Detectors struct {
		DetectorNames []string `toml:"detector_names"`
	} `toml:"detectors"`
}

// UnsupportedDetectorError reports every requested detector missing from
// the known set, alongside the sorted known set for discovery.
type UnsupportedDetectorError struct {
	Unsupported []string
	Supported   []string
}

func (e *UnsupportedDetectorError) Error() string {
	return fmt.Sprintf("unsupported detectors: [%s]; supported detectors are: [%s]",
		strings.Join(e.Unsupported, ", "),
		strings.Join(e.Supported, ", "))
}

// Registry holds the immutable known-detector set for one pipeline
// instance. Each instance loads its own copy so tests can run with
// different configurations side by side.
type Registry struct {
	known  map[string]struct{}
	logger *logging.Logger
}

// New loads the known-detector set from the TOML file at path.
//
// Construction never fails: a missing or unreadable file and a malformed
// file both degrade to an empty known set, warned through the logger.
func New(path string, logger *logging.Logger) *Registry {
	r := &Registry{
		known:  make(map[string]struct{}),
		logger: logger.Named("registry"),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Warn(context.Background(), "detectors configuration not readable, no detectors will be supported",
			zap.String("path", path),
			zap.Error(err))
		return r
	}

	var file detectorsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		r.logger.Warn(context.Background(), "detectors configuration malformed, no detectors will be supported",
			zap.String("path", path),
			zap.Error(err))
		return r
	}

	for _, name := range file.Detectors.DetectorNames {
		r.known[name] = struct{}{}
	}

	r.logger.Debug(context.Background(), "detectors configuration loaded",
		zap.String("path", path),
		zap.Int("count", len(r.known)))

	return r
}

// Validate checks that every requested detector is in the known set.
//
// On failure it returns an *UnsupportedDetectorError listing every
// unrecognized entry, not just the first, in request order.
func (r *Registry) Validate(detectors []string) error {
	var unsupported []string
	for _, d := range detectors {
		if _, ok := r.known[d]; !ok {
			unsupported = append(unsupported, d)
		}
	}
	if len(unsupported) > 0 {
		return &UnsupportedDetectorError{
			Unsupported: unsupported,
			Supported:   r.ListSupported(),
		}
	}
	return nil
}

// ListSupported returns the known set as a sorted slice.
func (r *Registry) ListSupported() []string {
	names := make([]string, 0, len(r.known))
	for name := range r.known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
