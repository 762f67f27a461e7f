package entity

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdstream/internal/logging"
)

// entitiesYAML is the named-entity table, name (without "&" and ";") to
// replacement text.
//
//go:embed entities.yaml
var entitiesYAML []byte

//nolint:gochecknoglobals // Process-wide immutable table, loaded once
var (
	named     map[string]string
	namedOnce sync.Once
)

// namedTable returns the process-wide named-entity map, loading it on first
// use. A missing or malformed table degrades to an empty map in release
// builds, so all named references pass through verbatim; debug builds abort
// via debugAssert.
func namedTable() map[string]string {
	namedOnce.Do(func() {
		var table map[string]string
		if err := yaml.Unmarshal(entitiesYAML, &table); err != nil || len(table) == 0 {
			logging.Default().Error("entity table unavailable",
				logging.FieldError, err)
			debugAssert(false, "entity table failed to load")
			table = map[string]string{}
		}
		named = table
	})
	return named
}
