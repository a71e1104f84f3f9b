// Package registry manages named tag table configurations ("dialects").
package registry

import (
	"slices"
	"sync"

	"github.com/simonhull/ris/internal/types"
)

// Default is the name of the dialect used when none is requested.
const Default = "ris"

// Flat is the name of the dialect without list tags: every tag keeps only
// its last value.
const Flat = "flat"

var (
	mu     sync.RWMutex
	tables = make(map[string]*types.TagTable)
)

func init() {
	Register(types.MustTagTable(Default, types.StartTag, types.EndTag, types.DefaultTags, types.DefaultListTags))
	Register(types.MustTagTable(Flat, types.StartTag, types.EndTag, types.DefaultTags, nil))
}

// Register registers a tag table under its name, replacing any table
// previously registered under the same name.
func Register(table *types.TagTable) {
	mu.Lock()
	defer mu.Unlock()
	tables[table.Name()] = table
}

// Get returns the table registered under name.
// Returns nil if no table is registered for the name.
func Get(name string) *types.TagTable {
	mu.RLock()
	defer mu.RUnlock()
	return tables[name]
}

// Names returns the registered dialect names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
