package ris

import (
	"github.com/simonhull/ris/internal/registry"
	"github.com/simonhull/ris/internal/types"
)

// Tag is an alias to types.Tag.
type Tag = types.Tag

// TagTable is an alias to types.TagTable.
type TagTable = types.TagTable

// Distinguished record delimiters.
const (
	StartTag = types.StartTag
	EndTag   = types.EndTag
)

// NewTagTable builds a custom tag table. See WithTagTable.
func NewTagTable(name string, start, end Tag, tags, listTags []Tag) (*TagTable, error) {
	return types.NewTagTable(name, start, end, tags, listTags)
}

// DefaultTagTable returns the tag table of the default dialect.
func DefaultTagTable() *TagTable {
	return registry.Get(registry.Default)
}

// RegisterDialect makes table available to WithDialect under table.Name().
// Registering a name twice replaces the earlier table.
func RegisterDialect(table *TagTable) {
	registry.Register(table)
}

// Dialects returns the names of all registered dialects.
func Dialects() []string {
	return registry.Names()
}
