package ris

import (
	"github.com/simonhull/ris/internal/types"
)

// Record is an alias to types.Record.
// Re-exporting from internal/types to maintain public API.
type Record = types.Record

// Value is an alias to types.Value.
type Value = types.Value
