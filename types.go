package shapes

import "github.com/jward/shapes/internal/store"

// Aliases for the store types that appear in the Catalog API, so callers
// outside this module can name them.
type Store = store.Store
type ScriptRun = store.ScriptRun
type KindCount = store.KindCount
