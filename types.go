package arxsense

import "github.com/arxlang/arxsense/internal/store"

// Public type aliases for internal store types used in the QueryBuilder
// API. These are Go type aliases (=) — identical to the internal types at
// compile time. External consumers use these names; no conversion is needed.

type Store = store.Store
type Library = store.Library
type Function = store.Function
type LibrarySummary = store.LibrarySummary
