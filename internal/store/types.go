package store

// Library is one descriptor file's worth of functions, keyed by the file's
// base name with the extension stripped.
type Library struct {
	ID        int64
	Name      string
	Functions []*Function
}

// Function is one exported function of a library. ArgTypes is never nil:
// a zero-argument function carries the empty slice.
type Function struct {
	ID         int64
	LibraryID  int64
	Name       string
	ArgTypes   []string
	Alias      string
	ReturnType string
}

// LibrarySummary pairs a library name with its function count, for
// diagnostics and the libs listing.
type LibrarySummary struct {
	Name          string
	FunctionCount int
}
