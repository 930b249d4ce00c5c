// Package arxsense provides language intelligence for the ARX scripting
// language: library-name completion, member completion, and call-signature
// help, answered from a registry of external library descriptors.
//
// # Pipeline
//
// A project declares its external libraries in descriptor files named
// <library>.map under a c_map directory at the project root. Each file
// lists the library's exported functions after a [functions] marker:
//
//	[functions]
//	concat:str,str = strconcat > str
//	now: = clock_now > int
//
// The Engine loads every descriptor into an in-memory registry and keeps
// it live: a filesystem watcher triggers a full clear-and-rebuild whenever
// a descriptor is created, modified, renamed, or deleted. The registry is
// never diffed incrementally, so a deleted or renamed library can never
// leave stale entries behind.
//
// # Usage
//
// Create an Engine for a project root, load, and query:
//
//	e, err := arxsense.New("path/to/project")
//	if err != nil { ... }
//	defer e.Close()
//
//	err = e.Reload()
//
//	q := e.Query()
//	cands, err := q.CompletionsAt("mathlib.co", 10)
//	sig, err := q.SignatureHelpAt("mathlib.add(1,", 14)
//
// # Queries
//
// The [QueryBuilder] returned by [Engine.Query] classifies the editing
// position from the current line text and cursor offset alone:
//
//   - after the "using" keyword — every registered library name
//   - after "lib.prefix" — the library's functions matching the prefix
//   - inside "lib.fn(" — the function's signature with the active
//     parameter derived from the commas typed so far
//
// A fixed ARX reserved-word vocabulary ([Keywords]) is offered as a
// completion source regardless of registry state. Unknown libraries,
// unknown functions, and unclassifiable positions all produce empty
// answers, never errors.
package arxsense
