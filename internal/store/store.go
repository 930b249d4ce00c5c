// Package store is the SQLite data access layer for the ARX library
// registry. The database always lives in memory: the registry is rebuilt
// wholesale on every reload and nothing is ever persisted to disk.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store holds the registry's three tables behind a single connection.
type Store struct {
	db *sql.DB
}

// NewStore opens a fresh in-memory registry database.
//
// The pool is pinned to one connection: an in-memory SQLite database is
// private to the connection that opened it, so a second pooled connection
// would silently see an empty database.
func NewStore() (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=ON")
	if err != nil {
		return nil, fmt.Errorf("open registry database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping registry database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection, discarding the registry.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates the registry tables. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS libraries (
  id              INTEGER PRIMARY KEY,
  name            TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS functions (
  id              INTEGER PRIMARY KEY,
  library_id      INTEGER NOT NULL REFERENCES libraries(id) ON DELETE CASCADE,
  name            TEXT NOT NULL,
  alias           TEXT NOT NULL,
  return_type     TEXT NOT NULL,
  ordinal         INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS function_params (
  id              INTEGER PRIMARY KEY,
  function_id     INTEGER NOT NULL REFERENCES functions(id) ON DELETE CASCADE,
  ordinal         INTEGER NOT NULL,
  type_expr       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_functions_library ON functions(library_id, ordinal);
CREATE INDEX IF NOT EXISTS idx_params_function ON function_params(function_id, ordinal);
`

// ReplaceAll clears the registry and installs the given libraries in a
// single transaction. Readers never observe a state mixing old and new
// contents: the swap either completes or the previous registry survives.
func (s *Store) ReplaceAll(libs []*Library) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("replace registry: begin: %w", err)
	}
	defer tx.Rollback()

	// Child rows first; ON DELETE CASCADE covers them too, but explicit
	// deletes keep the rebuild order obvious.
	for _, stmt := range []string{
		"DELETE FROM function_params",
		"DELETE FROM functions",
		"DELETE FROM libraries",
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("replace registry: clear: %w", err)
		}
	}

	for _, lib := range libs {
		res, err := tx.Exec("INSERT INTO libraries (name) VALUES (?)", lib.Name)
		if err != nil {
			return fmt.Errorf("replace registry: insert library %s: %w", lib.Name, err)
		}
		libID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("replace registry: library id: %w", err)
		}

		for ord, fn := range lib.Functions {
			res, err := tx.Exec(
				"INSERT INTO functions (library_id, name, alias, return_type, ordinal) VALUES (?, ?, ?, ?, ?)",
				libID, fn.Name, fn.Alias, fn.ReturnType, ord,
			)
			if err != nil {
				return fmt.Errorf("replace registry: insert function %s.%s: %w", lib.Name, fn.Name, err)
			}
			fnID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("replace registry: function id: %w", err)
			}
			for pord, typ := range fn.ArgTypes {
				if _, err := tx.Exec(
					"INSERT INTO function_params (function_id, ordinal, type_expr) VALUES (?, ?, ?)",
					fnID, pord, typ,
				); err != nil {
					return fmt.Errorf("replace registry: insert param %d of %s.%s: %w", pord, lib.Name, fn.Name, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace registry: commit: %w", err)
	}
	return nil
}

// LibraryNames returns every registered library name, sorted for
// reproducible completion ordering.
func (s *Store) LibraryNames() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM libraries ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("library names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("library names: scan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// LibrarySummaries returns every library with its function count, sorted
// by name. Used for the loaded-libraries diagnostic.
func (s *Store) LibrarySummaries() ([]LibrarySummary, error) {
	rows, err := s.db.Query(
		`SELECT l.name, COUNT(f.id)
		 FROM libraries l LEFT JOIN functions f ON f.library_id = l.id
		 GROUP BY l.id ORDER BY l.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("library summaries: %w", err)
	}
	defer rows.Close()

	var sums []LibrarySummary
	for rows.Next() {
		var sum LibrarySummary
		if err := rows.Scan(&sum.Name, &sum.FunctionCount); err != nil {
			return nil, fmt.Errorf("library summaries: scan: %w", err)
		}
		sums = append(sums, sum)
	}
	return sums, rows.Err()
}

// FunctionsByLibrary returns a library's functions in declaration order,
// with argument types populated. Returns nil (no error) for an unknown
// library — missing data is an empty answer, not a failure.
func (s *Store) FunctionsByLibrary(library string) ([]*Function, error) {
	rows, err := s.db.Query(
		`SELECT f.id, f.library_id, f.name, f.alias, f.return_type
		 FROM functions f JOIN libraries l ON f.library_id = l.id
		 WHERE l.name = ? ORDER BY f.ordinal`,
		library,
	)
	if err != nil {
		return nil, fmt.Errorf("functions by library: %w", err)
	}
	defer rows.Close()

	var funcs []*Function
	for rows.Next() {
		fn := &Function{}
		if err := rows.Scan(&fn.ID, &fn.LibraryID, &fn.Name, &fn.Alias, &fn.ReturnType); err != nil {
			return nil, fmt.Errorf("functions by library: scan: %w", err)
		}
		funcs = append(funcs, fn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("functions by library: rows: %w", err)
	}

	for _, fn := range funcs {
		args, err := s.functionParams(fn.ID)
		if err != nil {
			return nil, err
		}
		fn.ArgTypes = args
	}
	return funcs, nil
}

// FunctionByName returns the first function named name in the given
// library (declaration order), or nil if the library or function is
// unknown. Duplicate names within a library are not rejected at parse
// time; first match wins.
func (s *Store) FunctionByName(library, name string) (*Function, error) {
	fn := &Function{}
	err := s.db.QueryRow(
		`SELECT f.id, f.library_id, f.name, f.alias, f.return_type
		 FROM functions f JOIN libraries l ON f.library_id = l.id
		 WHERE l.name = ? AND f.name = ? ORDER BY f.ordinal LIMIT 1`,
		library, name,
	).Scan(&fn.ID, &fn.LibraryID, &fn.Name, &fn.Alias, &fn.ReturnType)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("function by name: %w", err)
	}

	args, err := s.functionParams(fn.ID)
	if err != nil {
		return nil, err
	}
	fn.ArgTypes = args
	return fn, nil
}

// functionParams loads a function's argument types in declared order.
// The result is never nil.
func (s *Store) functionParams(functionID int64) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT type_expr FROM function_params WHERE function_id = ? ORDER BY ordinal",
		functionID,
	)
	if err != nil {
		return nil, fmt.Errorf("function params: %w", err)
	}
	defer rows.Close()

	args := []string{}
	for rows.Next() {
		var typ string
		if err := rows.Scan(&typ); err != nil {
			return nil, fmt.Errorf("function params: scan: %w", err)
		}
		args = append(args, typ)
	}
	return args, rows.Err()
}
