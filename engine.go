package arxsense

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arxlang/arxsense/internal/descriptor"
	"github.com/arxlang/arxsense/internal/store"
)

// Default descriptor conventions: <root>/c_map/<library>.map.
const (
	DefaultDirName   = "c_map"
	DefaultExtension = ".map"
)

// Engine owns the library registry: it resolves the descriptor directory
// from the project root, loads descriptors into the in-memory store, and
// keeps the registry live while watching for changes. The registry handle
// is explicit — there is no process-wide singleton.
type Engine struct {
	store   *store.Store
	root    string
	dirName string
	ext     string
	logger  *slog.Logger

	// mu serializes Reload between the watch loop and direct callers.
	mu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithDirName overrides the descriptor directory name under the project
// root (default "c_map").
func WithDirName(name string) Option {
	return func(e *Engine) {
		e.dirName = name
	}
}

// WithExtension overrides the descriptor file extension (default ".map").
func WithExtension(ext string) Option {
	return func(e *Engine) {
		e.ext = ext
	}
}

// WithLogger sets the logger used for load diagnostics. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine for the given project root with an empty registry.
// An empty root means no project is open: Reload leaves the registry empty
// and every query answers with nothing.
func New(projectRoot string, opts ...Option) (*Engine, error) {
	s, err := store.NewStore()
	if err != nil {
		return nil, fmt.Errorf("arxsense: create store: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("arxsense: migrate: %w", err)
	}

	e := &Engine{
		store:   s,
		root:    projectRoot,
		dirName: DefaultDirName,
		ext:     DefaultExtension,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Close releases the Engine's registry. The registry lives in memory, so
// closing discards it entirely.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Store returns the underlying registry store for direct access.
func (e *Engine) Store() *Store {
	return e.store
}

// Query returns a new QueryBuilder wrapping the registry.
func (e *Engine) Query() *QueryBuilder {
	return &QueryBuilder{store: e.store}
}

// DescriptorDir returns the resolved descriptor directory, or "" when no
// project root is configured.
func (e *Engine) DescriptorDir() string {
	if e.root == "" {
		return ""
	}
	return filepath.Join(e.root, e.dirName)
}

// Libraries returns every loaded library with its function count, sorted
// by name.
func (e *Engine) Libraries() ([]LibrarySummary, error) {
	return e.store.LibrarySummaries()
}

// Reload rebuilds the entire registry from the descriptor directory in a
// single clear-then-rebuild transaction. It never diffs incrementally:
// the rebuild cost buys the invariant that no stale entry from a deleted
// or renamed descriptor can survive.
//
// A missing project root or descriptor directory empties the registry and
// returns nil — absence is not an error. An unreadable descriptor file
// contributes zero functions and is logged at Warn; the remaining files
// still load.
func (e *Engine) Reload() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	libs := e.loadLibraries(e.DescriptorDir())
	if err := e.store.ReplaceAll(libs); err != nil {
		return fmt.Errorf("arxsense: reload: %w", err)
	}

	names := make([]string, 0, len(libs))
	total := 0
	for _, lib := range libs {
		names = append(names, lib.Name)
		total += len(lib.Functions)
	}
	e.logger.Info("library registry loaded",
		"libraries", names, "functions", total)
	return nil
}

// loadLibraries enumerates descriptor files and parses each into a
// library named after its filename stem.
func (e *Engine) loadLibraries(dir string) []*store.Library {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Missing directory: the registry becomes empty.
		return nil
	}

	var libs []*store.Library
	index := make(map[string]int)
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), e.ext) {
			continue
		}
		name := strings.TrimSuffix(ent.Name(), e.ext)

		content, err := os.ReadFile(filepath.Join(dir, ent.Name()))
		if err != nil {
			e.logger.Warn("skipping unreadable descriptor",
				"file", ent.Name(), "error", err)
			continue
		}

		lib := &store.Library{
			Name:      name,
			Functions: toStoreFunctions(descriptor.Parse(string(content))),
		}
		// Later enumeration wins if the same stem somehow appears twice.
		if i, ok := index[name]; ok {
			libs[i] = lib
		} else {
			index[name] = len(libs)
			libs = append(libs, lib)
		}
	}
	return libs
}

func toStoreFunctions(funcs []descriptor.Function) []*store.Function {
	out := make([]*store.Function, 0, len(funcs))
	for _, fn := range funcs {
		out = append(out, &store.Function{
			Name:       fn.Name,
			ArgTypes:   fn.ArgTypes,
			Alias:      fn.Alias,
			ReturnType: fn.ReturnType,
		})
	}
	return out
}
