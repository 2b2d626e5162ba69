// Package library gives access to an on-disk textbook bundle: module files
// under modules/<id>/index.cnxml and the collection file describing the
// chapter hierarchy. Parsed modules are cached; the cache is safe for
// concurrent readers.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/studylink/cnxparse/internal/cnxml"
	"github.com/studylink/cnxparse/internal/flatten"
)

var moduleIDPattern = regexp.MustCompile(`^m\d+$`)

// entry is one cached parse result. The flattened text is cached alongside
// the module; flattening is pure, so the pair stays consistent.
type entry struct {
	module *cnxml.Module
	flat   string
}

// Library resolves and caches textbook modules.
type Library struct {
	basePath string
	parser   *cnxml.Parser

	mu        sync.RWMutex
	cache     map[string]*entry
	structure *cnxml.Collection
}

func New(basePath string, parser *cnxml.Parser) *Library {
	if parser == nil {
		parser = cnxml.NewParser()
	}
	return &Library{
		basePath: basePath,
		parser:   parser,
		cache:    make(map[string]*entry),
	}
}

// ModulePath returns the on-disk path for a module id.
func (l *Library) ModulePath(id string) string {
	return filepath.Join(l.basePath, "modules", id, "index.cnxml")
}

// Module parses (or returns the cached parse of) one module.
func (l *Library) Module(id string) (*cnxml.Module, error) {
	e, err := l.load(id)
	if err != nil {
		return nil, err
	}
	return e.module, nil
}

// FlatText returns the plain-text rendering of one module.
func (l *Library) FlatText(id string) (string, error) {
	e, err := l.load(id)
	if err != nil {
		return "", err
	}
	return e.flat, nil
}

func (l *Library) load(id string) (*entry, error) {
	if !moduleIDPattern.MatchString(id) {
		return nil, fmt.Errorf("invalid module id %q", id)
	}

	l.mu.RLock()
	e, ok := l.cache[id]
	l.mu.RUnlock()
	if ok {
		return e, nil
	}

	// Parse outside the lock; batch parsing runs modules concurrently.
	f, err := os.Open(l.ModulePath(id))
	if err != nil {
		return nil, fmt.Errorf("open module %s: %w", id, err)
	}
	defer f.Close()

	m, err := l.parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse module %s: %w", id, err)
	}
	e = &entry{module: m, flat: flatten.Flatten(m)}

	l.mu.Lock()
	if cached, ok := l.cache[id]; ok {
		e = cached // another goroutine won the race; keep its result
	} else {
		l.cache[id] = e
	}
	l.mu.Unlock()
	return e, nil
}

// Structure parses the collection file describing the chapter hierarchy.
// The result is cached after the first call.
func (l *Library) Structure() (*cnxml.Collection, error) {
	l.mu.RLock()
	s := l.structure
	l.mu.RUnlock()
	if s != nil {
		return s, nil
	}

	path, err := l.collectionPath()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open collection: %w", err)
	}
	defer f.Close()

	col, err := cnxml.ParseCollection(f)
	if err != nil {
		return nil, fmt.Errorf("parse collection %s: %w", filepath.Base(path), err)
	}

	l.mu.Lock()
	l.structure = col
	l.mu.Unlock()
	return col, nil
}

// ModuleIDs lists every module id the bundle holds: from the collection when
// present, else by scanning the modules directory.
func (l *Library) ModuleIDs() ([]string, error) {
	if col, err := l.Structure(); err == nil {
		if ids := col.ModuleIDs(); len(ids) > 0 {
			return ids, nil
		}
	}

	dirs, err := os.ReadDir(filepath.Join(l.basePath, "modules"))
	if err != nil {
		return nil, fmt.Errorf("scan modules: %w", err)
	}
	var ids []string
	for _, d := range dirs {
		if d.IsDir() && moduleIDPattern.MatchString(d.Name()) {
			ids = append(ids, d.Name())
		}
	}
	return ids, nil
}

// collectionPath finds the first *.collection.xml under collections/.
func (l *Library) collectionPath() (string, error) {
	dir := filepath.Join(l.basePath, "collections")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("scan collections: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".collection.xml") {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("no collection file under %s", dir)
}

// SearchResult is one module matching a search query.
type SearchResult struct {
	ModuleID string `json:"module_id"`
	Title    string `json:"title"`
}

// Search runs a case-insensitive substring match over module titles and
// flattened text, across every module the bundle lists. Modules that fail to
// parse are skipped.
func (l *Library) Search(query string) ([]SearchResult, error) {
	ids, err := l.ModuleIDs()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	var results []SearchResult
	for _, id := range ids {
		e, err := l.load(id)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(e.module.Title), q) ||
			strings.Contains(strings.ToLower(e.flat), q) {
			results = append(results, SearchResult{ModuleID: id, Title: e.module.Title})
		}
	}
	return results, nil
}
