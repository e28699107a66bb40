package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and caching the catalog from YAML files
type Loader struct {
	dir     string
	catalog *Catalog
	mu      sync.RWMutex
	loaded  bool
}

// NewLoader creates a new catalog loader for dir
func NewLoader(dir string) *Loader {
	if dir == "" {
		dir = DefaultDir
	}
	return &Loader{dir: dir}
}

// Load reads and validates both catalog files. A failed load keeps the previous catalog.
func (l *Loader) Load() error {
	var qf questFile
	if err := readYAML(filepath.Join(l.dir, QuestsFile), &qf); err != nil {
		return err
	}
	var tf tutorialFile
	if err := readYAML(filepath.Join(l.dir, TutorialsFile), &tf); err != nil {
		return err
	}

	c, err := New(qf.Quests, tf.Tutorials)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.catalog = c
	l.loaded = true
	l.mu.Unlock()
	return nil
}

// Catalog returns the loaded catalog, loading it lazily on first use
func (l *Loader) Catalog() (*Catalog, error) {
	l.mu.RLock()
	if l.loaded {
		c := l.catalog
		l.mu.RUnlock()
		return c, nil
	}
	l.mu.RUnlock()

	if err := l.Load(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog, nil
}

// Dir is the directory the loader reads from
func (l *Loader) Dir() string {
	return l.dir
}

// Parse builds a catalog from raw YAML documents
func Parse(questsYAML, tutorialsYAML []byte) (*Catalog, error) {
	var qf questFile
	if err := yaml.Unmarshal(questsYAML, &qf); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseYAML, err)
	}
	var tf tutorialFile
	if err := yaml.Unmarshal(tutorialsYAML, &tf); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseYAML, err)
	}
	return New(qf.Quests, tf.Tutorials)
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgReadFile, path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgParseYAML, path, err)
	}
	return nil
}

// MustLoad loads dir or panics. Intended for tests and tools.
func MustLoad(dir string) *Catalog {
	c, err := NewLoader(dir).Catalog()
	if err != nil {
		panic(err)
	}
	return c
}
