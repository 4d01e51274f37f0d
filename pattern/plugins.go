package pattern

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"plugin"
	"strings"
)

// LoadPlugins scans dir for shared objects exporting the pattern
// capability and registers each under its file name. A file that fails to
// open, lacks the symbol, or collides with a registered name is logged and
// skipped; discovery never aborts startup. Returns the names it loaded.
//
// A plugin exports either
//
//	var Pattern pattern.Pattern
//
// or a constructor
//
//	func New() pattern.Pattern
func (r *Registry) LoadPlugins(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("pattern: cannot scan %s: %v", dir, err)
		}
		return nil
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".so") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".so")
		p, err := openPlugin(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("pattern: skipping %s: %v", entry.Name(), err)
			continue
		}
		if err := r.Register(name, p); err != nil {
			log.Printf("pattern: skipping %s: %v", entry.Name(), err)
			continue
		}
		log.Printf("pattern: loaded plugin %q", name)
		loaded = append(loaded, name)
	}
	return loaded
}

func openPlugin(path string) (Pattern, error) {
	plug, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	if sym, err := plug.Lookup("Pattern"); err == nil {
		if p, ok := sym.(*Pattern); ok {
			return *p, nil
		}
		if p, ok := sym.(Pattern); ok {
			return p, nil
		}
	}
	sym, err := plug.Lookup("New")
	if err != nil {
		return nil, err
	}
	ctor, ok := sym.(func() Pattern)
	if !ok {
		return nil, errBadPluginSymbol
	}
	return ctor(), nil
}

var errBadPluginSymbol = errors.New("plugin exports neither Pattern nor New() Pattern")
