package automap

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const ruleFileSuffix = ".rules.yaml"

// ErrNoRuleFile is returned when no rule file exists for an image.
var ErrNoRuleFile = errors.New("automap: no rule file")

//go:embed rules/*.yaml rules/*.tengo
var RulesFS embed.FS

// Registry loads rule files by image name, preferring a disk directory over
// the embedded defaults, and caches the resulting mappers.
type Registry struct {
	dir     string
	mappers map[string]*Mapper
}

// NewRegistry returns a registry reading overrides from dir. An empty dir
// only uses the embedded rules.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir, mappers: map[string]*Mapper{}}
}

func (r *Registry) Dir() string { return r.dir }

// Bridge implements Source.
func (r *Registry) Bridge(imageName string) (Bridge, error) {
	m, err := r.Find(imageName)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Find returns the mapper for imageName, loading it on first use.
func (r *Registry) Find(imageName string) (*Mapper, error) {
	if m, ok := r.mappers[imageName]; ok {
		return m, nil
	}
	m, err := r.load(imageName)
	if err != nil {
		return nil, err
	}
	r.mappers[imageName] = m
	return m, nil
}

// Reload reacts to a changed file. A rule file is parsed again right away; a
// changed script drops every cached mapper so they are rebuilt on next use.
func (r *Registry) Reload(path string) error {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, ruleFileSuffix):
		name := strings.TrimSuffix(base, ruleFileSuffix)
		m, err := r.load(name)
		if errors.Is(err, ErrNoRuleFile) {
			delete(r.mappers, name)
			log.Printf("automap: rules for %s removed", name)
			return nil
		}
		if err != nil {
			return err
		}
		r.mappers[name] = m
		log.Printf("automap: reloaded %s (%d rulesets)", base, m.RuleSetCount())
	case strings.EqualFold(filepath.Ext(base), ".tengo"):
		r.mappers = map[string]*Mapper{}
		log.Printf("automap: script %s changed, rules will be reloaded", base)
	}
	return nil
}

// Watches reports whether a change to path matters to Reload: a rule file or
// a script.
func (r *Registry) Watches(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ruleFileSuffix) || strings.EqualFold(filepath.Ext(base), ".tengo")
}

// Names lists the image names that have a rule file, embedded or on disk.
func (r *Registry) Names() []string {
	seen := map[string]bool{}
	collect := func(entries []fs.DirEntry) {
		for _, e := range entries {
			if n, ok := strings.CutSuffix(e.Name(), ruleFileSuffix); ok && !e.IsDir() {
				seen[n] = true
			}
		}
	}
	if entries, err := RulesFS.ReadDir("rules"); err == nil {
		collect(entries)
	}
	if r.dir != "" {
		if entries, err := os.ReadDir(r.dir); err == nil {
			collect(entries)
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) load(imageName string) (*Mapper, error) {
	file := imageName + ruleFileSuffix
	data, err := r.readFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w for %s", ErrNoRuleFile, imageName)
	}
	if err != nil {
		return nil, err
	}
	m, err := ParseRuleFile(file, data, r.readFile)
	if err != nil {
		return nil, err
	}
	if m.Image != imageName {
		return nil, fmt.Errorf("automap: %s describes image %q", file, m.Image)
	}
	return m, nil
}

// readFile reads name from the disk directory, falling back to the embedded
// rules.
func (r *Registry) readFile(name string) ([]byte, error) {
	clean := filepath.ToSlash(filepath.Clean(name))
	if strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return nil, fmt.Errorf("automap: rule file %s escapes the rules directory", name)
	}
	if r.dir != "" {
		data, err := os.ReadFile(filepath.Join(r.dir, filepath.FromSlash(clean)))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("automap: read %s: %w", name, err)
		}
	}
	data, err := RulesFS.ReadFile("rules/" + clean)
	if err != nil {
		return nil, fmt.Errorf("automap: read %s: %w", name, err)
	}
	return data, nil
}
