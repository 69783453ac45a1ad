package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// Source locates the value that set a config key.
type Source struct {
	Kind   SourceKind
	File   string
	Line   int
	Column int
}

func fileSource(file string, n *yaml.Node) Source {
	return Source{Kind: SourceFile, File: file, Line: n.Line, Column: n.Column}
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // dotted key -> file position of the winning value
	Files   []string          // every file read, includes first
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/frameless/config.yaml, falling
// back to ~/.config.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "frameless", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "frameless", "config.yaml"), nil
}

// Load reads the merged configuration from the standard location.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources is Load plus the per-key sources used by "config explain".
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and its includes. A missing file yields the
// defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	l := &loader{seen: make(map[string]bool)}
	top := layer{sources: map[string]Source{}}

	switch _, err := os.Stat(path); {
	case err == nil:
		if top, err = l.load(path); err != nil {
			return nil, err
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	cfg := BuildEffectiveConfig(top.raw)
	if err := cfg.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) && verr.Path != "" {
			if src, ok := top.sources[verr.Path]; ok {
				verr.Source = src
			}
		}
		return nil, err
	}
	return &LoadResult{Config: cfg, Sources: top.sources, Files: top.files}, nil
}

// layer is one file merged over everything it includes.
type layer struct {
	raw     RawConfig
	sources map[string]Source
	files   []string
}

// over applies l on top of base.
func (l layer) over(base layer) layer {
	for k, v := range l.sources {
		base.sources[k] = v
	}
	base.raw = base.raw.merge(l.raw)
	base.files = append(base.files, l.files...)
	return base
}

type loader struct {
	seen  map[string]bool
	chain []string
}

func (l *loader) load(path string) (layer, error) {
	file := canonicalPath(path)
	if slices.Contains(l.chain, file) {
		return layer{}, fmt.Errorf("include cycle detected: %s -> %s", strings.Join(l.chain, " -> "), file)
	}
	out := layer{sources: map[string]Source{}}
	if l.seen[file] {
		// Diamond include: the first visit already merged it.
		return out, nil
	}
	l.seen[file] = true

	data, err := os.ReadFile(file)
	if err != nil {
		return layer{}, fmt.Errorf("%s: failed to read: %w", file, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return layer{}, fmt.Errorf("%s: failed to parse yaml: %w", file, err)
	}
	var raw RawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return layer{}, fmt.Errorf("%s: %w", file, err)
	}

	own := layer{raw: raw, sources: map[string]Source{}, files: []string{file}}
	if len(doc.Content) > 0 {
		recordSources(doc.Content[0], file, "", own.sources)
	}

	l.chain = append(l.chain, file)
	defer func() { l.chain = l.chain[:len(l.chain)-1] }()

	for _, inc := range raw.Include {
		targets, err := includeTargets(file, inc)
		if err != nil {
			src := own.sources["include"]
			return layer{}, fmt.Errorf("%s:%d:%d: include %q: %w", file, src.Line, src.Column, inc, err)
		}
		for _, target := range targets {
			sub, err := l.load(target)
			if err != nil {
				return layer{}, err
			}
			out = sub.over(out)
		}
	}
	// The including file wins over what it includes.
	return own.over(out), nil
}

// recordSources stores the position of every mapping value under its dotted
// key. Sequences are recorded whole.
func recordSources(n *yaml.Node, file, prefix string, out map[string]Source) {
	if n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		if prefix != "" {
			key = prefix + "." + key
		}
		out[key] = fileSource(file, val)
		recordSources(val, file, key, out)
	}
}

func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// includeTargets resolves an include entry relative to the including file.
// A directory expands to its *.yaml and *.yml files in name order.
func includeTargets(from, include string) ([]string, error) {
	if include == "" {
		return nil, fmt.Errorf("path is empty")
	}
	if include == "~" || strings.HasPrefix(include, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		include = filepath.Join(home, strings.TrimPrefix(include[1:], "/"))
	}
	if !filepath.IsAbs(include) {
		include = filepath.Join(filepath.Dir(from), include)
	}

	info, err := os.Stat(include)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{include}, nil
	}
	entries, err := os.ReadDir(include)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			if !e.IsDir() {
				files = append(files, filepath.Join(include, e.Name()))
			}
		}
	}
	return files, nil
}
