package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/gobwas/glob"
	"github.com/jellydator/ttlcache/v3"
	"gopkg.in/ini.v1"
)

// EditorConfigName is the file name searched for in every parent directory.
const EditorConfigName = ".editorconfig"

// editorConfigTTL bounds how long a parsed file is reused.
const editorConfigTTL = 30 * time.Second

// EditorConfig resolves .editorconfig settings for source files. Parsed
// files, including the absence of a file, are cached for a short time so a
// directory walk reads each file once.
type EditorConfig struct {
	cache *ttlcache.Cache[string, *editorFile]
	log   logr.Logger
}

type editorFile struct {
	dir      string
	root     bool
	sections []editorSection
}

type editorSection struct {
	pattern string
	match   glob.Glob
	// basename reports that the pattern has no '/', so it matches file
	// names in any directory below the file.
	basename bool
	values   map[string]string
}

// NewEditorConfig returns an empty resolver.
func NewEditorConfig(log logr.Logger) *EditorConfig {
	return &EditorConfig{
		cache: ttlcache.New[string, *editorFile](
			ttlcache.WithTTL[string, *editorFile](editorConfigTTL),
		),
		log: log,
	}
}

// Settings returns the settings that apply to file. Files nearer to file
// override files farther away and, within a file, later sections override
// earlier ones. Keys are lower case.
func (e *EditorConfig) Settings(file string) (map[string]string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", file, err)
	}

	var chain []*editorFile
	for dir := filepath.Dir(abs); ; {
		ef, err := e.load(filepath.Join(dir, EditorConfigName))
		if err != nil {
			return nil, err
		}
		if ef != nil {
			chain = append(chain, ef)
			if ef.root {
				break
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	settings := map[string]string{}
	for i := len(chain) - 1; i >= 0; i-- {
		ef := chain[i]
		rel, err := filepath.Rel(ef.dir, abs)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		for _, s := range ef.sections {
			if !s.matches(rel) {
				continue
			}
			for k, v := range s.values {
				settings[k] = v
			}
		}
	}
	return settings, nil
}

func (s editorSection) matches(rel string) bool {
	if s.basename {
		return s.match.Match(path.Base(rel))
	}
	return s.match.Match(rel)
}

func (e *EditorConfig) load(p string) (*editorFile, error) {
	if item := e.cache.Get(p); item != nil {
		return item.Value(), nil
	}

	data, err := os.ReadFile(p)
	var ef *editorFile
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Cached as nil so the next lookup skips the stat.
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", p, err)
	default:
		ef, err = parseEditorConfig(filepath.Dir(p), data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", p, err)
		}
		e.log.V(1).Info("Loaded editorconfig", "path", p, "sections", len(ef.sections), "root", ef.root)
	}

	e.cache.Set(p, ef, ttlcache.DefaultTTL)
	return ef, nil
}

// parseEditorConfig parses the contents of an .editorconfig file located in dir.
func parseEditorConfig(dir string, data []byte) (*editorFile, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:         true,
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
		AllowShadows:            false,
	}, data)
	if err != nil {
		return nil, err
	}

	ef := &editorFile{dir: dir}
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			ef.root = strings.EqualFold(strings.TrimSpace(sec.Key("root").String()), "true")
			continue
		}
		s, err := compileSection(sec.Name())
		if err != nil {
			// An unusable pattern matches nothing.
			continue
		}
		s.values = make(map[string]string, len(sec.Keys()))
		for _, k := range sec.Keys() {
			s.values[strings.ToLower(k.Name())] = strings.TrimSpace(k.Value())
		}
		ef.sections = append(ef.sections, s)
	}
	return ef, nil
}

func compileSection(pattern string) (editorSection, error) {
	p := strings.TrimSpace(pattern)
	s := editorSection{pattern: p}
	if !strings.Contains(p, "/") {
		s.basename = true
	} else {
		p = strings.TrimPrefix(p, "/")
	}
	g, err := glob.Compile(p, '/')
	if err != nil {
		return s, err
	}
	s.match = g
	return s, nil
}
