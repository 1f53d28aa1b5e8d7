package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfield/pkg/value"
)

type documentFile struct {
	Layouts  Layouts                `json:"layouts" yaml:"layouts"`
	Defaults Defaults               `json:"defaults" yaml:"defaults"`
	Fields   map[string]FieldConfig `json:"fields" yaml:"fields"`
}

// Load reads a configuration file from disk.
func Load(path string) (*Config, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return LoadFS(os.DirFS(dir), name)
}

// LoadFS parses one JSON or YAML file from fsys and resolves its settings.
func LoadFS(fsys fs.FS, name string) (*Config, error) {
	if fsys == nil {
		return nil, errors.New("config: filesystem is nil")
	}
	if !isConfigFile(name) {
		return nil, fmt.Errorf("config: %s is not a .json, .yaml or .yml file", name)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", name, err)
	}
	doc, err := parseDocument(data, name)
	if err != nil {
		return nil, err
	}
	return newConfig(doc, name)
}

// Parse builds a Config from raw JSON or YAML.
func Parse(data []byte, source string) (*Config, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	return newConfig(doc, source)
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("config: file %s is empty", source)
	}
	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("config: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("config: parse %s: %w", source, err)
	}
	return doc, nil
}

func newConfig(doc documentFile, source string) (*Config, error) {
	cfg := &Config{
		Source:   source,
		Layouts:  doc.Layouts,
		Defaults: doc.Defaults,
		Fields:   make(map[string]FieldConfig, len(doc.Fields)),
	}

	base, err := resolve(builtinSettings(), doc.Layouts, doc.Defaults)
	if err != nil {
		return nil, fmt.Errorf("config: %s: defaults: %w", source, err)
	}
	cfg.settings = base

	for key, field := range doc.Fields {
		path := NormalizeFieldPath(key)
		if path == "" {
			return nil, fmt.Errorf("config: %s: field key %q normalises to an empty path", source, key)
		}
		if _, exists := cfg.Fields[path]; exists {
			return nil, fmt.Errorf("config: %s: duplicate field path %q", source, path)
		}
		if _, err := resolve(base, field.Layouts, field.Defaults); err != nil {
			return nil, fmt.Errorf("config: %s: field %q: %w", source, key, err)
		}
		field.OriginalPath = key
		cfg.Fields[path] = field
	}
	return cfg, nil
}

func builtinSettings() Settings {
	return Settings{
		AutoErase:       true,
		DefaultTime:     value.NewTimeOfDay(9, 0, 0, 0),
		DefaultDuration: value.Hour,
		DefaultDays:     DefaultDays,
		Debounce:        DefaultDebounce,
		TimeInterval:    DefaultTimeInterval,
		Location:        time.Local,
	}
}

// resolve applies raw layouts and defaults over base.
func resolve(base Settings, layouts Layouts, d Defaults) (Settings, error) {
	out := base
	out.Layouts = mergeLayouts(base.Layouts, layouts)
	if d.AutoErase != nil {
		out.AutoErase = *d.AutoErase
	}
	if d.DefaultTime != "" {
		t, ok := value.TimeCodec{}.Parse(d.DefaultTime).Get()
		if !ok {
			return Settings{}, fmt.Errorf("invalid defaultTime %q", d.DefaultTime)
		}
		out.DefaultTime = t
	}
	if d.DefaultDuration != "" {
		dur, ok := value.DurationCodec{}.Parse(d.DefaultDuration).Get()
		if !ok {
			return Settings{}, fmt.Errorf("invalid defaultDuration %q", d.DefaultDuration)
		}
		out.DefaultDuration = dur
	}
	if d.DefaultDays < 0 {
		return Settings{}, fmt.Errorf("defaultDays must not be negative, got %d", d.DefaultDays)
	}
	if d.DefaultDays > 0 {
		out.DefaultDays = d.DefaultDays
	}
	if d.Debounce != "" {
		debounce, err := time.ParseDuration(d.Debounce)
		if err != nil || debounce < 0 {
			return Settings{}, fmt.Errorf("invalid debounce %q", d.Debounce)
		}
		out.Debounce = debounce
	}
	if d.TimeInterval < 0 || d.TimeInterval > 24*60 {
		return Settings{}, fmt.Errorf("timeInterval out of range: %d", d.TimeInterval)
	}
	if d.TimeInterval > 0 {
		out.TimeInterval = d.TimeInterval
	}
	if d.Location != "" {
		loc, err := time.LoadLocation(d.Location)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid location %q: %w", d.Location, err)
		}
		out.Location = loc
	}
	return out, nil
}

func mergeLayouts(base, override Layouts) Layouts {
	pick := func(b, o []string) []string {
		if len(o) > 0 {
			return append([]string(nil), o...)
		}
		return b
	}
	return Layouts{
		Date:     pick(base.Date, override.Date),
		Time:     pick(base.Time, override.Time),
		Month:    pick(base.Month, override.Month),
		Datetime: pick(base.Datetime, override.Datetime),
	}
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// NormalizeFieldPath converts field keys such as "stay[start]" or
// "guests[]" into dotted paths ("stay.start", "guests.item").
func NormalizeFieldPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	replacer := strings.NewReplacer("[]", ".item", "[", ".", "]", "")
	normalised := replacer.Replace(trimmed)
	for strings.Contains(normalised, "..") {
		normalised = strings.ReplaceAll(normalised, "..", ".")
	}
	return strings.Trim(normalised, ".")
}
