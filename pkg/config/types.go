package config

import (
	"time"

	"github.com/goliatone/go-formfield/pkg/value"
)

// Config is the parsed configuration. Use Load, LoadFS or Default.
type Config struct {
	Source   string
	Layouts  Layouts
	Defaults Defaults
	Fields   map[string]FieldConfig

	settings Settings
}

// Layouts lists accepted parse layouts per value kind. The first layout is
// the display format.
type Layouts struct {
	Date     []string `json:"date,omitempty" yaml:"date,omitempty"`
	Time     []string `json:"time,omitempty" yaml:"time,omitempty"`
	Month    []string `json:"month,omitempty" yaml:"month,omitempty"`
	Datetime []string `json:"datetime,omitempty" yaml:"datetime,omitempty"`
}

// Defaults holds the raw shared defaults as written in the file.
type Defaults struct {
	AutoErase       *bool  `json:"autoErase,omitempty" yaml:"autoErase,omitempty"`
	DefaultTime     string `json:"defaultTime,omitempty" yaml:"defaultTime,omitempty"`
	DefaultDuration string `json:"defaultDuration,omitempty" yaml:"defaultDuration,omitempty"`
	DefaultDays     int    `json:"defaultDays,omitempty" yaml:"defaultDays,omitempty"`
	Debounce        string `json:"debounce,omitempty" yaml:"debounce,omitempty"`
	TimeInterval    int    `json:"timeInterval,omitempty" yaml:"timeInterval,omitempty"`
	Location        string `json:"location,omitempty" yaml:"location,omitempty"`
}

// OptionConfig is one configured select option.
type OptionConfig struct {
	Value    string `json:"value" yaml:"value"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// EndpointConfig overrides or adds a remote option source.
type EndpointConfig struct {
	URL         string            `json:"url" yaml:"url"`
	Method      string            `json:"method,omitempty" yaml:"method,omitempty"`
	TermParam   string            `json:"termParam,omitempty" yaml:"termParam,omitempty"`
	ResultsPath string            `json:"resultsPath,omitempty" yaml:"resultsPath,omitempty"`
	ValueField  string            `json:"valueField,omitempty" yaml:"valueField,omitempty"`
	LabelField  string            `json:"labelField,omitempty" yaml:"labelField,omitempty"`
	Params      map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// FieldConfig customises one field. Zero values leave the schema and the
// shared defaults in charge.
type FieldConfig struct {
	Widget      string          `json:"widget,omitempty" yaml:"widget,omitempty"`
	Label       string          `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string          `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Order       *int            `json:"order,omitempty" yaml:"order,omitempty"`
	Required    *bool           `json:"required,omitempty" yaml:"required,omitempty"`
	Disabled    bool            `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Step        *float64        `json:"step,omitempty" yaml:"step,omitempty"`
	Options     []OptionConfig  `json:"options,omitempty" yaml:"options,omitempty"`
	Endpoint    *EndpointConfig `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Layouts     Layouts         `json:"layouts,omitempty" yaml:"layouts,omitempty"`
	Defaults    Defaults        `json:"defaults,omitempty" yaml:"defaults,omitempty"`

	OriginalPath string `json:"-" yaml:"-"`
}

// Settings are the parsed values a widget is built with.
type Settings struct {
	AutoErase       bool
	DefaultTime     value.TimeOfDay
	DefaultDuration value.Duration
	DefaultDays     int
	Debounce        time.Duration
	TimeInterval    int
	Location        *time.Location
	Layouts         Layouts
	Disabled        bool
}

// Builtin defaults used when a file leaves a setting unset.
const (
	DefaultTimeInterval = 30
	DefaultDebounce     = 500 * time.Millisecond
	DefaultDays         = 1
)
