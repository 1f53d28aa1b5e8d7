// Package config loads widget configuration from YAML or JSON files: parse
// layouts, defaults shared by every widget (autoErase, defaultTime,
// defaultDuration, debounce, timeInterval) and per-field overrides keyed by
// field path. A loaded Config is immutable and safe for concurrent readers.
package config
