package config

// Settings returns the shared settings. A nil Config yields the builtins.
func (c *Config) Settings() Settings {
	if c == nil {
		return builtinSettings()
	}
	return c.settings
}

// Field returns the override for path.
func (c *Config) Field(path string) (FieldConfig, bool) {
	if c == nil {
		return FieldConfig{}, false
	}
	fc, ok := c.Fields[NormalizeFieldPath(path)]
	return fc, ok
}

// For resolves the settings of one field: shared defaults overlaid with the
// field's own layouts and defaults.
func (c *Config) For(path string) Settings {
	base := c.Settings()
	fc, ok := c.Field(path)
	if !ok {
		return base
	}
	// Field overrides were validated at load time.
	out, err := resolve(base, fc.Layouts, fc.Defaults)
	if err != nil {
		return base
	}
	out.Disabled = fc.Disabled
	return out
}
