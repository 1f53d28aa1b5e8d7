package config

import (
	"embed"
	"io/fs"
)

//go:embed defaults/*.yaml
var embedded embed.FS

// EmbeddedFS returns the bundled default configuration files.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embedded, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}

// Default loads the bundled configuration.
func Default() *Config {
	cfg, err := LoadFS(EmbeddedFS(), "formfield.yaml")
	if err != nil {
		panic(err)
	}
	return cfg
}
