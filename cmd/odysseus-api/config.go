package main

import (
	"github.com/BurntSushi/toml"
	"github.com/terrarium-earth/odysseus"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

type Config struct {
	Listen   string                 `yaml:"listen" toml:"listen"`
	Database string                 `yaml:"database" toml:"database"`
	Service  odysseus.ServiceConfig `yaml:"service" toml:"service"`
}

// loadConfig decodes p as TOML when it has a .toml extension and as YAML
// otherwise.
func loadConfig[T any](ptr *atomic.Pointer[T], p string) error {
	var c T
	if strings.EqualFold(filepath.Ext(p), ".toml") {
		if _, err := toml.DecodeFile(p, &c); err != nil {
			return err
		}
		ptr.Store(&c)
		return nil
	}

	file, err := os.Open(p)
	if err != nil {
		return err
	}
	defer file.Close()
	decoder := yaml.NewDecoder(file)
	err = decoder.Decode(&c)
	if err != nil {
		return err
	}
	ptr.Store(&c)
	return nil
}
