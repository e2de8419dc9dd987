package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PTYSessionConfig describes one vtdemo run, loaded from a YAML file via
// --config. Flags override whatever the file sets.
type PTYSessionConfig struct {
	// Shell is the child command to spawn, defaulting to $SHELL.
	Shell string `yaml:"shell"`
	// Args are extra arguments passed to Shell.
	Args []string `yaml:"args"`
	// Rows and Cols seed the initial PTY and offscreen buffer size; zero
	// means detect from the controlling terminal.
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
	// Debug turns on development-mode logging to the log file.
	Debug bool `yaml:"debug"`
	// LogFile receives structured logs; stdout is reserved for the child PTY.
	LogFile string `yaml:"log_file"`
}

func defaultConfig() PTYSessionConfig {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return PTYSessionConfig{Shell: shell, LogFile: "vtdemo.log"}
}

func loadConfig(path string) (PTYSessionConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
