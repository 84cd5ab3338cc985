package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// FileConfig holds search settings. It is read from an optional YAML file;
// flags given on the command line take precedence.
type FileConfig struct {
	Rule            string        `yaml:"rule"`
	Wires           int           `yaml:"wires"`
	Max             int           `yaml:"max"`
	Start           string        `yaml:"start"`
	Strategy        string        `yaml:"strategy"`
	Workers         int           `yaml:"workers"`
	MaxNodes        int64         `yaml:"max_nodes"`
	MaxTableEntries int           `yaml:"max_table_entries"`
	Timeout         time.Duration `yaml:"timeout"`
	Progress        time.Duration `yaml:"progress"`
	LogLevel        string        `yaml:"log_level"`
	JSON            bool          `yaml:"json"`
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Max:      -1,
		Strategy: "bnb",
		Workers:  1,
		LogLevel: "warn",
	}
}

// loadFileConfig reads path over the defaults.
func loadFileConfig(path string) (FileConfig, error) {
	cfg := defaultFileConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// bindFlags registers the search flags with cfg's values as defaults.
func (c *FileConfig) bindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule name (see 'cmpnet rules')")
	fs.IntVar(&c.Wires, "wires", c.Wires, "wire count (default: the rule's own)")
	fs.IntVar(&c.Max, "max", c.Max, "maximum total number of swaps, prefix included")
	fs.StringVar(&c.Start, "start", c.Start, `fixed prefix, e.g. "0-4,1-5"`)
	fs.StringVar(&c.Strategy, "strategy", c.Strategy, "bnb (branch and bound) or id (iterative deepening)")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines exploring the root's children")
	fs.Int64Var(&c.MaxNodes, "max-nodes", c.MaxNodes, "abort after visiting this many states (0: unlimited)")
	fs.IntVar(&c.MaxTableEntries, "max-table-entries", c.MaxTableEntries, "cap on failure-bound table entries (0: unlimited)")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "abort after this long (0: no limit)")
	fs.DurationVar(&c.Progress, "progress", c.Progress, "log progress at this interval (0: off)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.JSON, "json", c.JSON, "print a JSON report")
}

// overlay copies every flag the user set on fs from flags into c.
func (c *FileConfig) overlay(fs *pflag.FlagSet, flags *FileConfig) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "rule":
			c.Rule = flags.Rule
		case "wires":
			c.Wires = flags.Wires
		case "max":
			c.Max = flags.Max
		case "start":
			c.Start = flags.Start
		case "strategy":
			c.Strategy = flags.Strategy
		case "workers":
			c.Workers = flags.Workers
		case "max-nodes":
			c.MaxNodes = flags.MaxNodes
		case "max-table-entries":
			c.MaxTableEntries = flags.MaxTableEntries
		case "timeout":
			c.Timeout = flags.Timeout
		case "progress":
			c.Progress = flags.Progress
		case "log-level":
			c.LogLevel = flags.LogLevel
		case "json":
			c.JSON = flags.JSON
		}
	})
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}
