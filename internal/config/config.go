// Package config centralises configuration parsing for the seed generator.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults match the historical fixed file names of the catalogue import.
const (
	DefaultInputPath  = "bbdd_ejercicio.json"
	DefaultOutputPath = "importar_ejercicios.sql"
	DefaultSchema     = "public"
	DefaultTable      = "Ejercicios"
)

// Config captures the values that drive a single conversion run.
type Config struct {
	InputPath       string
	OutputPath      string
	Schema          string
	Table           string
	Bodyweight      bool   // Emit the peso_corporal column.
	MetricsTextfile string // Optional node-exporter textfile destination.
}

// fileConfig mirrors Config for YAML overlays; nil fields keep the current value.
type fileConfig struct {
	Input           *string `yaml:"input"`
	Output          *string `yaml:"output"`
	Schema          *string `yaml:"schema"`
	Table           *string `yaml:"table"`
	Bodyweight      *bool   `yaml:"bodyweight"`
	MetricsTextfile *string `yaml:"metrics_textfile"`
}

// Load reads a .env file when present, then environment variables, applying
// the historical defaults.
func Load() Config {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	return Config{
		InputPath:       getEnv("EXERCISESEED_INPUT", DefaultInputPath),
		OutputPath:      getEnv("EXERCISESEED_OUTPUT", DefaultOutputPath),
		Schema:          getEnv("EXERCISESEED_SCHEMA", DefaultSchema),
		Table:           getEnv("EXERCISESEED_TABLE", DefaultTable),
		Bodyweight:      getBoolEnv("EXERCISESEED_BODYWEIGHT", true),
		MetricsTextfile: getEnv("EXERCISESEED_METRICS_TEXTFILE", ""),
	}
}

// LoadFile overlays the keys present in a YAML file onto cfg.
func LoadFile(cfg Config, path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	var overlay fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&overlay); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.InputPath, overlay.Input)
	setString(&cfg.OutputPath, overlay.Output)
	setString(&cfg.Schema, overlay.Schema)
	setString(&cfg.Table, overlay.Table)
	setString(&cfg.MetricsTextfile, overlay.MetricsTextfile)
	if overlay.Bodyweight != nil {
		cfg.Bodyweight = *overlay.Bodyweight
	}
	return cfg, nil
}

// Validate reports configuration that cannot produce a script.
func (c Config) Validate() error {
	switch {
	case c.InputPath == "":
		return errors.New("input path is required")
	case c.OutputPath == "":
		return errors.New("output path is required")
	case c.Table == "":
		return errors.New("table name is required")
	}
	return nil
}

func setString(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
