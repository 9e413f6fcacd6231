package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"EXERCISESEED_INPUT",
		"EXERCISESEED_OUTPUT",
		"EXERCISESEED_SCHEMA",
		"EXERCISESEED_TABLE",
		"EXERCISESEED_BODYWEIGHT",
		"EXERCISESEED_METRICS_TEXTFILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	require.Equal(t, Config{
		InputPath:  "bbdd_ejercicio.json",
		OutputPath: "importar_ejercicios.sql",
		Schema:     "public",
		Table:      "Ejercicios",
		Bodyweight: true,
	}, cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXERCISESEED_INPUT", "/data/catalogue.json")
	t.Setenv("EXERCISESEED_TABLE", "Exercises")
	t.Setenv("EXERCISESEED_BODYWEIGHT", "false")
	t.Setenv("EXERCISESEED_METRICS_TEXTFILE", "/var/lib/node_exporter/seed.prom")

	cfg := Load()
	require.Equal(t, "/data/catalogue.json", cfg.InputPath)
	require.Equal(t, "Exercises", cfg.Table)
	require.False(t, cfg.Bodyweight)
	require.Equal(t, "/var/lib/node_exporter/seed.prom", cfg.MetricsTextfile)
}

func TestLoadIgnoresMalformedBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXERCISESEED_BODYWEIGHT", "maybe")

	require.True(t, Load().Bodyweight)
}

func TestLoadFileOverlaysPresentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yml")
	require.NoError(t, os.WriteFile(path, []byte("table: Exercises\nbodyweight: false\n"), 0o644))

	base := Config{InputPath: "in.json", OutputPath: "out.sql", Schema: "public", Table: "Ejercicios", Bodyweight: true}
	cfg, err := LoadFile(base, path)
	require.NoError(t, err)
	require.Equal(t, "in.json", cfg.InputPath)
	require.Equal(t, "out.sql", cfg.OutputPath)
	require.Equal(t, "Exercises", cfg.Table)
	require.False(t, cfg.Bodyweight)
}

func TestLoadFileEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	base := Config{InputPath: "in.json", Table: "Ejercicios"}
	cfg, err := LoadFile(base, path)
	require.NoError(t, err)
	require.Equal(t, base, cfg)
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yml")
	require.NoError(t, os.WriteFile(path, []byte("tabel: Exercises\n"), 0o644))

	_, err := LoadFile(Config{}, path)
	require.ErrorContains(t, err, "parse config")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(Config{}, filepath.Join(t.TempDir(), "absent.yml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	require.ErrorContains(t, Config{OutputPath: "o", Table: "t"}.Validate(), "input")
	require.ErrorContains(t, Config{InputPath: "i", Table: "t"}.Validate(), "output")
	require.ErrorContains(t, Config{InputPath: "i", OutputPath: "o"}.Validate(), "table")
}
