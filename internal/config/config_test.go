package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/creational/internal/tracing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, 245, cfg.Prototype.Value)
	require.Equal(t, 1, cfg.Prototype.Copies)
	require.Len(t, cfg.Prototypes, 1)
	require.Equal(t, "reference", cfg.Prototypes[0].Name)
	require.Zero(t, cfg.Registry.TTL)
	require.False(t, cfg.Tracing.Enabled)
	require.NoError(t, Validate(cfg), "defaults must validate")
}

func TestValidateLogLevel(t *testing.T) {
	for _, ok := range []string{"", "debug", "INFO", "warn", "error"} {
		require.NoError(t, ValidateLogLevel(ok), ok)
	}

	err := ValidateLogLevel("eror")
	require.ErrorIs(t, err, ErrInvalid)
	require.Contains(t, err.Error(), `got "eror"`)

	cfg := Defaults()
	cfg.LogLevel = "eror"
	require.ErrorIs(t, Validate(cfg), ErrInvalid)
}

func TestValidatePrototype_Copies(t *testing.T) {
	require.NoError(t, ValidatePrototype(PrototypeConfig{Copies: 1}))

	err := ValidatePrototype(PrototypeConfig{Copies: 0})
	require.ErrorIs(t, err, ErrInvalid)
	require.Contains(t, err.Error(), "prototype.copies")
}

func TestValidatePrototypes(t *testing.T) {
	tests := []struct {
		name    string
		protos  []NamedPrototype
		wantErr string
	}{
		{name: "empty list", protos: nil},
		{name: "unique", protos: []NamedPrototype{{Name: "a"}, {Name: "b"}}},
		{name: "missing name", protos: []NamedPrototype{{Name: "a"}, {Name: " "}}, wantErr: "prototypes[1]: name is required"},
		{name: "duplicate", protos: []NamedPrototype{{Name: "a"}, {Name: "a"}}, wantErr: `name "a" already used by prototypes[0]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrototypes(tt.protos)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalid)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateRegistry(t *testing.T) {
	require.NoError(t, ValidateRegistry(RegistryConfig{}))
	require.ErrorIs(t, ValidateRegistry(RegistryConfig{TTL: -time.Second}), ErrInvalid)
	require.ErrorIs(t, ValidateRegistry(RegistryConfig{CleanupInterval: -time.Second}), ErrInvalid)
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     tracing.Config
		wantErr string
	}{
		{name: "zero value", cfg: tracing.Config{}},
		{name: "stdout", cfg: tracing.Config{Enabled: true, Exporter: "stdout", SampleRate: 0.5}},
		{name: "bad sample rate", cfg: tracing.Config{SampleRate: 1.5}, wantErr: "sample_rate"},
		{name: "bad exporter", cfg: tracing.Config{Exporter: "zipkin"}, wantErr: "tracing.exporter"},
		{name: "file without path", cfg: tracing.Config{Enabled: true, Exporter: "file"}, wantErr: "file_path is required"},
		{name: "file without path but disabled", cfg: tracing.Config{Exporter: "file"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalid)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteDefaultConfig_RoundTripsThroughViper(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".creational", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# creational configuration")

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var got Config
	require.NoError(t, v.Unmarshal(&got))
	require.Equal(t, Defaults(), got)
}

func TestWriteDefaultConfig_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: true\n"), 0o600))

	err := WriteDefaultConfig(path, false)
	require.ErrorContains(t, err, "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "debug: true\n", string(data))

	require.NoError(t, WriteDefaultConfig(path, true))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "prototypes:")
}
