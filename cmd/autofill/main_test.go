package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/autofill/pkg/autofill"
	"github.com/entrhq/autofill/pkg/logging"
)

var (
	loginPageFile = filepath.Join("..", "..", "pkg", "fixture", "testdata", "login_page.jsonc")
	loginFile     = filepath.Join("..", "..", "pkg", "fixture", "testdata", "login.yaml")
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "autofill-cli-logs-*")
	if err != nil {
		panic(err)
	}
	os.Setenv(logging.EnvLogDir, dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestCLIConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     CLIConfig
		wantErr bool
	}{
		{name: "page", cfg: CLIConfig{CipherFile: "c", PageFile: "p"}},
		{name: "replay", cfg: CLIConfig{CipherFile: "c", ReplayURL: "https://example.com"}},
		{name: "no cipher", cfg: CLIConfig{PageFile: "p"}, wantErr: true},
		{name: "no page source", cfg: CLIConfig{CipherFile: "c"}, wantErr: true},
		{name: "both page sources", cfg: CLIConfig{CipherFile: "c", PageFile: "p", ReplayURL: "u"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRun_JSON(t *testing.T) {
	cfg := &CLIConfig{
		PageFile:   loginPageFile,
		CipherFile: loginFile,
		ConfigFile: filepath.Join(t.TempDir(), "config.json"),
		JSON:       true,
	}

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &out))

	var scripts []*autofill.FillScript
	require.NoError(t, json.Unmarshal(out.Bytes(), &scripts))
	require.Len(t, scripts, 1)
	assert.Equal(t, "3f1c2a8e-login", scripts[0].DocumentUUID)
	assert.Equal(t, autofill.DefaultDelayBetweenOperations, scripts[0].Properties.DelayBetweenOperations)

	fills := map[string]string{}
	for _, op := range scripts[0].Script {
		if op.Action == autofill.ActionFill {
			fills[op.OPID] = op.Value
		}
	}
	assert.Equal(t, "alice@example.com", fills["__0"])
	assert.Equal(t, "correct horse battery staple", fills["__1"])
}

func TestRun_Pretty(t *testing.T) {
	base := CLIConfig{
		PageFile:   loginPageFile,
		CipherFile: loginFile,
		ConfigFile: filepath.Join(t.TempDir(), "config.json"),
	}

	var masked bytes.Buffer
	require.NoError(t, run(context.Background(), &base, &masked))
	assert.Contains(t, masked.String(), mask)
	assert.NotContains(t, masked.String(), "correct horse battery staple")

	revealCfg := base
	revealCfg.Reveal = true
	var revealed bytes.Buffer
	require.NoError(t, run(context.Background(), &revealCfg, &revealed))
	assert.Contains(t, revealed.String(), "correct horse battery staple")
}

func TestRun_ConfigFile(t *testing.T) {
	writeConfig := func(t *testing.T, raw string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(raw), 0600))
		return path
	}

	t.Run("blocked url", func(t *testing.T) {
		path := writeConfig(t, `{"sections": {"url_blocklist": {"patterns": [
			{"pattern": "https://accounts.example.com/", "type": "prefix"}
		]}}}`)

		err := run(context.Background(), &CLIConfig{
			PageFile:   loginPageFile,
			CipherFile: loginFile,
			ConfigFile: path,
		}, &bytes.Buffer{})
		assert.True(t, errors.Is(err, autofill.ErrBlockedURL), "got %v", err)
	})

	t.Run("delay from config", func(t *testing.T) {
		path := writeConfig(t, `{"sections": {"autofill": {"delay_between_operations": 250}}}`)

		var out bytes.Buffer
		require.NoError(t, run(context.Background(), &CLIConfig{
			PageFile:   loginPageFile,
			CipherFile: loginFile,
			ConfigFile: path,
			JSON:       true,
		}, &out))

		var scripts []*autofill.FillScript
		require.NoError(t, json.Unmarshal(out.Bytes(), &scripts))
		require.Len(t, scripts, 1)
		assert.Equal(t, 250, scripts[0].Properties.DelayBetweenOperations)
	})
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  CLIConfig
	}{
		{name: "invalid flags", cfg: CLIConfig{CipherFile: loginFile}},
		{name: "missing cipher", cfg: CLIConfig{CipherFile: filepath.Join(dir, "none.yaml"), PageFile: loginPageFile}},
		{name: "missing page", cfg: CLIConfig{CipherFile: loginFile, PageFile: filepath.Join(dir, "none.json")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ConfigFile = filepath.Join(dir, "config.json")
			assert.Error(t, run(context.Background(), &tt.cfg, &bytes.Buffer{}))
		})
	}
}
