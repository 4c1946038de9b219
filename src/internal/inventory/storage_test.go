// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package inventory_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/certwatch/src/internal/certs"
	"github.com/H0llyW00dzZ/certwatch/src/internal/inventory"
	"github.com/H0llyW00dzZ/certwatch/src/logger"
)

// newCapturedLogger returns a CLI logger writing into the returned buffer.
func newCapturedLogger() (*logger.CLILogger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	log := logger.NewCLILogger()
	log.SetOutput(buf)
	return log, buf
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	log, warnings := newCapturedLogger()

	m := inventory.New(path, log)

	assert.Empty(t, m.List())
	assert.Empty(t, m.LoadWarning(), "a missing file is not a corruption")
	assert.Empty(t, warnings.String(), "a missing file must not emit a warning")

	// The file is not created by loading.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "certificates.json")
	content := `[
  {
    "name": "web",
    "domain": "example.com",
    "expiration_date": "2030-06-15",
    "issuer": "DigiCert",
    "notes": ""
  },
  {
    "name": "api",
    "domain": "api.example.com",
    "expiration_date": "2031-01-01"
  }
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	m := inventory.New(path, logger.NewCLILogger())

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, "web", list[0].Name)
	assert.Equal(t, "DigiCert", list[0].Issuer)
	// Missing optional keys default to empty.
	assert.Empty(t, list[1].Issuer)
	assert.Empty(t, list[1].Notes)
}

func TestLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		warns   string
	}{
		{
			name:    "Malformed JSON",
			content: `{"not": "an array"`,
			warns:   "malformed storage file",
		},
		{
			name:    "Wrong Top Level Shape",
			content: `{"certificates": []}`,
			warns:   "malformed storage file",
		},
		{
			name:    "Missing Required Field",
			content: `[{"domain": "example.com", "expiration_date": "2030-06-15"}]`,
			warns:   "missing required field",
		},
		{
			name:    "Invalid Expiration Date",
			content: `[{"name": "web", "domain": "example.com", "expiration_date": "June 2030"}]`,
			warns:   "invalid expiration date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "certificates.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			log, warnings := newCapturedLogger()
			m := inventory.New(path, log)

			assert.Empty(t, m.List(), "a corrupt file must start an empty collection")
			assert.Contains(t, m.LoadWarning(), tt.warns)
			assert.Contains(t, warnings.String(), "Warning:")
			assert.Contains(t, warnings.String(), tt.warns)

			// The corrupt file is left untouched on disk.
			data, err := os.ReadFile(path)
			require.NoError(t, err, "ReadFile() error")
			assert.Equal(t, tt.content, string(data))
		})
	}
}

func TestPersistFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "certificates.json")
	m := inventory.New(path, logger.NewCLILogger())

	cert, err := certs.New("web", "example.com", "2030-06-15", "Let's Encrypt", "primary")
	require.NoError(t, err, "New() error")
	require.NoError(t, m.Add(cert))

	data, err := os.ReadFile(path)
	require.NoError(t, err, "ReadFile() error")

	// A single JSON array of flat records with the documented keys.
	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, map[string]string{
		"name":            "web",
		"domain":          "example.com",
		"expiration_date": "2030-06-15",
		"issuer":          "Let's Encrypt",
		"notes":           "primary",
	}, decoded[0])
}

func TestPersistLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "certificates.json")
	m := inventory.New(path, logger.NewCLILogger())

	cert, err := certs.New("web", "example.com", "2030-06-15", "", "")
	require.NoError(t, err, "New() error")
	require.NoError(t, m.Add(cert))
	require.NoError(t, m.Persist())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err, "ReadDir() error")
	for _, entry := range entries {
		assert.False(t, strings.Contains(entry.Name(), ".tmp-"),
			"temp file %s left behind after persist", entry.Name())
	}
}

func TestPersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "certificates.json")
	m := inventory.New(path, logger.NewCLILogger())

	cert, err := certs.New("web", "example.com", "2030-06-15", "DigiCert", "renew early")
	require.NoError(t, err, "New() error")
	require.NoError(t, m.Add(cert))

	reloaded := inventory.New(path, logger.NewCLILogger())
	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, cert.ToRecord(), list[0].ToRecord())
}

func TestPersistRoundTripEmptyName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "certificates.json")
	m := inventory.New(path, logger.NewCLILogger())

	cert, err := certs.New("", "example.com", "2030-06-15", "", "")
	require.NoError(t, err, "New() error")
	require.NoError(t, m.Add(cert))

	// An empty name is legitimate data and must survive a reload intact.
	log, warnings := newCapturedLogger()
	reloaded := inventory.New(path, log)

	assert.Empty(t, reloaded.LoadWarning(), "the manager must reload its own file cleanly")
	assert.Empty(t, warnings.String())
	require.Len(t, reloaded.List(), 1)
	assert.Equal(t, cert.ToRecord(), reloaded.List()[0].ToRecord())
}

func TestPersistOverwritesCorruptFileOnMutation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "certificates.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	log, _ := newCapturedLogger()
	m := inventory.New(path, log)
	require.NotEmpty(t, m.LoadWarning())

	cert, err := certs.New("web", "example.com", "2030-06-15", "", "")
	require.NoError(t, err, "New() error")
	require.NoError(t, m.Add(cert))

	// The next successful mutation replaces the corrupt content.
	reloaded := inventory.New(path, logger.NewCLILogger())
	assert.Empty(t, reloaded.LoadWarning())
	assert.Len(t, reloaded.List(), 1)
}
