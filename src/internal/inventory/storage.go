// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"

	"github.com/H0llyW00dzZ/certwatch/src/internal/certs"
	"github.com/H0llyW00dzZ/certwatch/src/internal/helper/gc"
)

// storageSchema describes the persisted file format: a single JSON array
// of records with required name, domain, and expiration_date keys. It is
// used to classify corruption on load, not to reject unknown keys.
const storageSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name", "domain", "expiration_date"],
    "properties": {
      "name": {"type": "string"},
      "domain": {"type": "string"},
      "expiration_date": {"type": "string"},
      "issuer": {"type": "string"},
      "notes": {"type": "string"}
    }
  }
}`

// load reads the storage file into the in-memory collection.
//
// A missing file starts an empty collection silently. Any corruption is
// classified (malformed JSON, missing required field, invalid date),
// logged as a warning, and recorded for LoadWarning; the collection then
// starts empty and the file is left untouched on disk until the next
// successful mutation.
func (m *Manager) load() {
	loaded, err := readStorage(m.storagePath)
	if err != nil {
		m.loadWarning = err.Error()
		m.log.Warnf("failed to load certificates from %s: %v (starting with an empty collection)", m.storagePath, err)
		m.certs = nil
		return
	}

	m.certs = loaded
}

// readStorage reads and decodes the storage file at path.
// A missing file is not an error and yields a nil collection.
func readStorage(path string) ([]*certs.Certificate, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStorage, err)
	}

	var records []certs.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStorage, err)
	}

	// The array decoded; schema validation now distinguishes records with
	// absent required keys from merely empty optional ones.
	if err := validateStorage(data); err != nil {
		return nil, err
	}

	loaded := make([]*certs.Certificate, 0, len(records))
	for i, rec := range records {
		cert, err := certs.FromRecord(rec)
		if err != nil {
			// Invalid date inside an otherwise well-formed array;
			// classified by the wrapped sentinel.
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		loaded = append(loaded, cert)
	}

	return loaded, nil
}

// validateStorage checks the raw file contents against the storage schema.
// It distinguishes malformed JSON from a well-formed document that is
// missing required record fields.
func validateStorage(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(storageSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		// The document never parsed as JSON at all.
		return fmt.Errorf("%w: %v", ErrMalformedStorage, err)
	}

	if !result.Valid() {
		desc := "schema violation"
		if errs := result.Errors(); len(errs) > 0 {
			desc = errs[0].String()
		}
		return fmt.Errorf("%w: %s", certs.ErrMissingField, desc)
	}

	return nil
}

// Persist rewrites the storage file with the entire collection in its
// current order, replacing any existing content.
func (m *Manager) Persist() error {
	return m.persistList(m.certs)
}

// persistList serializes list to the storage path.
//
// The array is encoded into a pooled buffer, written to a temporary file
// in the storage directory, synced, and renamed over the target, so a
// crash mid-write cannot corrupt previously valid data.
func (m *Manager) persistList(list []*certs.Certificate) error {
	records := make([]certs.Record, 0, len(list))
	for _, c := range list {
		records = append(records, c.ToRecord())
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("inventory: failed to encode certificates: %w", err)
	}

	return writeFileAtomic(m.storagePath, buf.Bytes())
}

// writeFileAtomic writes data to path via a temporary file and rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("inventory: failed to create temp storage file: %w", err)
	}

	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("inventory: failed to write storage file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("inventory: failed to sync storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("inventory: failed to close storage file: %w", err)
	}

	// CreateTemp uses 0600; the storage file is plain metadata.
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("inventory: failed to set storage file mode: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("inventory: failed to replace storage file: %w", err)
	}

	return nil
}
