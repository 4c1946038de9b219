// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package inventory

import (
	"errors"
	"fmt"
	"slices"

	"github.com/H0llyW00dzZ/certwatch/src/internal/certs"
	"github.com/H0llyW00dzZ/certwatch/src/logger"
)

var (
	// ErrDuplicateName indicates that a certificate with the same name is
	// already present in the collection.
	ErrDuplicateName = errors.New("inventory: duplicate certificate name")

	// ErrMalformedStorage indicates that the storage file does not contain
	// a well-formed JSON array.
	ErrMalformedStorage = errors.New("inventory: malformed storage file")
)

// DefaultStoragePath is the storage file used when no path is configured.
const DefaultStoragePath = "certificates.json"

// Manager owns an ordered collection of certificates and keeps it
// synchronized with a JSON storage file. Certificate names are unique
// within the collection; insertion order is preserved.
//
// Manager is single-process by design: the storage file is the only unit
// of synchronization, and concurrent writers from separate processes are
// not guarded against (last writer wins).
type Manager struct {
	storagePath string
	log         logger.Logger
	certs       []*certs.Certificate
	loadWarning string
}

// New creates a Manager bound to the given storage path and loads any
// existing state from it. A missing file yields an empty collection. A
// corrupt file is left untouched on disk: the corruption is classified,
// logged as a warning, and the collection starts empty (see LoadWarning).
func New(path string, log logger.Logger) *Manager {
	if path == "" {
		path = DefaultStoragePath
	}
	if log == nil {
		log = logger.NewCLILogger()
	}

	m := &Manager{storagePath: path, log: log}
	m.load()
	return m
}

// StoragePath returns the path of the backing storage file.
func (m *Manager) StoragePath() string { return m.storagePath }

// LoadWarning returns the corruption warning recorded while loading the
// storage file, or the empty string when the load was clean. Callers
// presenting results to an operator should surface this prominently:
// a non-empty warning means previously stored data is inaccessible.
func (m *Manager) LoadWarning() string { return m.loadWarning }

// Add appends a certificate to the collection and persists it.
//
// It fails with [ErrDuplicateName] if a certificate with the same name
// (exact, case-sensitive match) already exists; neither the collection
// nor the storage file is changed on failure. The new state is persisted
// before it is committed to memory, so a failed write leaves memory and
// disk agreeing on the previous state.
func (m *Manager) Add(c *certs.Certificate) error {
	if m.indexOf(c.Name) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
	}

	next := append(slices.Clone(m.certs), c)
	if err := m.persistList(next); err != nil {
		return err
	}

	m.certs = next
	return nil
}

// Remove deletes the certificate with the given name.
//
// It reports whether a certificate was removed; the storage file is
// rewritten only when one was. Removing an absent name is not an error.
func (m *Manager) Remove(name string) (bool, error) {
	idx := m.indexOf(name)
	if idx < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(m.certs), idx, idx+1)
	if err := m.persistList(next); err != nil {
		return false, err
	}

	m.certs = next
	return true, nil
}

// Get returns the certificate with the given name, if present.
// Matching is by exact name in collection order.
func (m *Manager) Get(name string) (*certs.Certificate, bool) {
	idx := m.indexOf(name)
	if idx < 0 {
		return nil, false
	}
	return m.certs[idx], true
}

// UpdateRequest carries the optional fields of an update. Only non-nil
// fields are applied; a nil field leaves the current value unchanged.
// This allows setting issuer or notes to the empty string explicitly.
type UpdateRequest struct {
	Domain         *string
	ExpirationDate *string
	Issuer         *string
	Notes          *string
}

// Update applies the non-nil fields of req to the named certificate and
// persists the collection.
//
// It reports whether the certificate was found. A malformed expiration
// date fails with [certs.ErrInvalidDate] before anything is applied or
// persisted, mirroring construction. Nothing is written when the name is
// not found.
func (m *Manager) Update(name string, req UpdateRequest) (bool, error) {
	idx := m.indexOf(name)
	if idx < 0 {
		return false, nil
	}

	updated := m.certs[idx].Clone()

	if req.ExpirationDate != nil {
		date, err := certs.ParseDate(*req.ExpirationDate)
		if err != nil {
			return true, err
		}
		updated.ExpirationDate = date
	}
	if req.Domain != nil {
		updated.Domain = *req.Domain
	}
	if req.Issuer != nil {
		updated.Issuer = *req.Issuer
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}

	next := slices.Clone(m.certs)
	next[idx] = updated

	if err := m.persistList(next); err != nil {
		return true, err
	}

	m.certs = next
	return true, nil
}

// List returns the full collection in insertion order.
//
// The returned slice is a copy; the certificates themselves are shared
// and must be treated as read-only by callers.
func (m *Manager) List() []*certs.Certificate {
	return slices.Clone(m.certs)
}

// Expired returns the expired certificates, order preserved.
func (m *Manager) Expired() []*certs.Certificate {
	var out []*certs.Certificate
	for _, c := range m.certs {
		if c.IsExpired() {
			out = append(out, c)
		}
	}
	return out
}

// ExpiringSoon returns the certificates expiring within the given number
// of days, order preserved. Expired certificates are never included.
func (m *Manager) ExpiringSoon(days int) []*certs.Certificate {
	var out []*certs.Certificate
	for _, c := range m.certs {
		if c.IsExpiringSoon(days) {
			out = append(out, c)
		}
	}
	return out
}

// Stats holds aggregate counts over the collection. The expiring counts
// use independent thresholds over the same live predicate and are not a
// breakdown of each other; both exclude expired certificates.
type Stats struct {
	Total            int `json:"total"`
	Expired          int `json:"expired"`
	ExpiringIn30Days int `json:"expiring_in_30_days"`
	ExpiringIn7Days  int `json:"expiring_in_7_days"`
	Valid            int `json:"valid"`
}

// Statistics computes aggregate counts over the collection at call time.
// The counts are live: they observe the wall clock and may differ between
// two calls made across a day boundary.
func (m *Manager) Statistics() Stats {
	total := len(m.certs)
	expired := len(m.Expired())

	return Stats{
		Total:            total,
		Expired:          expired,
		ExpiringIn30Days: len(m.ExpiringSoon(certs.DefaultExpiringSoonDays)),
		ExpiringIn7Days:  len(m.ExpiringSoon(certs.UrgentExpiringSoonDays)),
		Valid:            total - expired,
	}
}

// indexOf returns the position of the named certificate, or -1.
func (m *Manager) indexOf(name string) int {
	return slices.IndexFunc(m.certs, func(c *certs.Certificate) bool {
		return c.Name == name
	})
}
