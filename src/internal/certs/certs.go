// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certs

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidDate indicates that an expiration date string does not match
	// the YYYY-MM-DD layout or denotes an impossible calendar date.
	ErrInvalidDate = errors.New("certs: invalid expiration date")

	// ErrMissingField indicates that a serialized record lacks one of the
	// required fields (name, domain, expiration_date).
	ErrMissingField = errors.New("certs: missing required field")
)

// DateLayout is the calendar date layout used for expiration dates,
// both on the CLI and in the storage file.
const DateLayout = "2006-01-02"

const (
	// DefaultExpiringSoonDays is the default threshold for the
	// expiring-soon classification.
	DefaultExpiringSoonDays = 30

	// UrgentExpiringSoonDays is the threshold below which an expiring
	// certificate is considered urgent.
	UrgentExpiringSoonDays = 7
)

// Certificate represents one tracked SSL/TLS certificate with its
// expiration metadata. Only the calendar date of expiry is stored;
// no key material or X.509 structure is involved.
type Certificate struct {
	Name           string
	Domain         string
	ExpirationDate time.Time
	Issuer         string
	Notes          string
}

// New creates a Certificate from its metadata fields.
//
// The expiration date must be a YYYY-MM-DD string denoting a valid calendar
// date; anything else fails with [ErrInvalidDate]. Name and domain are
// accepted as-is, including empty strings.
//
// Parameters:
//   - name: Certificate identifier, unique within a manager's collection
//   - domain: Domain name the certificate covers
//   - expiration: Expiration date in YYYY-MM-DD format
//   - issuer: Certificate issuer (e.g., Let's Encrypt, DigiCert), may be empty
//   - notes: Free-form notes, may be empty
//
// Returns:
//   - *Certificate: The constructed certificate
//   - error: [ErrInvalidDate] if the expiration date cannot be parsed
func New(name, domain, expiration, issuer, notes string) (*Certificate, error) {
	date, err := ParseDate(expiration)
	if err != nil {
		return nil, err
	}

	return &Certificate{
		Name:           name,
		Domain:         domain,
		ExpirationDate: date,
		Issuer:         issuer,
		Notes:          notes,
	}, nil
}

// ParseDate parses a strict YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return date, nil
}

// DaysUntilExpiration calculates the whole days remaining until the
// certificate expires, relative to the local calendar date at call time.
// The result is negative for expired certificates.
//
// The value is never cached; two calls made on different days differ.
func (c *Certificate) DaysUntilExpiration() int {
	return daysBetween(time.Now(), c.ExpirationDate)
}

// IsExpired reports whether the certificate's expiration date has passed.
func (c *Certificate) IsExpired() bool {
	return c.DaysUntilExpiration() < 0
}

// IsExpiringSoon reports whether the certificate expires within the given
// number of days. Expired certificates are never expiring-soon: the
// predicate holds only for day counts in the inclusive range [0, days].
func (c *Certificate) IsExpiringSoon(days int) bool {
	left := c.DaysUntilExpiration()
	return left >= 0 && left <= days
}

// Clone returns a copy of the certificate. Mutating the copy never
// affects the original.
func (c *Certificate) Clone() *Certificate {
	clone := *c
	return &clone
}

// String renders a one-line summary of the certificate.
func (c *Certificate) String() string {
	days := c.DaysUntilExpiration()
	status := fmt.Sprintf("%d days", days)
	if days < 0 {
		status = "EXPIRED"
	}
	return fmt.Sprintf("%s (%s) - Expires: %s (%s)",
		c.Name, c.Domain, c.ExpirationDate.Format(DateLayout), status)
}

// daysBetween counts whole calendar days from a to b, ignoring the
// time-of-day component. Both dates are normalized to UTC midnights so
// the subtraction is exact across DST transitions.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	return int(end.Sub(start) / (24 * time.Hour))
}
