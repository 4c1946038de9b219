// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certs

// Record is the serialized form of a [Certificate] as it appears in the
// storage file: one element of the persisted JSON array. The expiration
// date is rendered back to its YYYY-MM-DD string form.
type Record struct {
	Name           string `json:"name"`
	Domain         string `json:"domain"`
	ExpirationDate string `json:"expiration_date"`
	Issuer         string `json:"issuer"`
	Notes          string `json:"notes"`
}

// ToRecord converts the certificate to its serialized form.
// The conversion round-trips exactly through [FromRecord].
func (c *Certificate) ToRecord() Record {
	return Record{
		Name:           c.Name,
		Domain:         c.Domain,
		ExpirationDate: c.ExpirationDate.Format(DateLayout),
		Issuer:         c.Issuer,
		Notes:          c.Notes,
	}
}

// FromRecord builds a Certificate from its serialized form.
//
// Missing issuer and notes default to the empty string. Name and domain
// are accepted as-is, including empty, exactly as construction via [New];
// an absent required key is detected by the storage schema validation
// before decoding reaches this point. A malformed or empty expiration
// date fails with [ErrInvalidDate], same as [New].
func FromRecord(r Record) (*Certificate, error) {
	return New(r.Name, r.Domain, r.ExpirationDate, r.Issuer, r.Notes)
}
