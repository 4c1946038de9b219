// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package certs defines the Certificate value entity tracked by certwatch.
// A Certificate carries expiration metadata only (name, domain, expiration
// date, issuer, notes) together with live date-based classification:
// days-until-expiration, expired, and expiring-soon. The Record type is its
// serialized form in the JSON storage file and round-trips exactly.
package certs
