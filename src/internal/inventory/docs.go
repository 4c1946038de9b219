// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package inventory manages the tracked certificate collection.
// The Manager owns an ordered, name-unique collection of certificates and
// keeps it synchronized with a single JSON storage file: every successful
// mutation rewrites the file in full via an atomic temp-file-and-rename.
// Mutations are transactional — the next state is persisted before it is
// committed to memory — so a failed write never leaves memory and disk
// disagreeing. Queries (expired, expiring-soon, statistics) evaluate the
// live wall clock at call time and are consistent only within one call.
//
// Corrupt storage files are classified on load (malformed JSON, missing
// required field, invalid date), logged, and replaced in memory by an
// empty collection; the file itself is left untouched until the next
// successful mutation.
package inventory
