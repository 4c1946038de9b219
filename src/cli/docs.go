// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for certwatch.
// It implements a Cobra-based CLI with add, remove, list, update, show,
// and stats subcommands over the certificate inventory, plus global flags
// for the storage path, an optional JSON/YAML config file, and structured
// JSON logging. Validation and duplicate-name failures are reported on
// stderr with exit code 1; table output goes to stdout.
package cli
