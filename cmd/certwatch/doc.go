// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Command certwatch tracks SSL/TLS certificate expiration dates in a
// local JSON file.
//
// Usage:
//
//	certwatch [--storage FILE] [--config FILE] [--log-json] <command>
//
// Commands:
//
//	add <name> <domain> <expiration_date> [--issuer I] [--notes N]
//	remove <name>
//	list [--expired | --expiring-soon [--days N]] [--json]
//	update <name> [--domain D] [--expiration-date E] [--issuer I] [--notes N]
//	show <name> [--json]
//	stats [--json]
//
// The storage file is a single JSON array of certificate records and is
// rewritten atomically on every successful mutation. It is not safe for
// concurrent writers from multiple processes.
package main
