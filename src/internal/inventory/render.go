// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package inventory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/H0llyW00dzZ/certwatch/src/internal/certs"
	"github.com/H0llyW00dzZ/certwatch/src/internal/helper/gc"
)

// RenderTable renders certificates as a formatted markdown table.
//
// Each row shows name, domain, expiration date, days left, issuer, and a
// status column classified against the given thresholds: expired
// certificates are 🔴 EXPIRED, those within urgentDays are 🟡 URGENT,
// those within warnDays are 🟠 WARNING, everything else is 🟢 OK.
//
// Parameters:
//   - list: Certificates to render, in display order
//   - urgentDays: Threshold for the URGENT classification
//   - warnDays: Threshold for the WARNING classification
//
// Returns:
//   - string: Markdown table representation of the certificates
func RenderTable(list []*certs.Certificate, urgentDays, warnDays int) string {
	if len(list) == 0 {
		return "No certificates found."
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	table := tablewriter.NewTable(buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"Name", "Domain", "Expiration Date", "Days Left", "Issuer", "Status"})

	var rows [][]string
	for _, c := range list {
		daysLeft := c.DaysUntilExpiration()
		days := fmt.Sprintf("%d", daysLeft)
		if daysLeft < 0 {
			days = fmt.Sprintf("%d (expired)", daysLeft)
		}

		rows = append(rows, []string{
			c.Name,
			c.Domain,
			c.ExpirationDate.Format(certs.DateLayout),
			days,
			orNA(c.Issuer),
			statusOf(c, urgentDays, warnDays),
		})
	}

	table.Bulk(rows)
	table.Render()
	return string(buf.Bytes())
}

// RenderDetails renders the full detail record of a single certificate.
func RenderDetails(c *certs.Certificate) string {
	status := "Valid"
	if c.IsExpired() {
		status = "EXPIRED"
	}

	var b strings.Builder
	b.WriteString("Certificate Details:\n")
	b.WriteString(strings.Repeat("=", 80) + "\n")
	fmt.Fprintf(&b, "Name:            %s\n", c.Name)
	fmt.Fprintf(&b, "Domain:          %s\n", c.Domain)
	fmt.Fprintf(&b, "Expiration Date: %s\n", c.ExpirationDate.Format(certs.DateLayout))
	fmt.Fprintf(&b, "Days Left:       %d\n", c.DaysUntilExpiration())
	fmt.Fprintf(&b, "Issuer:          %s\n", orNA(c.Issuer))
	fmt.Fprintf(&b, "Notes:           %s\n", orNA(c.Notes))
	fmt.Fprintf(&b, "Status:          %s\n", status)
	return b.String()
}

// RenderStatistics renders aggregate counts as a readable block.
func RenderStatistics(s Stats) string {
	var b strings.Builder
	b.WriteString("Certificate Statistics:\n")
	b.WriteString(strings.Repeat("=", 80) + "\n")
	fmt.Fprintf(&b, "Total Certificates:   %d\n", s.Total)
	fmt.Fprintf(&b, "Valid Certificates:   %d\n", s.Valid)
	fmt.Fprintf(&b, "Expired Certificates: %d\n", s.Expired)
	fmt.Fprintf(&b, "Expiring in 7 Days:   %d\n", s.ExpiringIn7Days)
	fmt.Fprintf(&b, "Expiring in 30 Days:  %d\n", s.ExpiringIn30Days)
	return b.String()
}

// ToJSON converts certificates to an indented JSON array of records,
// the same shape as the storage file. Suitable for machine consumption
// via the CLI --json flag.
func ToJSON(list []*certs.Certificate) ([]byte, error) {
	records := make([]certs.Record, 0, len(list))
	for _, c := range list {
		records = append(records, c.ToRecord())
	}
	return json.MarshalIndent(records, "", "  ")
}

// statusOf classifies a certificate for table display.
func statusOf(c *certs.Certificate, urgentDays, warnDays int) string {
	switch {
	case c.IsExpired():
		return "🔴 EXPIRED"
	case c.IsExpiringSoon(urgentDays):
		return "🟡 URGENT"
	case c.IsExpiringSoon(warnDays):
		return "🟠 WARNING"
	default:
		return "🟢 OK"
	}
}

// orNA substitutes "N/A" for empty optional fields in display output.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
