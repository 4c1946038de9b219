// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/certwatch/src/internal/certs"
	"github.com/H0llyW00dzZ/certwatch/src/internal/inventory"
	"github.com/H0llyW00dzZ/certwatch/src/logger"
)

// ErrNoUpdates indicates that an update command was invoked without any
// field flags.
var ErrNoUpdates = errors.New("cli: no updates specified")

// app carries the state shared by all subcommands: the resolved options,
// the logger, and the manager constructed from them.
type app struct {
	log logger.Logger
	mgr *inventory.Manager

	storagePath string
	configPath  string
	logJSON     bool

	warnDays   int
	urgentDays int
}

// Execute runs the certwatch root command with arguments from os.Args.
//
// Parameters:
//   - ctx: Context for cancellation
//   - version: Application version string
//   - log: Logger for user-facing output
//
// Returns:
//   - error: The first error encountered by the invoked command
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewRootCommand(version, log).ExecuteContext(ctx)
}

// NewRootCommand builds the certwatch command tree.
// The returned command is ready for ExecuteContext; tests can inject
// arguments with SetArgs.
func NewRootCommand(version string, log logger.Logger) *cobra.Command {
	if log == nil {
		log = logger.NewCLILogger()
	}

	a := &app{log: log}

	rootCmd := &cobra.Command{
		Use:           "certwatch",
		Short:         "Track SSL/TLS certificate expiration dates",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.storagePath, "storage", "", "path to certificate storage file (default: certificates.json)")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a JSON or YAML config file with default settings")
	rootCmd.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "emit logs as line-delimited JSON on stderr")

	rootCmd.AddCommand(
		a.newAddCommand(),
		a.newRemoveCommand(),
		a.newListCommand(),
		a.newUpdateCommand(),
		a.newShowCommand(),
		a.newStatsCommand(),
	)

	return rootCmd
}

// setup resolves the effective configuration and constructs the manager.
// Precedence: flags over config file over built-in defaults.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}

	a.warnDays = cfg.Defaults.WarnDays
	a.urgentDays = cfg.Defaults.UrgentDays

	if !cmd.Flags().Changed("storage") {
		a.storagePath = cfg.Defaults.Storage
	}

	if a.logJSON {
		a.log = logger.NewJSONLogger(os.Stderr)
	}

	a.mgr = inventory.New(a.storagePath, a.log)

	// Corruption on load is logged by the manager; additionally surface a
	// hard warning so an operator cannot miss that old data is inaccessible.
	if warning := a.mgr.LoadWarning(); warning != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: storage file %s is unreadable: %s\n", a.mgr.StoragePath(), warning)
	}

	return nil
}

// newAddCommand builds the add subcommand.
func (a *app) newAddCommand() *cobra.Command {
	var issuer, notes string

	cmd := &cobra.Command{
		Use:   "add <name> <domain> <expiration_date>",
		Short: "Add a new certificate",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cert, err := certs.New(args[0], args[1], args[2], issuer, notes)
			if err != nil {
				return err
			}

			if err := a.mgr.Add(cert); err != nil {
				return err
			}

			a.log.Printf("Certificate %q added successfully.", cert.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&issuer, "issuer", "", "certificate issuer")
	cmd.Flags().StringVar(&notes, "notes", "", "additional notes")

	return cmd
}

// newRemoveCommand builds the remove subcommand.
func (a *app) newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := a.mgr.Remove(args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("certificate %q not found", args[0])
			}

			a.log.Printf("Certificate %q removed successfully.", args[0])
			return nil
		},
	}
}

// newListCommand builds the list subcommand.
func (a *app) newListCommand() *cobra.Command {
	var (
		expired      bool
		expiringSoon bool
		days         int
		jsonOut      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List certificates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold := days
			if !cmd.Flags().Changed("days") {
				threshold = a.warnDays
			}

			var (
				list    []*certs.Certificate
				heading string
			)
			switch {
			case expired:
				list = a.mgr.Expired()
				heading = "Expired Certificates:"
			case expiringSoon:
				list = a.mgr.ExpiringSoon(threshold)
				heading = fmt.Sprintf("Certificates Expiring in %d Days:", threshold)
			default:
				list = a.mgr.List()
				heading = "All Certificates:"
			}

			if jsonOut {
				data, err := inventory.ToJSON(list)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			a.log.Println(heading)
			a.log.Println(strings.Repeat("=", 80))
			a.log.Println(inventory.RenderTable(list, a.urgentDays, a.warnDays))
			return nil
		},
	}

	cmd.Flags().BoolVar(&expired, "expired", false, "show only expired certificates")
	cmd.Flags().BoolVar(&expiringSoon, "expiring-soon", false, "show certificates expiring soon")
	cmd.Flags().IntVar(&days, "days", certs.DefaultExpiringSoonDays, "days threshold for the expiring-soon filter")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	cmd.MarkFlagsMutuallyExclusive("expired", "expiring-soon")

	return cmd
}

// newUpdateCommand builds the update subcommand.
//
// Flag changed-ness distinguishes an absent flag from one explicitly set
// to the empty string, so issuer and notes can be cleared.
func (a *app) newUpdateCommand() *cobra.Command {
	var domain, expiration, issuer, notes string

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Update certificate fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req inventory.UpdateRequest
			if cmd.Flags().Changed("domain") {
				req.Domain = &domain
			}
			if cmd.Flags().Changed("expiration-date") {
				req.ExpirationDate = &expiration
			}
			if cmd.Flags().Changed("issuer") {
				req.Issuer = &issuer
			}
			if cmd.Flags().Changed("notes") {
				req.Notes = &notes
			}

			if req == (inventory.UpdateRequest{}) {
				return ErrNoUpdates
			}

			found, err := a.mgr.Update(args[0], req)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("certificate %q not found", args[0])
			}

			a.log.Printf("Certificate %q updated successfully.", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "new domain name")
	cmd.Flags().StringVar(&expiration, "expiration-date", "", "new expiration date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&issuer, "issuer", "", "new issuer")
	cmd.Flags().StringVar(&notes, "notes", "", "new notes")

	return cmd
}

// newShowCommand builds the show subcommand.
func (a *app) newShowCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show certificate details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cert, found := a.mgr.Get(args[0])
			if !found {
				return fmt.Errorf("certificate %q not found", args[0])
			}

			if jsonOut {
				data, err := inventory.ToJSON([]*certs.Certificate{cert})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			a.log.Println(inventory.RenderDetails(cert))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}

// statsJSON marshals aggregate counts with the storage-file key style.
func statsJSON(s inventory.Stats) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// newStatsCommand builds the stats subcommand.
func (a *app) newStatsCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show certificate statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := a.mgr.Statistics()

			if jsonOut {
				data, err := statsJSON(stats)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			a.log.Println(inventory.RenderStatistics(stats))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	return cmd
}
