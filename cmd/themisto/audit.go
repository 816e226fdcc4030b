package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/themisto/pkg/audit"
	"mercator-hq/themisto/pkg/config"
)

var auditFlags struct {
	subject   string
	action    string
	pid       string
	outcome   string
	timeRange string
	limit     int
	offset    int
	format    string
	output    string
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the enforcement audit trail",
	Long: `Query the enforcement audit trail for compliance review.

Every enforcement decision the runtime records lands in the audit database;
this command reads it back with filters.

Examples:
  # Last 100 decisions
  themisto audit query

  # Every denial for one object
  themisto audit query --pid demo:1 --outcome denied

  # Export a time window to JSON
  themisto audit query --time-range "2026-08-01T00:00:00Z/2026-08-30T00:00:00Z" --format json -o decisions.json`,
}

var auditQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query enforcement records",
	Long: `Query enforcement records with filters.

Time Range Format:
  RFC3339 interval: "start/end"
  Example: "2026-08-01T00:00:00Z/2026-08-30T00:00:00Z"

Examples:
  # Filter by caller
  themisto audit query --subject alice

  # Filter by outcome with pagination
  themisto audit query --outcome denied --limit 20 --offset 40`,
	RunE: queryAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditQueryCmd)

	auditQueryCmd.Flags().StringVar(&auditFlags.subject, "subject", "", "filter by caller login id")
	auditQueryCmd.Flags().StringVar(&auditFlags.action, "action", "", "filter by action identifier")
	auditQueryCmd.Flags().StringVar(&auditFlags.pid, "pid", "", "filter by object pid")
	auditQueryCmd.Flags().StringVar(&auditFlags.outcome, "outcome", "", "filter by outcome (permitted, permitted-no-op, denied)")
	auditQueryCmd.Flags().StringVar(&auditFlags.timeRange, "time-range", "", "time range (RFC3339 interval: start/end)")
	auditQueryCmd.Flags().IntVar(&auditFlags.limit, "limit", 100, "max results")
	auditQueryCmd.Flags().IntVar(&auditFlags.offset, "offset", 0, "pagination offset")
	auditQueryCmd.Flags().StringVar(&auditFlags.format, "format", "text", "output format: text, json")
	auditQueryCmd.Flags().StringVarP(&auditFlags.output, "output", "o", "", "output file (default: stdout)")
}

func queryAudit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	storageCfg := audit.DefaultSQLiteConfig()
	storageCfg.Path = cfg.Audit.DBPath
	store, err := audit.NewSQLiteStorage(storageCfg, nil)
	if err != nil {
		return fmt.Errorf("failed to open audit storage: %w", err)
	}
	defer store.Close()

	query, err := buildAuditQuery()
	if err != nil {
		return err
	}

	records, err := store.Query(context.Background(), query)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	var output io.Writer = os.Stdout
	if auditFlags.output != "" {
		f, err := os.Create(auditFlags.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	switch auditFlags.format {
	case "json":
		return writeAuditJSON(output, records)
	case "text":
		return writeAuditText(output, records)
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", auditFlags.format)
	}
}

// buildAuditQuery translates the command flags into a storage query.
func buildAuditQuery() (*audit.Query, error) {
	query := &audit.Query{
		Subject:  auditFlags.subject,
		ActionID: auditFlags.action,
		PID:      auditFlags.pid,
		Outcome:  auditFlags.outcome,
		Limit:    auditFlags.limit,
		Offset:   auditFlags.offset,
	}

	if auditFlags.timeRange != "" {
		since, until, err := parseTimeRange(auditFlags.timeRange)
		if err != nil {
			return nil, err
		}
		query.Since = since
		query.Until = until
	}

	return query, nil
}

func parseTimeRange(s string) (time.Time, time.Time, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid time range format (expected: start/end)")
	}

	since, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time: %w", err)
	}
	until, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time: %w", err)
	}

	return since, until, nil
}

func writeAuditText(output io.Writer, records []*audit.Record) error {
	fmt.Fprintf(output, "Total records: %d\n", len(records))
	fmt.Fprintln(output)

	if len(records) == 0 {
		fmt.Fprintln(output, "No records found.")
		return nil
	}

	for i, record := range records {
		if i > 0 {
			fmt.Fprintln(output)
		}

		fmt.Fprintf(output, "Record ID: %s\n", record.ID)
		fmt.Fprintf(output, "Recorded: %s\n", record.RecordedAt.Format(time.RFC3339))
		if record.Subject != "" {
			fmt.Fprintf(output, "Subject: %s\n", record.Subject)
		}
		fmt.Fprintf(output, "Action: %s\n", record.ActionID)
		if record.PID != "" {
			fmt.Fprintf(output, "PID: %s\n", record.PID)
		}
		fmt.Fprintf(output, "Mode: %s\n", record.Mode)
		fmt.Fprintf(output, "Outcome: %s\n", record.Outcome)
		fmt.Fprintf(output, "Decisions: %d permit, %d deny, %d indeterminate, %d not-applicable, %d unexpected\n",
			record.Permits, record.Denies, record.Indeterminates, record.NotApplicables, record.Unexpected)
		if record.Batch > 0 {
			fmt.Fprintf(output, "Batch size: %d\n", record.Batch)
		}

		// Show limited output for large result sets
		if i >= 9 && len(records) > 10 {
			remaining := len(records) - 10
			fmt.Fprintln(output)
			fmt.Fprintf(output, "... and %d more records\n", remaining)
			fmt.Fprintf(output, "Use --limit and --offset for pagination.\n")
			break
		}
	}

	return nil
}

func writeAuditJSON(output io.Writer, records []*audit.Record) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	result := map[string]interface{}{
		"total_records": len(records),
		"records":       records,
	}

	return encoder.Encode(result)
}
