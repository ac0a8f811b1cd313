package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nodenet-io/nodenet/pkg/audit"
	"github.com/nodenet-io/nodenet/pkg/cli"
)

var (
	auditOp      string
	auditUser    string
	auditFailed  bool
	auditLimit   int
	auditSinceHr int
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the audit trail of executed changes",
	Long: `Show changes previously executed with -x, newest last. The trail
lives in ~/.nodenet/audit.log as JSON lines.

Examples:
  nodenet audit
  nodenet -n abc123 audit --op delete_interface
  nodenet audit --failed --since 24`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := audit.NewFileLogger(audit.DefaultLogPath(), audit.RotationConfig{})
		if err != nil {
			return err
		}
		defer logger.Close()

		filter := audit.Filter{
			Node:        nodeID,
			User:        auditUser,
			Operation:   auditOp,
			FailureOnly: auditFailed,
			Limit:       auditLimit,
		}
		if auditSinceHr > 0 {
			filter.StartTime = time.Now().Add(-time.Duration(auditSinceHr) * time.Hour)
		}

		events, err := logger.Query(filter)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No audit events found")
			return nil
		}

		t := cli.NewTable("TIME", "USER", "NODE", "OPERATION", "TARGET", "RESULT")
		for _, e := range events {
			result := cli.Green("ok")
			if !e.Success {
				result = cli.Red("failed: " + e.Error)
			}
			t.Row(e.Timestamp.Format(time.RFC3339), e.User, e.Node,
				e.Operation, dash(e.Interface), result)
		}
		t.Flush()
		return nil
	},
}

func init() {
	auditCmd.Flags().StringVar(&auditOp, "op", "", "filter by operation name")
	auditCmd.Flags().StringVar(&auditUser, "user", "", "filter by user")
	auditCmd.Flags().BoolVar(&auditFailed, "failed", false, "only failed operations")
	auditCmd.Flags().IntVar(&auditLimit, "limit", 0, "maximum number of events")
	auditCmd.Flags().IntVar(&auditSinceHr, "since", 0, "only events from the last N hours")
	rootCmd.AddCommand(auditCmd)
}
