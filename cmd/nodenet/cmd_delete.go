package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nodenet-io/nodenet/pkg/cli"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <row>",
	Short: "Delete an interface or unlink an alias",
	Long: `Delete the named row. An alias row only unlinks its IP slot;
any other row deletes the whole interface, including a bond and its
membership.

Examples:
  nodenet -n abc123 delete eth0.10 -x    # Remove a VLAN child
  nodenet -n abc123 delete eth0:1 -x     # Unlink the second IP of eth0
  nodenet -n abc123 delete bond0 -x`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		row, err := s.rowByName(args[0])
		if err != nil {
			return err
		}

		s.editor.QuickRemove(row)
		if err := s.editor.ConfirmRemove(ctx); err != nil {
			return err
		}

		if row.IsAlias() {
			fmt.Printf("unlinked %s\n", cli.Bold(row.Name))
		} else {
			fmt.Printf("deleted %s\n", cli.Bold(row.Name))
		}
		previewNote()
		return nil
	},
}
