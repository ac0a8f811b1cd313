package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nodenet-io/nodenet/pkg/cli"
)

var setNameCmd = &cobra.Command{
	Use:   "set-name <row> <new-name>",
	Short: "Rename an interface",
	Long: `Rename an interface. The new name must be unique on the node;
a colliding or empty name is rejected locally and nothing is written.

Examples:
  nodenet -n abc123 set-name eth0 uplink0 -x`,
	Args: cobra.ExactArgs(2),
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
		if row.IsAlias() {
			return fmt.Errorf("alias rows cannot be renamed; rename %q instead",
				s.editor.OriginalInterface(row.ID).Name)
		}

		old := row.Name
		if args[1] == old {
			fmt.Printf("%s already has that name\n", old)
			return nil
		}
		row.Name = args[1]
		if err := s.editor.SaveInterface(ctx, row); err != nil {
			return err
		}
		if row.Name == old {
			return fmt.Errorf("name %q rejected (empty or already in use)", args[1])
		}

		fmt.Printf("%s renamed to %s\n", old, cli.Bold(row.Name))
		previewNote()
		return nil
	},
}

var (
	linkMode   string
	linkSubnet int
	linkIP     string
)

var linkCmd = &cobra.Command{
	Use:   "link <row>",
	Short: "Change a row's link configuration",
	Long: `Change the IP configuration of one row: its mode, subnet, or
static address. A static address must be a valid IP literal inside the
row's subnet; anything else reverts to the last fetched address.

Examples:
  nodenet -n abc123 link eth0 --mode dhcp -x
  nodenet -n abc123 link eth0 --mode static --ip 192.168.122.5 -x
  nodenet -n abc123 link eth0:1 --subnet 3 -x`,
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

		if linkMode != "" {
			mode, err := modeFlag(linkMode)
			if err != nil {
				return err
			}
			row.Mode = mode
		}
		if cmd.Flags().Changed("subnet") {
			sub := s.store.SubnetByID(linkSubnet)
			if sub == nil {
				return fmt.Errorf("unknown subnet %d", linkSubnet)
			}
			row.Subnet = sub
		}

		if linkIP != "" {
			row.IPAddress = linkIP
			if err := s.editor.SaveInterfaceIPAddress(ctx, row); err != nil {
				return err
			}
			if row.IPAddress != linkIP {
				return fmt.Errorf("address %q rejected (not a valid IP inside %s)",
					linkIP, subnetOf(row))
			}
		} else if err := s.editor.SaveInterfaceLink(ctx, row); err != nil {
			return err
		}

		fmt.Printf("%s: mode=%s subnet=%s ip=%s\n",
			cli.Bold(row.Name), row.Mode, subnetOf(row), dash(row.IPAddress))
		previewNote()
		return nil
	},
}

func init() {
	linkCmd.Flags().StringVar(&linkMode, "mode", "", "link mode (auto, dhcp, static, link_up)")
	linkCmd.Flags().IntVar(&linkSubnet, "subnet", 0, "subnet id")
	linkCmd.Flags().StringVar(&linkIP, "ip", "", "static IP address")
}
