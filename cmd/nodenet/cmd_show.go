package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nodenet-io/nodenet/pkg/cli"
	"github.com/nodenet-io/nodenet/pkg/editor"
	"github.com/nodenet-io/nodenet/pkg/model"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the node's interface rows",
	Long: `Show the flattened interface rows of the selected node:
one row per configured link, alias rows for second and later links,
and bonds with their member interfaces.

Examples:
  nodenet -n abc123 show`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		node := s.store.NodeBySystemID(nodeID)
		fmt.Printf("Node: %s (%s)\n\n", cli.Bold(node.Hostname), node.SystemID)

		rows := s.editor.Rows()
		if len(rows) == 0 {
			fmt.Println("No interfaces found")
			return nil
		}

		t := cli.NewTable("NAME", "TYPE", "FABRIC", "VLAN", "SUBNET", "MODE", "IP ADDRESS")
		for _, row := range rows {
			t.Row(rowName(row), string(row.Type), fabricOf(row), vlanOf(row),
				subnetOf(row), string(row.Mode), dash(row.IPAddress))
		}
		t.Flush()

		for _, row := range rows {
			if len(row.Members) == 0 {
				continue
			}
			fmt.Printf("\n%s\n", cli.Bold(cli.DotPad(row.Name+" members", 30)))
			mt := cli.NewTable("NAME", "MAC").WithPrefix("  ")
			for _, m := range row.Members {
				mt.Row(m.Name, dash(m.MACAddress))
			}
			mt.Flush()
		}
		return nil
	},
}

func rowName(row *editor.InterfaceRow) string {
	if row.IsAlias() {
		return cli.Dim(row.Name)
	}
	return row.Name
}

func fabricOf(row *editor.InterfaceRow) string {
	if row.Fabric == nil {
		return "-"
	}
	return row.Fabric.Name
}

func vlanOf(row *editor.InterfaceRow) string {
	if row.VLAN == nil {
		return "-"
	}
	if row.VLAN.VID == 0 {
		return "untagged"
	}
	return fmt.Sprint(row.VLAN.VID)
}

func subnetOf(row *editor.InterfaceRow) string {
	if row.Subnet == nil {
		return "-"
	}
	return row.Subnet.CIDR
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func modeFlag(s string) (model.LinkMode, error) {
	mode := model.LinkMode(s)
	if !mode.Valid() {
		return "", fmt.Errorf("invalid link mode %q (auto, dhcp, static, link_up)", s)
	}
	return mode, nil
}
