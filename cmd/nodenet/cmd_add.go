package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nodenet-io/nodenet/pkg/cli"
	"github.com/nodenet-io/nodenet/pkg/model"
)

var addSubnet int

var addAliasCmd = &cobra.Command{
	Use:   "add-alias <row>",
	Short: "Stack another link on an interface",
	Long: `Add an alias: another IP link on an existing interface. The
interface must already carry an addressed link. Defaults to auto mode on
the first free subnet of the interface's VLAN.

Examples:
  nodenet -n abc123 add-alias eth0 -x
  nodenet -n abc123 add-alias eth0 --subnet 3 -x`,
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
		if !s.editor.CanAddAlias(row) {
			return fmt.Errorf("%s has no addressed link to alias against", row.Name)
		}

		s.editor.Add(model.TypeAlias, row)
		if cmd.Flags().Changed("subnet") {
			sub := s.store.SubnetByID(addSubnet)
			if sub == nil {
				return fmt.Errorf("unknown subnet %d", addSubnet)
			}
			s.editor.SetDraftSubnet(sub)
		}

		name := s.editor.DraftName()
		if err := s.editor.AddInterface(ctx); err != nil {
			return err
		}
		fmt.Printf("added %s\n", cli.Bold(name))
		previewNote()
		return nil
	},
}

var (
	addVLANID   int
	addVLANMode string
)

var addVLANCmd = &cobra.Command{
	Use:   "add-vlan <row>",
	Short: "Create a VLAN interface on top of an interface",
	Long: `Create a VLAN child interface. Without --vlan the first VLAN on
the parent's fabric not already used by one of its VLAN children is
taken. Defaults to link_up with no subnet.

Examples:
  nodenet -n abc123 add-vlan eth0 --vlan 5002 -x
  nodenet -n abc123 add-vlan eth0 --vlan 5002 --subnet 2 --mode auto -x`,
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
		if !s.editor.CanAddVLAN(row) {
			return fmt.Errorf("%s has no free VLAN on its fabric", row.Name)
		}

		s.editor.Add(model.TypeVLAN, row)
		if cmd.Flags().Changed("vlan") {
			vlan := s.store.VLANByID(addVLANID)
			if vlan == nil {
				return fmt.Errorf("unknown VLAN %d", addVLANID)
			}
			s.editor.SetDraftVLAN(vlan)
		}
		if cmd.Flags().Changed("subnet") {
			sub := s.store.SubnetByID(addSubnet)
			if sub == nil {
				return fmt.Errorf("unknown subnet %d", addSubnet)
			}
			s.editor.SetDraftSubnet(sub)
		}
		if addVLANMode != "" {
			mode, err := modeFlag(addVLANMode)
			if err != nil {
				return err
			}
			s.editor.Draft().Mode = mode
		}

		name := s.editor.DraftName()
		if err := s.editor.AddInterface(ctx); err != nil {
			return err
		}
		fmt.Printf("added %s\n", cli.Bold(name))
		previewNote()
		return nil
	},
}

var (
	bondName     string
	bondMAC      string
	bondMode     string
	bondLACPRate string
	bondXmitHash string
)

var createBondCmd = &cobra.Command{
	Use:   "create-bond <row> <row>...",
	Short: "Aggregate interfaces into a bond",
	Long: `Create a bond over two or more physical interfaces. All members
must sit on the same VLAN; the first named interface becomes the primary
and donates its MAC unless --mac overrides it.

Examples:
  nodenet -n abc123 create-bond eth0 eth1 -x
  nodenet -n abc123 create-bond eth0 eth1 --name bond1 --mode 802.3ad --lacp-rate fast -x`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		for _, name := range args {
			row, err := s.rowByName(name)
			if err != nil {
				return err
			}
			s.editor.Toggle(row)
		}

		draft, err := s.editor.ShowCreateBond()
		if err != nil {
			return err
		}

		if bondName != "" {
			draft.Name = bondName
		}
		draft.MACAddress = bondMAC
		if bondMode != "" {
			mode := model.BondMode(bondMode)
			if !mode.Valid() {
				return fmt.Errorf("invalid bond mode %q", bondMode)
			}
			draft.Mode = mode
		}
		if bondLACPRate != "" {
			draft.LACPRate = model.LACPRate(bondLACPRate)
		}
		if bondXmitHash != "" {
			draft.XmitHashPolicy = model.XmitHashPolicy(bondXmitHash)
		}

		if err := s.editor.AddBond(ctx); err != nil {
			return err
		}
		fmt.Printf("created %s over %v\n", cli.Bold(draft.Name), args)
		previewNote()
		return nil
	},
}

func init() {
	addAliasCmd.Flags().IntVar(&addSubnet, "subnet", 0, "subnet id for the new link")

	addVLANCmd.Flags().IntVar(&addVLANID, "vlan", 0, "VLAN id for the child interface")
	addVLANCmd.Flags().IntVar(&addSubnet, "subnet", 0, "subnet id for the new link")
	addVLANCmd.Flags().StringVar(&addVLANMode, "mode", "", "link mode (auto, dhcp, static, link_up)")

	createBondCmd.Flags().StringVar(&bondName, "name", "", "bond name (default: next free bondN)")
	createBondCmd.Flags().StringVar(&bondMAC, "mac", "", "MAC override (default: primary member's)")
	createBondCmd.Flags().StringVar(&bondMode, "mode", "", "bonding mode")
	createBondCmd.Flags().StringVar(&bondLACPRate, "lacp-rate", "", "LACP rate (slow, fast)")
	createBondCmd.Flags().StringVar(&bondXmitHash, "xmit-hash-policy", "", "transmit hash policy")
}
