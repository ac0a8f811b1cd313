package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nodenet-io/nodenet/pkg/cli"
	"github.com/nodenet-io/nodenet/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.nodenet/settings.json.

Settings provide defaults for context flags:
  - default_node:  Used when -n is not specified
  - redis_addr:    Controller cache address (--redis default)
  - ssh_host:      Tunnel host (--ssh-host default)
  - ssh_user:      Tunnel user (--ssh-user default)
  - topology_path: Topology YAML file (--topology default)

Examples:
  nodenet settings show
  nodenet settings set node abc123
  nodenet settings set redis 10.0.0.5:6379
  nodenet settings clear`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Settings file: %s\n\n", settings.DefaultSettingsPath())

		t := cli.NewTable("SETTING", "VALUE")
		printSetting := func(name, value string) {
			if value == "" {
				value = "(not set)"
			}
			t.Row(name, value)
		}

		printSetting("default_node", s.DefaultNode)
		printSetting("redis_addr", s.RedisAddr)
		printSetting("ssh_host", s.SSHHost)
		printSetting("ssh_user", s.SSHUser)
		printSetting("topology_path", s.TopologyPath)

		t.Flush()
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Long: `Set a persistent setting value.

Available settings:
  node     - Default node system id (-n flag default)
  redis    - Controller cache address (--redis flag default)
  ssh-host - Tunnel host (--ssh-host flag default)
  ssh-user - Tunnel user (--ssh-user flag default)
  topology - Topology YAML file (--topology flag default)

Examples:
  nodenet settings set node abc123
  nodenet settings set ssh-host rack1.example.com`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting := args[0]
		value := args[1]

		s, err := settings.Load()
		if err != nil {
			s = &settings.Settings{}
		}

		switch setting {
		case "node", "default_node":
			s.DefaultNode = value
			fmt.Printf("Default node set to: %s\n", value)
		case "redis", "redis_addr":
			s.RedisAddr = value
			fmt.Printf("Cache address set to: %s\n", value)
		case "ssh-host", "ssh_host":
			s.SSHHost = value
			fmt.Printf("Tunnel host set to: %s\n", value)
		case "ssh-user", "ssh_user":
			s.SSHUser = value
			fmt.Printf("Tunnel user set to: %s\n", value)
		case "topology", "topology_path":
			s.TopologyPath = value
			fmt.Printf("Topology file set to: %s\n", value)
		default:
			return fmt.Errorf("unknown setting: %s (valid: node, redis, ssh-host, ssh-user, topology)", setting)
		}

		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		s.Clear()
		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Println("Settings cleared")
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsClearCmd)
	rootCmd.AddCommand(settingsCmd)
}
