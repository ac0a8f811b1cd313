// Nodenet - Node Network Configuration Tool
//
// A CLI front end for the row-based interface editor:
//   - Flattens a node's interfaces into (interface, link) rows
//   - Stages adds, deletes and bond creation before committing
//   - Dry-run by default (preview changes, require -x to execute)
//
// Context flags select the node; commands operate on its rows:
//
//	nodenet -n <system-id> <verb> [args] [-x]
//
// Examples:
//
//	nodenet -n abc123 show                                 # Row table
//	nodenet -n abc123 set-name eth0 uplink0 -x             # Rename
//	nodenet -n abc123 link eth0 --mode static --ip 10.0.0.5 -x
//	nodenet -n abc123 add-alias eth0 -x                    # Stack a link
//	nodenet -n abc123 add-vlan eth0 --vlan 5002 -x         # VLAN child
//	nodenet -n abc123 create-bond eth0 eth1 --name bond0 -x
//	nodenet -n abc123 delete eth0:1 -x                     # Unlink alias
package main

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/nodenet-io/nodenet/pkg/audit"
	"github.com/nodenet-io/nodenet/pkg/editor"
	"github.com/nodenet-io/nodenet/pkg/gateway"
	"github.com/nodenet-io/nodenet/pkg/settings"
	"github.com/nodenet-io/nodenet/pkg/topology"
	"github.com/nodenet-io/nodenet/pkg/util"
	"github.com/nodenet-io/nodenet/pkg/version"
)

var (
	// Context flags
	nodeID string // -n, --node

	// Topology source flags
	topologyPath string // --topology (YAML file)
	redisAddr    string // --redis
	sshHost      string // --ssh-host
	sshUser      string // --ssh-user
	sshPass      string // --ssh-pass

	// Option flags
	executeMode bool
	logLevel    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "nodenet",
	Short:             "Node Network Configuration Tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Nodenet edits a node's network interfaces as a flat row list:
one row per configured link, plus VLAN and bond children.

Write commands preview changes by default; use -x to execute.

  nodenet -n <system-id> <verb> [args] [-x]`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := util.SetLogLevel(logLevel); err != nil {
			return err
		}
		applySettings(cmd)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&nodeID, "node", "n", "", "node system id")
	pf.StringVar(&topologyPath, "topology", "", "topology YAML file")
	pf.StringVar(&redisAddr, "redis", "127.0.0.1:6379", "controller cache address")
	pf.StringVar(&sshHost, "ssh-host", "", "tunnel to the controller over SSH")
	pf.StringVar(&sshUser, "ssh-user", "admin", "SSH user for --ssh-host")
	pf.StringVar(&sshPass, "ssh-pass", "", "SSH password for --ssh-host")
	pf.BoolVarP(&executeMode, "execute", "x", false, "execute changes (default: preview)")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setNameCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(addAliasCmd)
	rootCmd.AddCommand(addVLANCmd)
	rootCmd.AddCommand(createBondCmd)
	rootCmd.AddCommand(deleteCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("nodenet", version.Info())
	},
}

// applySettings fills in flags the user did not pass from the persistent
// settings file. Flags always win.
func applySettings(cmd *cobra.Command) {
	s, err := settings.Load()
	if err != nil {
		util.Warnf("could not load settings: %v", err)
		return
	}
	flags := cmd.Flags()
	if nodeID == "" {
		nodeID = s.DefaultNode
	}
	if !flags.Changed("redis") {
		redisAddr = s.GetRedisAddr()
	}
	if sshHost == "" {
		sshHost = s.SSHHost
	}
	if !flags.Changed("ssh-user") {
		sshUser = s.GetSSHUser()
	}
	if topologyPath == "" {
		topologyPath = s.TopologyPath
	}
}

// session bundles everything a command needs: the topology store, the
// editor reconciled against the selected node, and any transports that
// must be torn down afterwards.
type session struct {
	store  *topology.Store
	editor *editor.Editor

	tunnel    *gateway.Tunnel
	topoCli   *topology.Client
	persister *gateway.RedisPersister
	auditLog  *audit.FileLogger
}

// openSession loads the topology (YAML file when --topology is given,
// the controller cache otherwise) and builds an editor for the selected
// node. Without -x the editor writes to a preview persister.
func openSession(ctx context.Context) (*session, error) {
	if nodeID == "" {
		return nil, fmt.Errorf("node required: use -n <system-id>")
	}

	s := &session{}

	addr := redisAddr
	if sshHost != "" && topologyPath == "" {
		tun, err := gateway.NewTunnel(sshHost, sshUser, sshPass, redisAddr)
		if err != nil {
			return nil, err
		}
		s.tunnel = tun
		addr = tun.LocalAddr()
	}

	var err error
	if topologyPath != "" {
		s.store, err = topology.Load(topologyPath)
	} else {
		s.topoCli = topology.NewClient(addr)
		if err = s.topoCli.Connect(ctx); err == nil {
			s.store, err = s.topoCli.FetchAll(ctx)
		}
	}
	if err != nil {
		s.Close()
		return nil, err
	}

	if s.store.NodeBySystemID(nodeID) == nil {
		s.Close()
		return nil, fmt.Errorf("node %q: %w", nodeID, util.ErrNotFound)
	}

	var persister gateway.Persister
	if executeMode {
		if topologyPath != "" {
			s.Close()
			return nil, fmt.Errorf("-x requires the controller cache, not a topology file")
		}
		s.persister = gateway.NewRedisPersister(addr)
		if err := s.persister.Connect(ctx); err != nil {
			s.Close()
			return nil, err
		}
		persister = s.persister

		// Executed changes leave an audit trail.
		s.auditLog, err = audit.NewFileLogger(audit.DefaultLogPath(), audit.RotationConfig{
			MaxSize:    10 << 20,
			MaxBackups: 5,
		})
		if err != nil {
			s.Close()
			return nil, err
		}
		persister = gateway.NewAuditedPersister(persister, s.auditLog, currentUser(), true)
	} else {
		persister = &previewPersister{}
	}

	s.editor = editor.NewEditor(nodeID, s.store, persister)
	s.editor.Reconcile(s.store.NodeInterfaces(nodeID))
	return s, nil
}

// Close flushes the editor and tears down transports.
func (s *session) Close() {
	if s.editor != nil {
		s.editor.Wait()
	}
	if s.persister != nil {
		s.persister.Close()
	}
	if s.topoCli != nil {
		s.topoCli.Close()
	}
	if s.tunnel != nil {
		s.tunnel.Close()
	}
	if s.auditLog != nil {
		s.auditLog.Close()
	}
}

// currentUser names the operator for the audit trail.
func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}

// rowByName resolves a row by its displayed name (eth0, eth0:1, bond0).
func (s *session) rowByName(name string) (*editor.InterfaceRow, error) {
	for _, row := range s.editor.Rows() {
		if row.Name == name {
			return row, nil
		}
	}
	return nil, fmt.Errorf("row %q: %w", name, util.ErrNotFound)
}

// previewNote reminds the operator that nothing was written.
func previewNote() {
	if !executeMode {
		fmt.Println("\nPreview only. Re-run with -x to execute.")
	}
}
