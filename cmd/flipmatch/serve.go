package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flipmatch/internal/core"
	"github.com/vovakirdan/flipmatch/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the FlipMatch SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. Achievements are kept per SSH user
name; all users share the same scoreboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.flipmatch/host_key

Examples:
  flipmatch serve                           # Listen on :23235 with auto-generated key
  flipmatch serve --ssh :2222               # Listen on port 2222
  flipmatch serve --host-key ./my_host_key  # Use specific host key
  flipmatch serve --difficulty hard         # Every session plays on hard

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	s, err := loadSettings(cmd)
	if err != nil {
		fail("%v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      s.DBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        s.Game,
		Theme:       s.Theme,
		TickRate:    core.DefaultConfig().TickRate,
		Logger:      newLogger(s).WithPrefix("flipmatch-ssh"),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	port := "23235"
	if _, p, splitErr := net.SplitHostPort(cfg.Address); splitErr == nil {
		port = p
	}

	fmt.Printf("Starting FlipMatch SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
