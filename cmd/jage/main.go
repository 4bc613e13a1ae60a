// jage runs a game from a data directory: a window scaled to a 16:9 render
// target, a player sprite steered by keyboard or gamepad, and an enemy.
//
// Usage:
//
//	jage [game-dir]
//
// The directory (default "game") holds config.yaml, player.yaml, enemy.yaml
// and receives the log file, the statistics database and any profiles.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	// Import backends to register them
	_ "github.com/vovakirdan/jage/internal/platform/desktop"
	_ "github.com/vovakirdan/jage/internal/platform/tui"
)

const version = "0.5.2"

// defaultDir is used when no game directory is given.
const defaultDir = "game"

var exitCode int

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

var rootCmd = &cobra.Command{
	Use:   "jage [game-dir]",
	Short: "JAGE - run a game from its data directory",
	Long: `JAGE opens a window (or a terminal, or an SSH server) and runs the game
found in the data directory. The window keeps a 16:9 picture and letterboxes
the rest.

Controls:
  arrows/WASD, left stick  move
  Alt+Enter                toggle fullscreen
  Esc                      quit

Examples:
  jage
  jage ~/games/spacefight`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		dir := defaultDir
		if len(args) > 0 {
			dir = args[0]
		}
		exitCode = run(cmd.Context(), dir, cmd.ErrOrStderr())
	},
}
