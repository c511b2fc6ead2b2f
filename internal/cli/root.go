package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hersh/termtris/internal/config"
	"github.com/spf13/cobra"
)

var settings = config.New()

var rootCmd = &cobra.Command{
	Use:   "termtris",
	Short: "Falling blocks in your terminal",
	Long: `termtris is a falling-block puzzle game drawn in the terminal.

Keys: a/d move, s soft drop, space hard drop, w/q rotate, x quit.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	flags := rootCmd.Flags()
	flags.Int("width", config.DefaultWidth, "board width in cells")
	flags.Int("height", config.DefaultHeight, "board height in cells")
	flags.Int64("seed", 0, "random seed, 0 picks one from the clock")
	flags.String("randomizer", config.RandomizerDice, "piece randomizer: dice or bag")
	flags.String("spectate", "", "serve a spectator stream on this address, e.g. :8080")
	rootCmd.PersistentFlags().String("log-file", "", "append diagnostics to this file")

	settings.BindPFlag(config.KeyWidth, flags.Lookup("width"))
	settings.BindPFlag(config.KeyHeight, flags.Lookup("height"))
	settings.BindPFlag(config.KeySeed, flags.Lookup("seed"))
	settings.BindPFlag(config.KeyRandomizer, flags.Lookup("randomizer"))
	settings.BindPFlag(config.KeySpectateAddr, flags.Lookup("spectate"))
	settings.BindPFlag(config.KeyLogFile, rootCmd.PersistentFlags().Lookup("log-file"))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setupLogging points the standard logger at path, or discards output when
// path is empty. The terminal is in raw mode while the game runs, so nothing
// may be logged to it.
func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}
