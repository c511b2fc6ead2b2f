package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/hersh/termtris/internal/config"
	"github.com/hersh/termtris/internal/game"
	"github.com/hersh/termtris/internal/spectate"
	"github.com/hersh/termtris/internal/terminal"
	"github.com/hersh/termtris/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownWait = 2 * time.Second

// outcome is how a game ended.
type outcome struct {
	Quit  bool
	Score uint32
}

func runPlay(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.Load(settings)
	if err != nil {
		return err
	}
	logs, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logs.Close()

	// Bind before the terminal goes raw so a busy port is reported plainly.
	var ln net.Listener
	if cfg.SpectateAddr != "" {
		ln, err = net.Listen("tcp", cfg.SpectateAddr)
		if err != nil {
			return fmt.Errorf("spectator listener: %w", err)
		}
	}

	sess, err := terminal.Open(os.Stdin)
	if err != nil {
		if ln != nil {
			ln.Close()
		}
		return err
	}
	sink := terminal.NewFrameSink(os.Stdout)

	res, playErr := play(cmd.Context(), cfg, sess.Keys(), sink, ln,
		game.WithRenderer(tui.FrameRenderer{ShowControls: true}))

	sink.Close()
	if err := sess.Restore(); err != nil {
		log.Printf("restore terminal: %v", err)
	}
	if playErr != nil {
		return playErr
	}
	printSummary(cmd.OutOrStdout(), res)
	return nil
}

// play runs one game reading keys from in and drawing to out. When ln is not
// nil the game is streamed to spectators on it until the game ends.
func play(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer, ln net.Listener, opts ...game.Option) (outcome, error) {
	opts = append([]game.Option{game.WithGenerator(cfg.Generator())}, opts...)

	var hub *spectate.Hub
	var srv *http.Server
	if ln != nil {
		hub = spectate.NewHub()
		srv = &http.Server{Handler: hub.Handler()}
		opts = append(opts, game.WithObserver(hub.Publish))
		log.Printf("spectator stream on ws://%s/ws", ln.Addr())
	}

	engine := game.New(cfg.Width, cfg.Height, out, in, opts...)
	engine.Reset()

	var res outcome
	if ctx == nil {
		ctx = context.Background()
	}
	g, ctx := errgroup.WithContext(ctx)

	if srv != nil {
		g.Go(func() error {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("spectator server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		quit, err := engine.Run()
		res = outcome{Quit: quit, Score: engine.Score()}
		if srv == nil {
			return err
		}

		hub.GameOver(res.Score, res.Quit)
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownWait)
		defer cancel()
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			log.Printf("spectator shutdown: %v", serr)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return res, err
	}
	return res, nil
}

func printSummary(w io.Writer, res outcome) {
	if res.Quit {
		color.New(color.FgYellow, color.Bold).Fprintln(w, "Quit")
	} else {
		color.New(color.FgRed, color.Bold).Fprintln(w, "GAME OVER")
	}
	fmt.Fprintf(w, "Final score: %s\n", humanize.Comma(int64(res.Score)))
}
