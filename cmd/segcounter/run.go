package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"segcounter-go/services/config"
	"segcounter-go/services/controller"
)

// keyActions maps interactive keys to button actions.
var keyActions = map[byte]string{
	'+': controller.ActionIncrement, '=': controller.ActionIncrement,
	'-': controller.ActionDecrement, '_': controller.ActionDecrement,
	'0': controller.ActionReset, 'r': controller.ActionReset,
}

func newRunCmd(cfg *config.Config, fl *cliFlags) *cobra.Command {
	var hold int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the counter interactively (+ - 0 keys, v shows the value, q quits)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolve(cmd, cfg, fl)
			if err != nil {
				return err
			}
			c, log := r.cfg, r.log

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case <-sigCh:
					log.Info().Msg("received signal, stopping...")
					cancel()
				case <-ctx.Done():
				}
			}()

			s, err := newSim(ctx, c, cmd.OutOrStdout(), log)
			if err != nil {
				return err
			}
			defer s.Close()

			if r.path != "" {
				reload := func(p string) (config.Config, error) {
					nc := c
					if err := config.Load(&nc, p, r.changed); err != nil {
						return nc, err
					}
					nc.FillDisplays()
					return nc, nil
				}
				go func() {
					if err := config.Watch(ctx, r.path, reload, log, config.PublishOnChange(ctx, s.conn)); err != nil {
						log.Warn().Err(err).Str("path", r.path).Msg("config watch disabled")
					}
				}()
			}

			read, restore, err := openKeys()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			defer restore()

			fmt.Fprintln(cmd.ErrOrStderr(), "keys: + increment, - decrement, 0 reset, v value, q quit")
			go pumpKeys(ctx, cancel, read, s, time.Duration(hold)*c.PollInterval)

			return s.ctl.Run(ctx)
		},
	}
	cmd.Flags().IntVar(&hold, "hold", 3, "poll intervals a key press holds its button down")
	return cmd
}

// pumpKeys turns key presses into timed button presses until q, EOF or ctx.
func pumpKeys(ctx context.Context, cancel context.CancelFunc, read func([]byte) (int, error), s *sim, hold time.Duration) {
	buf := make([]byte, 1)
	for ctx.Err() == nil {
		n, err := read(buf)
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				s.log.Warn().Err(err).Msg("terminal read failed")
			}
			cancel()
			return
		}
		if n == 0 {
			continue
		}
		if buf[0] == 'q' || buf[0] == 'Q' || buf[0] == 3 {
			cancel()
			return
		}
		if buf[0] == 'v' {
			go func() {
				v, err := s.query(ctx)
				if err != nil {
					s.log.Warn().Err(err).Msg("value query failed")
					return
				}
				s.log.Info().Str("value", v.Text).Int("raw", v.Value).Msg("counter")
			}()
			continue
		}
		a, ok := keyActions[buf[0]]
		if !ok {
			continue
		}
		s.press(a)
		time.AfterFunc(hold, func() { s.release(a) })
	}
}
