package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"segcounter-go/display"
	"segcounter-go/services/config"
)

func newScriptCmd(cfg *config.Config, fl *cliFlags) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "script [words...]",
		Short: "Replay button presses and print the final display",
		Long: `Replay a press script against the simulated board.

Words: + inc increment, - dec decrement, 0 r reset, tick (idle).
Join words with commas to press buttons together, e.g. "inc,dec".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolve(cmd, cfg, fl)
			if err != nil {
				return err
			}
			c := r.cfg

			src := strings.Join(args, " ")
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				src = string(b) + "\n" + src
			}
			steps, err := parseScript(src)
			if err != nil {
				return err
			}

			// Frames are only printed per tick when asked for; the final
			// state is always shown.
			out := cmd.OutOrStdout()
			s, err := newSim(cmd.Context(), c, out, r.log)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.play(steps); err != nil {
				return err
			}
			v, err := s.current()
			if err != nil {
				return err
			}
			if c.Render == config.RenderNone {
				fmt.Fprint(out, display.ASCII(s.disp.Segments()))
			}
			fmt.Fprintln(out, v.Text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read words from file (before any arguments)")
	return cmd
}
