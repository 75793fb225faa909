package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"segcounter-go/services/config"
	"segcounter-go/x/logx"
)

const longHelp = `Two-digit seven-segment counter simulator.

Buttons (increment, decrement, reset) are virtual GPIO inputs and each digit
is seven virtual GPIO outputs, wired exactly as on the board. Configure via
file (~/.segcounter/config.toml), SEGCOUNTER_* environment or flags.`

var exampleUsage = strings.TrimSpace(`
  segcounter run
  segcounter run --digits 3 --poll 5ms
  segcounter script "+ + - 0"
  segcounter script --file presses.txt --render none
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cliFlags holds values that do not live in config.Config.
type cliFlags struct {
	cfgPath string
	board   string
	logJSON bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, err := config.ForBoard("sim")
	if err != nil {
		panic(err)
	}
	var fl cliFlags

	root := &cobra.Command{
		Use:          "segcounter",
		Short:        "Seven-segment counter simulator",
		Long:         longHelp,
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&fl.cfgPath, "config", "", "config file (default ~/.segcounter/config.toml)")
	pf.StringVar(&fl.board, "board", cfg.Board, "board wiring: "+strings.Join(config.Boards(), ", "))
	pf.IntVar(&cfg.Digits, "digits", cfg.Digits, "number of digits")
	pf.DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "button polling interval")
	pf.BoolVar(&cfg.LampTest, "lamp-test", cfg.LampTest, "start with every segment lit (88)")
	pf.StringVar(&cfg.Render, "render", cfg.Render, "frame output: ascii, pixels or none")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	pf.BoolVar(&fl.logJSON, "log-json", false, "log JSON lines instead of console text")

	root.AddCommand(newRunCmd(&cfg, &fl), newScriptCmd(&cfg, &fl), newBoardsCmd())
	return root
}

type resolved struct {
	cfg     config.Config
	path    string // config file in use, "" if none
	changed map[string]bool
	log     zerolog.Logger
}

// resolve layers board, file and environment under the explicitly set
// flags, then returns the validated config and a logger for it.
func resolve(cmd *cobra.Command, cfg *config.Config, fl *cliFlags) (resolved, error) {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if changed["board"] {
		if err := cfg.SwitchBoard(fl.board, changed); err != nil {
			return resolved{}, err
		}
	}

	path := fl.cfgPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	out := *cfg
	if err := config.Load(&out, path, changed); err != nil {
		return resolved{}, fmt.Errorf("load config: %w", err)
	}
	out.FillDisplays()
	if err := out.Validate(); err != nil {
		return resolved{}, err
	}

	log := logx.New(cmd.ErrOrStderr(), !fl.logJSON, logx.ParseLevel(out.LogLevel))
	log.Debug().Interface("config", out).Msg("configuration")
	if !config.FileExists(path) {
		path = ""
	}
	return resolved{cfg: out, path: path, changed: changed, log: log}, nil
}

func newBoardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List built-in board wirings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, name := range config.Boards() {
				c, err := config.ForBoard(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%-6s digits=%d poll=%s buttons=%d/%d/%d\n", name, c.Digits, c.PollInterval.Round(time.Millisecond),
					c.Buttons.Increment.Pin, c.Buttons.Decrement.Pin, c.Buttons.Reset.Pin)
			}
			return nil
		},
	}
}
