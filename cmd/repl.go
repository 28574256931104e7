package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/kilianp07/socest/core/soc"
	"github.com/kilianp07/socest/pkg/export"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Estimate interactively, one voltage per line",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closeLog, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = closeLog() }()
		est, err := cfg.Estimator.NewEstimator()
		if err != nil {
			return err
		}

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "voltage> ",
			InterruptPrompt: "^C",
			EOFPrompt:       "quit",
			AutoComplete: readline.NewPrefixCompleter(
				readline.PcItem("table"),
				readline.PcItem("help"),
				readline.PcItem("quit"),
			),
		})
		if err != nil {
			return err
		}
		defer func() { _ = rl.Close() }()

		out := rl.Stdout()
		_, _ = fmt.Fprintf(out, "%s, type a voltage or \"help\"\n", est.Table().Model())
		for {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				if line == "" {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if replLine(out, est, line) {
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// replLine handles one input line and reports whether the session ends.
func replLine(w io.Writer, est *soc.Estimator, line string) bool {
	switch cmd := strings.TrimSpace(line); cmd {
	case "":
		return false
	case "q", "quit", "exit":
		return true
	case "help":
		_, _ = fmt.Fprintln(w, "commands: <voltage>, table, quit")
	case "table":
		if err := export.WriteText(w, est.Table()); err != nil {
			_, _ = fmt.Fprintln(w, err)
		}
	default:
		if err := writeEstimate(w, est, cmd); err != nil && !errors.Is(err, soc.ErrUndefinedInterpolation) {
			_, _ = fmt.Fprintln(w, err)
		}
	}
	return false
}
