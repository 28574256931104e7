package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kilianp07/socest/core/soc"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <voltage>",
	Short: "Estimate the state of charge for an open-circuit voltage",
	Args:  cobra.ExactArgs(1),
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
		return writeEstimate(cmd.OutOrStdout(), est, args[0])
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)
}

// writeEstimate parses raw, estimates and prints the result. The
// undefined case is printed and returned as an error.
func writeEstimate(w io.Writer, est *soc.Estimator, raw string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "V")), 64)
	if err != nil {
		return fmt.Errorf("invalid voltage %q", raw)
	}
	res, err := est.Evaluate(v)
	if errors.Is(err, soc.ErrUndefinedInterpolation) {
		low, high := est.Range()
		msg := fmt.Sprintf("Voltage out of valid range (%g V – %g V) for estimation.", low, high)
		_, _ = fmt.Fprintln(w, color.RedString(msg))
		return err
	}
	if err != nil {
		return err
	}
	line := fmt.Sprintf("Estimated State of Charge (SOC): %s%%", bold("%.1f", res.SOC))
	switch res.Outcome {
	case soc.OutcomeClampedHigh:
		line += color.YellowString(" (at or above %g V)", v)
	case soc.OutcomeClampedLow:
		line += color.YellowString(" (at or below %g V)", v)
	}
	_, err = fmt.Fprintln(w, line)
	return err
}

func bold(format string, a ...any) string {
	return color.New(color.Bold, color.FgGreen).Sprintf(format, a...)
}
