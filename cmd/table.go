package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/socest/pkg/export"
)

var tableFormat string

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the calibration table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closeLog, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = closeLog() }()
		return export.Write(cmd.OutOrStdout(), tableFormat, cfg.Estimator.Table())
	},
}

func init() {
	tableCmd.Flags().StringVarP(&tableFormat, "format", "f", "text", "output format: text, csv, json or yaml")
	rootCmd.AddCommand(tableCmd)
}
