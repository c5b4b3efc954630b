package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cssdistill",
	Short: "Design token distiller for CSS stylesheets",
	Long: `Scan stylesheets for recurring literal values and turn them into
named design tokens: colors with semantic roles, spacing, borders,
radii, shadows, motion timing, and typography.`,
	// Default behavior: run distill when no subcommand is given.
	// We must call loadConfig here because PreRunE of distillCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runDistill(distillCmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress the summary report")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".cssdistill.yaml", "Config file path")

	rootCmd.AddCommand(distillCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
