package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssdistill.yaml config file",
	Long:  `Create a .cssdistill.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".cssdistill.yaml"); err == nil && !force {
			return fmt.Errorf(".cssdistill.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".cssdistill.yaml", []byte(defaultConfigFile), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .cssdistill.yaml")
		return nil
	},
}

const defaultConfigFile = `# cssdistill configuration
# Docs: https://github.com/cssdistill/cssdistill

# Shared settings
verbose: false

# Distillation settings
distill:
  patterns:
    - "**/*.css"
  out: tokens.css
  rewrite: false
  rewrite-out: distilled.css
  # manifest: tokens.json
  root-px: 16          # pixels per 1rem
  context-px: 16       # em fallback when no rule-level font-size is known
  viewport-width: 1920 # pixels per 100vw
  viewport-height: 1080
  percent-base: 16     # pixels per 100%
  ch-px: 8             # pixels per 1ch
  dark: flip           # flip | invert | tone
  stable-names: false
  # features: [colors, spacing, borders, radius, shadows, motion, typography]
  # prefix:
  #   - "color=c"
  #   - "spacing=gap"
  # unit:
  #   - "px:rem"

# Conversion-only settings
convert:
  # unit:
  #   - "px:rem"
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
