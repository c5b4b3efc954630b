package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cssdistill/cssdistill"
)

var convertCmd = &cobra.Command{
	Use:   "convert --unit from:to [patterns...]",
	Short: "Convert length units without token analysis",
	Long: `Apply an ordered list of unit conversion pairs to the matched
stylesheets and print or write the converted text. Relative units
resolve against the configured pixel bases; em tokens use each rule's
own font-size declaration when one exists.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringSlice("unit", nil, "Unit conversion pair, from:to, applied in order (repeatable)")
	f.Float64("root-px", 0, "Pixels per 1rem (default 16)")
	f.Float64("context-px", 0, "Em fallback when no rule-level font-size is known (default 16)")
	f.Float64("viewport-width", 0, "Pixels per 100vw (default 1920)")
	f.Float64("viewport-height", 0, "Pixels per 100vh (default 1080)")
	f.Float64("percent-base", 0, "Pixels per 100% (default 16)")
	f.Float64("ch-px", 0, "Pixels per 1ch (default 8)")
	f.String("out", "", "Write the converted text to this file instead of stdout")
}

func runConvert(_ *cobra.Command, args []string) error {
	cfg, err := buildDistillConfig("convert")
	if err != nil {
		return err
	}
	if len(cfg.Conversions) == 0 {
		return fmt.Errorf("at least one --unit from:to pair is required")
	}

	verbose := getBoolWithFallback("verbose", "verbose", false)
	log := newLogger(verbose)
	defer func() { _ = log.Sync() }()

	d, err := cssdistill.NewDistiller(cfg, log)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	files, err := expandGlobPatterns(resolvePatterns(args, "convert.patterns"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no stylesheets matched")
	}

	text, err := readSources(files, newSourceCache())
	if err != nil {
		return err
	}

	converted := d.Convert(text)
	if out := getStringWithFallback("out", "convert.out", ""); out != "" {
		if err := os.WriteFile(out, []byte(converted), 0644); err != nil {
			return fmt.Errorf("writing converted stylesheet: %w", err)
		}
		return nil
	}
	fmt.Print(converted)
	return nil
}
