package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cssdistill/cssdistill"
	"github.com/cssdistill/cssdistill/internal/report"
)

var distillCmd = &cobra.Command{
	Use:     "distill [patterns...]",
	Aliases: []string{"run"},
	Short:   "Extract design tokens from CSS files",
	Long: `Scan the matched stylesheets for recurring literal values, assign
semantic color roles, and write a custom-property token document.
With --rewrite, also write the source with literals replaced by
var() references.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runDistill,
}

func init() {
	f := distillCmd.Flags()
	f.Float64("root-px", 0, "Pixels per 1rem (default 16)")
	f.Float64("context-px", 0, "Em fallback when no rule-level font-size is known (default 16)")
	f.Float64("viewport-width", 0, "Pixels per 100vw (default 1920)")
	f.Float64("viewport-height", 0, "Pixels per 100vh (default 1080)")
	f.Float64("percent-base", 0, "Pixels per 100% (default 16)")
	f.Float64("ch-px", 0, "Pixels per 1ch (default 8)")
	f.String("dark", "", "Dark variant algorithm: flip|invert|tone (default flip)")
	f.StringSlice("features", nil, "Analysis features to enable (default all)")
	f.Bool("stable-names", false, "Hash-derived token names instead of sequential")
	f.StringSlice("prefix", nil, "Token name prefix override, category=name (repeatable)")
	f.StringSlice("unit", nil, "Unit conversion pair, from:to, applied in order (repeatable)")
	f.String("out", "", "Token document output file (default tokens.css)")
	f.Bool("rewrite", false, "Also write the token-substituted stylesheet")
	f.String("rewrite-out", "", "Rewritten stylesheet output file (default distilled.css)")
	f.String("manifest", "", "Write a JSON manifest to this file")
	f.Bool("stdout", false, "Print output instead of writing files")
	f.Bool("watch", false, "Re-run whenever a matched file changes")
}

func runDistill(_ *cobra.Command, args []string) error {
	cfg, err := buildDistillConfig("distill")
	if err != nil {
		return err
	}

	verbose := getBoolWithFallback("verbose", "verbose", false)
	log := newLogger(verbose)
	defer func() { _ = log.Sync() }()

	d, err := cssdistill.NewDistiller(cfg, log)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	patterns := resolvePatterns(args, "distill.patterns")
	cache := newSourceCache()

	run := func() error {
		return distillOnce(d, patterns, cache)
	}

	if getBoolWithFallback("watch", "distill.watch", false) {
		if err := run(); err != nil {
			return err
		}
		return watchAndRun(patterns, run, log)
	}
	return run()
}

// distillOnce performs one scan-and-write pass over the matched files.
func distillOnce(d *cssdistill.Distiller, patterns []string, cache *sourceCache) error {
	files, err := expandGlobPatterns(patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no stylesheets matched %v", patterns)
	}

	text, err := readSources(files, cache)
	if err != nil {
		return err
	}

	result := d.Distill(text)

	rewrite := getBoolWithFallback("rewrite", "distill.rewrite", false)
	toStdout := getBoolWithFallback("stdout", "distill.stdout", false)

	if toStdout {
		if rewrite {
			fmt.Print(result.Rewrite())
		} else {
			fmt.Print(result.TokenDocument())
		}
	} else {
		out := getStringWithFallback("out", "distill.out", "tokens.css")
		if err := os.WriteFile(out, []byte(result.TokenDocument()), 0644); err != nil {
			return fmt.Errorf("writing token document: %w", err)
		}
		if rewrite {
			rewriteOut := getStringWithFallback("rewrite-out", "distill.rewrite-out", "distilled.css")
			if err := os.WriteFile(rewriteOut, []byte(result.Rewrite()), 0644); err != nil {
				return fmt.Errorf("writing rewritten stylesheet: %w", err)
			}
		}
	}

	if manifestPath := getStringWithFallback("manifest", "distill.manifest", ""); manifestPath != "" {
		f, err := os.Create(manifestPath)
		if err != nil {
			return fmt.Errorf("creating manifest: %w", err)
		}
		defer f.Close()
		if err := result.WriteManifest(f); err != nil {
			return fmt.Errorf("writing manifest: %w", err)
		}
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet && !toStdout {
		useColors := report.ShouldUseColors(getBoolWithFallback("color", "color", false))
		report.NewReporter(os.Stdout, useColors).PrintSummary(len(files), result)
	}
	return nil
}
