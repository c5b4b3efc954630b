// Package cssdistill extracts design tokens from stylesheets.
//
// cssdistill scans CSS text for recurring literal values (colors, spacing,
// border widths, radii, shadows, motion timing, typography), assigns each
// distinct literal a token name, and emits a custom-property document with a
// default scope and a derived dark scope. It can also rewrite the source text
// to reference the generated tokens and convert length units before analysis.
//
// # Distilling
//
// Run the full pipeline on in-memory CSS text:
//
//	cfg := cssdistill.DefaultConfig()
//	result, err := cssdistill.Distill(css, cfg)
//	if err != nil {
//		return err
//	}
//	fmt.Print(result.TokenDocument())
//
// # Unit conversion
//
// Convert length units without token analysis:
//
//	cfg := cssdistill.DefaultConfig()
//	cfg.Conversions = []cssdistill.ConversionPair{{From: cssdistill.UnitPx, To: cssdistill.UnitRem}}
//	converted := cssdistill.Convert(css, cfg)
//
// # CLI Tool
//
// cssdistill also provides a CLI tool. Install with:
//
//	go install github.com/cssdistill/cssdistill/cmd/cssdistill@latest
//
// Run cssdistill --help for command and flag documentation.
package cssdistill
