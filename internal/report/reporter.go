package report

import (
	"fmt"
	"io"
	"os"

	"github.com/cssdistill/cssdistill"
)

// Reporter formats the post-run summary.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{w: w, useColors: useColors}
}

// ShouldUseColors determines if colors should be enabled.
func ShouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintSummary outputs scan counters, per-category token counts, the role
// table, and any warnings.
func (r *Reporter) PrintSummary(filesScanned int, res *cssdistill.Result) {
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "cssdistill summary", r.useColors))
	fmt.Fprintln(r.w, "--------------------")
	fmt.Fprintf(r.w, "Files scanned: %d\n", filesScanned)
	fmt.Fprintf(r.w, "Rules:         %d\n", res.Stats.RuleCount)
	fmt.Fprintf(r.w, "Declarations:  %d\n", res.Stats.DeclarationCount)
	fmt.Fprintf(r.w, "Tokens:        %s\n",
		RenderStyle(StyleGreen, fmt.Sprintf("%d", res.TokenCount()), r.useColors))

	r.printCategories(res)
	r.printRoles(res)
	r.printWarnings(res.Warnings)
}

func (r *Reporter) printCategories(res *cssdistill.Result) {
	printed := false
	for _, cat := range cssdistill.AllCategories() {
		toks := res.Tokens[cat]
		if len(toks) == 0 {
			continue
		}
		if !printed {
			fmt.Fprintln(r.w, "")
			fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Tokens by category", r.useColors))
			printed = true
		}
		fmt.Fprintf(r.w, "* %s: %d\n", cat, len(toks))
	}
}

func (r *Reporter) printRoles(res *cssdistill.Result) {
	if len(res.Roles) == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Color roles", r.useColors))
	for _, role := range cssdistill.AllRoles() {
		lit, ok := res.Roles[role]
		if !ok {
			continue
		}
		fmt.Fprintf(r.w, "* %-10s %s\n", role, RenderStyle(StyleGray, lit, r.useColors))
	}
}

func (r *Reporter) printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	for _, w := range warnings {
		fmt.Fprintf(r.w, "* %s\n", w)
	}
}

// UseColors returns whether colors are enabled.
func (r *Reporter) UseColors() bool {
	return r.useColors
}
