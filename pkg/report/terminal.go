package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/licensegate/pkg/deps"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - headings
	colorGreen  = lipgloss.Color("35")  // Green - pass
	colorYellow = lipgloss.Color("220") // Amber - warn
	colorRed    = lipgloss.Color("167") // Soft red - error
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	stylePass   = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarn   = lipgloss.NewStyle().Foreground(colorYellow)
	styleError  = lipgloss.NewStyle().Foreground(colorRed)
	styleValue  = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorDim)
)

const (
	iconPass  = "✓"
	iconWarn  = "!"
	iconError = "✗"
)

// RenderOptions tunes terminal output.
type RenderOptions struct {
	Verbose bool // List passing dependencies too
	Quiet   bool // One summary line only
}

func verdictStyle(v deps.Verdict) lipgloss.Style {
	switch v {
	case deps.VerdictPass:
		return stylePass
	case deps.VerdictError:
		return styleError
	default:
		return styleWarn
	}
}

func verdictIcon(v deps.Verdict) string {
	switch v {
	case deps.VerdictPass:
		return iconPass
	case deps.VerdictError:
		return iconError
	default:
		return iconWarn
	}
}

// Terminal writes a human-readable report for one project.
func Terminal(w io.Writer, title string, items []deps.Dependency, opts RenderOptions) {
	summary := Summarize(items)

	if opts.Quiet {
		fmt.Fprintln(w, summaryLine(title, summary))
		return
	}

	fmt.Fprintln(w, styleTitle.Render(title))
	fmt.Fprintln(w, summaryLine("", summary))
	fmt.Fprintln(w)

	groups := byVerdict(items)
	order := []deps.Verdict{deps.VerdictError, deps.VerdictWarn}
	if opts.Verbose {
		order = append(order, deps.VerdictPass)
	}
	for _, verdict := range order {
		group := groups[verdict]
		if len(group) == 0 {
			continue
		}
		style := verdictStyle(verdict)
		fmt.Fprintln(w, style.Render(fmt.Sprintf("%s %s (%d)", verdictIcon(verdict), verdict, len(group))))
		fmt.Fprintln(w, verdictTable(group, style))
		fmt.Fprintln(w)
	}

	if !opts.Verbose && summary.Passes() > 0 {
		fmt.Fprintln(w, styleDim.Render(fmt.Sprintf("%d passing dependencies hidden (use --verbose to list them)", summary.Passes())))
	}
}

// verdictTable renders one verdict group as a bordered table.
func verdictTable(group []deps.Dependency, licenseStyle lipgloss.Style) string {
	rows := make([][]string, 0, len(group))
	for _, d := range group {
		rows = append(rows, []string{d.Name, d.Version, d.Ecosystem.String(), d.License(), d.Risk.String()})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("Package", "Version", "Ecosystem", "License", "Risk").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			if col == 3 {
				return licenseStyle.Padding(0, 1)
			}
			return styleValue.Padding(0, 1)
		})
	return t.Render()
}

// TerminalWorkspace writes one report per project, with a roll-up
// footer. Failed projects report their error instead of a table.
func TerminalWorkspace(w io.Writer, scans []deps.ProjectScan, opts RenderOptions) {
	var totalErrors, totalWarnings, failed int
	for i, scan := range scans {
		if scan.Err != nil {
			failed++
			fmt.Fprintf(w, "%s %s\n", styleError.Render(iconError), styleTitle.Render(scan.Name))
			fmt.Fprintf(w, "  %s\n", styleError.Render(scan.Err.Error()))
			if !opts.Quiet {
				fmt.Fprintln(w)
			}
			continue
		}
		summary := Summarize(scan.Dependencies)
		totalErrors += summary.Errors()
		totalWarnings += summary.Warnings()

		Terminal(w, scan.Name, scan.Dependencies, opts)
		if !opts.Quiet && i < len(scans)-1 {
			fmt.Fprintln(w, styleDim.Render(strings.Repeat("─", 40)))
			fmt.Fprintln(w)
		}
	}

	footer := fmt.Sprintf("%d projects scanned", len(scans))
	if failed > 0 {
		footer += fmt.Sprintf(", %d failed", failed)
	}
	footer += fmt.Sprintf(", %d errors, %d warnings", totalErrors, totalWarnings)
	fmt.Fprintln(w, styleDim.Render(footer))
}

func summaryLine(prefix string, summary Summary) string {
	parts := []string{
		styleValue.Render(fmt.Sprintf("%d dependencies", summary.Total)),
		stylePass.Render(fmt.Sprintf("%d pass", summary.Passes())),
		styleWarn.Render(fmt.Sprintf("%d warn", summary.Warnings())),
		styleError.Render(fmt.Sprintf("%d error", summary.Errors())),
	}
	line := strings.Join(parts, styleDim.Render(" · "))
	if prefix != "" {
		return styleTitle.Render(prefix) + " " + line
	}
	return line
}
