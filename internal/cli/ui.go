package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/ecoscout/pkg/candidate"
	"github.com/matzehuels/ecoscout/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	noValue     = "—"
)

// statusOut receives status lines. It is stderr so that structured output
// on stdout can be piped.
var statusOut io.Writer = os.Stderr

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Result Output
// =============================================================================

// candidateTable renders candidates as a rounded lipgloss table.
func candidateTable(cands []candidate.Enriched) string {
	rows := make([][]string, len(cands))
	for i, c := range cands {
		rows[i] = []string{
			c.Login,
			orDash(c.ContactInfo.EmailOrEmpty()),
			c.SourceRepository,
			strconv.Itoa(c.Contributions),
			strconv.Itoa(c.RecentContributions),
			orDash(strings.Join(c.MatchedTechnologies, ", ")),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("User", "Email", "Repository", "Contrib", "Recent", "Technologies").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case 0:
				return base.Foreground(colorCyan)
			case 1:
				if row < len(cands) && cands[row].ContactInfo.Email != nil {
					return base.Foreground(colorGreen)
				}
				return base.Foreground(colorDim)
			case 3, 4:
				return base.Align(lipgloss.Right)
			}
			return base.Foreground(colorGray)
		}).
		Render()
}

// summaryLine condenses a result into one status line.
func summaryLine(res *pipeline.Result) string {
	withEmail := 0
	for _, c := range res.Candidates {
		if c.ContactInfo.Email != nil {
			withEmail++
		}
	}
	parts := []string{
		fmt.Sprintf("%d candidates", len(res.Candidates)),
		fmt.Sprintf("%d with email", withEmail),
		fmt.Sprintf("%d repositories selected", len(res.Selected)),
		fmt.Sprintf("processedRepos=%d", res.ProcessedRepos),
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func orDash(s string) string {
	if s == "" {
		return noValue
	}
	return s
}
