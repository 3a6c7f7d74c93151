package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecoscout/pkg/candidate"
	ecoio "github.com/matzehuels/ecoscout/pkg/io"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <result.json|result.yaml>",
		Short: "Page through a saved scout result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ecoio.Import(args[0])
			if err != nil {
				return err
			}
			if len(res.Candidates) == 0 {
				printInfo("No candidates in %s", args[0])
				return nil
			}
			_, err = tea.NewProgram(NewCandidateListModel(res.Candidates), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailKeyStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	detailBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// CandidateListModel - Interactive candidate browser
// =============================================================================

// CandidateListModel is the bubbletea model of the browse command: a
// scrolling candidate table with a detail pane for the current row.
type CandidateListModel struct {
	All       []candidate.Enriched
	Visible   []candidate.Enriched
	Cursor    int
	Offset    int
	Height    int
	EmailOnly bool
}

// NewCandidateListModel creates a model over cands.
func NewCandidateListModel(cands []candidate.Enriched) CandidateListModel {
	return CandidateListModel{All: cands, Visible: cands, Height: 12}
}

func (m CandidateListModel) Init() tea.Cmd {
	return nil
}

func (m CandidateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "e":
			m.EmailOnly = !m.EmailOnly
			m.Visible = m.All
			if m.EmailOnly {
				m.Visible = withEmail(m.All)
			}
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		// Leave room for the header, the detail pane and the footer.
		m.Height = max(msg.Height-18, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped, and scrolls to keep it visible.
func (m *CandidateListModel) move(delta int) {
	m.Cursor = min(max(m.Cursor+delta, 0), max(len(m.Visible)-1, 0))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// Current returns the candidate under the cursor.
func (m CandidateListModel) Current() (candidate.Enriched, bool) {
	if m.Cursor < len(m.Visible) {
		return m.Visible[m.Cursor], true
	}
	return candidate.Enriched{}, false
}

func (m CandidateListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Candidates"))
	filter := "all"
	if m.EmailOnly {
		filter = "with email"
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  (%s)", filter)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  e toggle email filter  q quit"))
	b.WriteString("\n\n")

	if len(m.Visible) == 0 {
		b.WriteString(listDimStyle.Render("  nothing to show"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Visible))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := m.Visible[i]
		marker := "  "
		if i == m.Cursor {
			marker = "▸ "
		}
		rows = append(rows, []string{marker, c.Login, c.SourceRepository, strconv.Itoa(c.RecentContributions)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "User", "Repository", "Recent").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if c, ok := m.Current(); ok {
		b.WriteString(detailBoxStyle.Render(candidateDetail(c)))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Visible))))
	return b.String()
}

// candidateDetail lists the non-empty contact fields of c.
func candidateDetail(c candidate.Enriched) string {
	info := c.ContactInfo
	fields := [][2]string{
		{"User", c.Login},
		{"Name", info.Name},
		{"Email", info.EmailOrEmpty()},
		{"Company", info.Company},
		{"Location", info.Location},
		{"Blog", info.Blog},
		{"Twitter", info.TwitterUsername},
		{"Profile", info.HTMLURL},
		{"Repository", c.SourceRepository},
		{"Contrib", strconv.Itoa(c.Contributions)},
		{"Recent", strconv.Itoa(c.RecentContributions)},
		{"Languages", strings.Join(c.MatchedTechnologies, ", ")},
	}
	var lines []string
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		lines = append(lines, detailKeyStyle.Render(f[0])+" "+StyleValue.Render(f[1]))
	}
	return strings.Join(lines, "\n")
}

func withEmail(cands []candidate.Enriched) []candidate.Enriched {
	var out []candidate.Enriched
	for _, c := range cands {
		if c.ContactInfo.Email != nil {
			out = append(out, c)
		}
	}
	return out
}
