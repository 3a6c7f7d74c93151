package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/ecoscout/pkg/pipeline"
)

// Options configures provenance graph rendering.
type Options struct {
	// Detailed adds contributions, activity and email to candidate labels.
	Detailed bool
	// Categories groups repositories under their taxonomy category.
	Categories bool
}

// ToDOT converts a pipeline result to a Graphviz DOT provenance graph:
// selected repositories point at the candidates they surfaced.
// Repositories that surfaced nobody are drawn dashed.
func ToDOT(res *pipeline.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph provenance {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	surfaced := make(map[string]int)
	for _, c := range res.Candidates {
		surfaced[c.SourceRepository]++
	}

	categories := map[string]bool{}
	for _, sel := range res.Selected {
		repo := sel.FullName()
		attrs := []string{fmt.Sprintf("label=%q", repoLabel(sel)), "shape=box"}
		if surfaced[repo] == 0 {
			attrs = append(attrs, "style=\"rounded,dashed\"", "fontcolor=grey40")
		} else {
			attrs = append(attrs, "style=\"rounded\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", "repo:"+repo, strings.Join(attrs, ", "))

		if opts.Categories && sel.Ref.Category != "" {
			cat := "category:" + sel.Ref.Category
			if !categories[cat] {
				categories[cat] = true
				fmt.Fprintf(&buf, "  %q [label=%q, shape=folder, style=filled, fillcolor=\"#f2f2f2\"];\n", cat, sel.Ref.Category)
			}
			fmt.Fprintf(&buf, "  %q -> %q [color=grey60];\n", cat, "repo:"+repo)
		}
	}

	buf.WriteString("\n")
	for _, c := range res.Candidates {
		label := c.Login
		if opts.Detailed {
			parts := []string{c.Login, fmt.Sprintf("%d contributions", c.Contributions), fmt.Sprintf("%d recent", c.RecentContributions)}
			if email := c.ContactInfo.EmailOrEmpty(); email != "" {
				parts = append(parts, email)
			}
			label = strings.Join(parts, "\n")
		}
		fill := "white"
		if c.ContactInfo.Email != nil {
			fill = "\"#e3f2e1\""
		}
		fmt.Fprintf(&buf, "  %q [label=%q, shape=box, style=\"rounded,filled\", fillcolor=%s];\n", "user:"+c.Login, label, fill)
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", "repo:"+c.SourceRepository, "user:"+c.Login, strings.Join(c.MatchedTechnologies, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func repoLabel(sel pipeline.Selection) string {
	if sel.Ref.Ecosystem == "" {
		return sel.FullName()
	}
	return sel.FullName() + "\n" + sel.Ref.Ecosystem
}
