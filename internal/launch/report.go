package launch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderReport renders the per-request summary table shown at the end of a
// launch or arrange run.
func RenderReport(results []Result) string {
	nameWidth := len("NAME")
	for _, r := range results {
		if len(r.Name) > nameWidth {
			nameWidth = len(r.Name)
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s  %-10s  %s", nameWidth, "NAME", "HANDLE", "STATUS")))
	b.WriteString("\n")

	for _, r := range results {
		handle := "-"
		if r.Identified {
			handle = strconv.FormatInt(int64(r.Handle), 10)
		}

		var status string
		switch {
		case r.OK():
			status = okStyle.Render("ok")
		case r.Reason != "":
			status = failStyle.Render("failed: " + r.Reason)
		default:
			status = failStyle.Render("failed")
		}

		b.WriteString(fmt.Sprintf("%-*s  %-10s  %s\n", nameWidth, r.Name, handle, status))
		if len(r.Candidates) > 0 {
			cands := make([]string, len(r.Candidates))
			for i, c := range r.Candidates {
				cands[i] = strconv.FormatInt(int64(c), 10)
			}
			b.WriteString(fmt.Sprintf("%-*s  unresolved candidates: %s\n", nameWidth, "", strings.Join(cands, ", ")))
		}
	}
	return b.String()
}
