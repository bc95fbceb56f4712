package report

// markdown.go — human-readable summary of a report.

import (
	"fmt"
	"strings"
)

// Markdown renders the report as a compact markdown document: a headline
// table of run facts, one section per rule, and the skipped rules.
func Markdown(rep *Report) string {
	var sb strings.Builder

	sb.WriteString("# Model check report\n\n")
	fmt.Fprintf(&sb, "- run: `%s`\n", rep.Run.RunID)
	fmt.Fprintf(&sb, "- started: %s (%s)\n", rep.Run.StartedAt, rep.Run.Duration)
	fmt.Fprintf(&sb, "- objects: %d\n", rep.Run.Objects)
	fmt.Fprintf(&sb, "- rules: %d evaluated, %d skipped\n", rep.Run.Rules, len(rep.Skipped))
	fmt.Fprintf(&sb, "- results: %d passed, %d failed\n\n", rep.Run.Passed, rep.Run.Failed)

	for _, rr := range rep.Rules {
		fmt.Fprintf(&sb, "## Rule %s — %s\n\n", rr.ID, rr.Message)
		fmt.Fprintf(&sb, "%d candidate(s): %d passed, %d failed (%s on failure)\n",
			rr.Candidates, len(rr.Passed), len(rr.Failed), rr.Severity)
		if len(rr.Failed) > 0 {
			sb.WriteString("\nFailed objects:\n")
			for _, id := range rr.Failed {
				fmt.Fprintf(&sb, "- `%s`\n", id)
			}
		}
		if len(rr.Issues) > 0 {
			sb.WriteString("\nEvaluation issues:\n")
			for _, issue := range rr.Issues {
				fmt.Fprintf(&sb, "- %s\n", issue)
			}
		}
		sb.WriteString("\n")
	}

	if len(rep.Skipped) > 0 {
		sb.WriteString("## Skipped rules\n\n")
		for _, sk := range rep.Skipped {
			fmt.Fprintf(&sb, "- Rule %s: %s\n", sk.ID, sk.Reason)
		}
	}

	return sb.String()
}
