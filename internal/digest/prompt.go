package digest

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/lead-digest/internal/model"
)

const (
	maxSummaryChars = 500
	promptDate      = "02.01.2006"
)

const digestPrompt = `You are a business analyst. Write an ULTRA-SHORT daily digest from the summaries provided.
Answer in the language of the summaries.

RULES:
- Keep the whole text under roughly 500 characters
- Only what matters: agreements, risks, urgent items
- One sentence per client

FORMAT:
📅 Digest for %s

👥 Clients: %s

📝 Per client:
%s

⚠️ Urgent:
• [urgent items or risks, otherwise "None"]
`

func systemPrompt(day time.Time, leads []string) string {
	names := make([]string, len(leads))
	lines := make([]string, len(leads))
	for i, id := range leads {
		names[i] = "LEAD-" + id
		lines[i] = fmt.Sprintf("• LEAD-%s: [one sentence]", id)
	}
	return fmt.Sprintf(digestPrompt, day.Format(promptDate), strings.Join(names, ", "), strings.Join(lines, "\n"))
}

// leadBlock is LEAD-<id>: followed by each summary capped at maxSummaryChars.
func leadBlock(leadID string, rows []model.ClientSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "LEAD-%s:\n", leadID)
	for _, r := range rows {
		b.WriteString(capChars(r.SummaryText, maxSummaryChars))
		b.WriteString("\n")
	}
	return b.String()
}

func capChars(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
