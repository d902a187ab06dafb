package summarizer

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/lead-digest/internal/model"
)

const (
	maxChatChars    = 50000
	truncatedMarker = "\n...[messages truncated]"
	messageLayout   = "2006-01-02 15:04"
)

// renderChat formats messages as the chat prompt input. Oversized histories
// keep their first maxChatChars characters.
func renderChat(msgs []model.ChatMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Chat: %s\n\n", msgs[0].ChatTitle)
	for _, m := range msgs {
		fmt.Fprintf(&b, "[%s] %s: %s\n", m.MessageDate.Format(messageLayout), m.Sender, m.MessageText)
	}
	return truncate(b.String(), maxChatChars)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + truncatedMarker
}

// callExtra picks the file-name token for a call summary: the time part of
// LEAD-101_2026-02-20_14-30.webm, or the transcript id.
func callExtra(rec model.ProcessedFile) string {
	parts := strings.Split(filepath.Base(rec.Filename), "_")
	if len(parts) > 2 {
		token := strings.TrimSuffix(parts[2], filepath.Ext(parts[2]))
		if token != "" {
			return token
		}
	}
	return fmt.Sprint(rec.ID)
}

// summaryName is LEAD-<id>_<source>[_<extra>]_<date>.md.
func summaryName(leadID string, source model.SourceType, extra, date string) string {
	if extra != "" {
		extra = "_" + extra
	}
	return fmt.Sprintf("LEAD-%s_%s%s_%s.md", leadID, source, extra, date)
}

func summaryHeader(leadID string, source model.SourceType, date, generated, modelName string) string {
	return fmt.Sprintf("# Summary: LEAD-%s | %s | %s\n\n_Generated: %s | Model: %s_\n\n---\n\n",
		leadID, strings.ToUpper(string(source)), date, generated, modelName)
}
