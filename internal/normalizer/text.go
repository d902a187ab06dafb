package normalizer

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lead-digest/internal/model"
)

// titleScanLines is how many header lines are searched for a chat title label.
const titleScanLines = 5

var titleLabels = []string{"Чат:", "Chat:"}

// linePattern is one timestamp+sender prefix. Groups: date, time, sender, text.
type linePattern struct {
	re         *regexp.Regexp
	dateLayout string
}

// Tried in order; the first match wins.
var linePatterns = []linePattern{
	// [10.02.2026 14:30] Alexey: text
	{regexp.MustCompile(`^\[(\d{2}\.\d{2}\.\d{4})\s+(\d{2}:\d{2}(?::\d{2})?)\]\s+([^:]+):\s+(.*)$`), "02.01.2006"},
	// [2026-02-10 14:30:00] Alexey: text
	{regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2})\s+(\d{2}:\d{2}(?::\d{2})?)\]\s+([^:]+):\s+(.*)$`), "2006-01-02"},
	// 10.02.2026, 14:30 - Alexey: text
	{regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{4}),\s+(\d{2}:\d{2}(?::\d{2})?)\s+-\s+([^:]+):\s+(.*)$`), "02.01.2006"},
}

type lineKind int

const (
	lineIgnored lineKind = iota
	lineMatched
	lineContinuation
)

type lineResult struct {
	kind   lineKind
	date   time.Time
	sender string
	text   string
}

// classifyLine matches a trimmed line against linePatterns.
func classifyLine(line string, now time.Time) lineResult {
	if line == "" {
		return lineResult{kind: lineIgnored}
	}

	for _, p := range linePatterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return lineResult{
			kind:   lineMatched,
			date:   parseStamp(m[1], m[2], p.dateLayout, now),
			sender: strings.TrimSpace(m[3]),
			text:   strings.TrimSpace(m[4]),
		}
	}

	// bracketed headers and ==== separators are decoration
	if strings.HasPrefix(line, "[") || strings.HasPrefix(line, "=") {
		return lineResult{kind: lineIgnored}
	}
	return lineResult{kind: lineContinuation, text: line}
}

func parseStamp(date, clock, dateLayout string, now time.Time) time.Time {
	clockLayout := "15:04"
	if len(clock) == len("15:04:05") {
		clockLayout = "15:04:05"
	}
	t, err := time.ParseInLocation(dateLayout+" "+clockLayout, date+" "+clock, now.Location())
	if err != nil {
		return now
	}
	return t
}

// ParseText reads a loosely formatted text export, one message per prefixed
// line. Lines without a prefix continue the previous message.
func ParseText(r io.Reader, leadID string, now time.Time) ([]model.ChatMessage, error) {
	title := fmt.Sprintf("LEAD-%s chat (manual import)", leadID)
	titleFound := false

	var msgs []model.ChatMessage

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lineNo++

		if !titleFound && lineNo <= titleScanLines {
			if t, ok := parseTitle(line); ok {
				title = t
				titleFound = true
			}
		}

		res := classifyLine(line, now)
		switch res.kind {
		case lineMatched:
			msgs = append(msgs, model.ChatMessage{
				LeadID:      leadID,
				Sender:      res.sender,
				MessageText: res.text,
				MessageDate: res.date,
			})
		case lineContinuation:
			if len(msgs) == 0 {
				continue
			}
			last := &msgs[len(msgs)-1]
			last.MessageText += "\n" + res.text
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read text export: %w", err)
	}

	for i := range msgs {
		msgs[i].ChatTitle = title
	}
	return finish(msgs)
}

func parseTitle(line string) (string, bool) {
	for _, label := range titleLabels {
		if strings.HasPrefix(line, label) {
			return strings.TrimSpace(strings.TrimPrefix(line, label)), true
		}
	}
	return "", false
}
