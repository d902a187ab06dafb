package normalizer

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nguyentantai21042004/lead-digest/internal/model"
)

const jsonDateLayout = "2006-01-02 15:04:05"

type jsonExport struct {
	ChatTitle string        `json:"chat_title"`
	Messages  []jsonMessage `json:"messages"`
}

type jsonMessage struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"`
	Sender *string `json:"sender"`
	Text   *string `json:"text"`
}

// ParseJSON reads a structured export.
func ParseJSON(r io.Reader, leadID string, now time.Time) ([]model.ChatMessage, error) {
	var export jsonExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decode json export: %w", err)
	}

	title := export.ChatTitle
	if title == "" {
		title = fmt.Sprintf("LEAD-%s chat", leadID)
	}

	msgs := make([]model.ChatMessage, 0, len(export.Messages))
	for _, m := range export.Messages {
		date, err := time.ParseInLocation(jsonDateLayout, m.Date, now.Location())
		if err != nil {
			date = now
		}

		sender := unknownSender
		if m.Sender != nil && *m.Sender != "" {
			sender = *m.Sender
		}
		text := ""
		if m.Text != nil {
			text = *m.Text
		}

		msgs = append(msgs, model.ChatMessage{
			LeadID:      leadID,
			ChatTitle:   title,
			Sender:      sender,
			MessageText: text,
			MessageDate: date,
		})
	}

	return finish(msgs)
}
