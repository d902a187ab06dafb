package digest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lead-digest/internal/document"
	"github.com/nguyentantai21042004/lead-digest/internal/llm"
	"github.com/nguyentantai21042004/lead-digest/internal/model"
	"github.com/nguyentantai21042004/lead-digest/internal/notify"
)

const (
	digestMaxTokens   = 600
	digestPlaceholder = "Digest not received."
	stampLayout       = "2006-01-02 15:04"
)

func (b *implBuilder) Build(ctx context.Context, day time.Time, send bool) (*Result, error) {
	date := day.Format(model.DateLayout)

	rows, err := b.summaries.ListByDate(ctx, day)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &Result{}, ErrNoSummaries
	}

	leads, grouped := groupByLead(rows)
	b.logger.Info(ctx, "Found summaries for %d leads on %s", len(leads), date)

	res := &Result{Leads: leads}
	blocks := make([]string, 0, len(leads))
	for _, leadID := range leads {
		path, err := b.writeCombined(leadID, grouped[leadID], date)
		if err != nil {
			return nil, err
		}
		res.CombinedFiles = append(res.CombinedFiles, path)
		blocks = append(blocks, leadBlock(leadID, grouped[leadID]))
		b.logger.Info(ctx, "LEAD-%s: %s", leadID, path)
	}

	res.Text = llm.Generate(ctx, b.llm, llm.Request{
		System:    systemPrompt(day, leads),
		User:      strings.Join(blocks, "\n\n"),
		MaxTokens: digestMaxTokens,
	}, digestPlaceholder)

	res.DigestPath = filepath.Join(document.DatedDir(b.outDir, date), fmt.Sprintf("daily_digest_%s.md", date))
	header := fmt.Sprintf("# Daily Digest: %s\n\n_Generated: %s_\n\n---\n\n", date, b.now().Format(stampLayout))
	if err := document.WriteMarkdown(res.DigestPath, header, res.Text); err != nil {
		return nil, err
	}
	b.logger.Info(ctx, "Digest: %s", res.DigestPath)

	if b.docx {
		docxPath := document.SwapExt(res.DigestPath, ".docx")
		if err := document.WriteDocx("Daily Digest "+date, res.Text, docxPath); err != nil {
			b.logger.Warn(ctx, "Docx export failed: %v", err)
		} else {
			res.DocxPath = docxPath
		}
	}

	if send {
		res.Sent = b.forward(ctx, res.Text)
	}
	return res, nil
}

// forward sends the digest and reports whether it was delivered.
func (b *implBuilder) forward(ctx context.Context, text string) bool {
	if b.notifier == nil {
		b.logger.Warn(ctx, "No notifier configured, digest not sent")
		return false
	}
	if err := b.notifier.Send(context.WithoutCancel(ctx), text); err != nil {
		if errors.Is(err, notify.ErrNotConfigured) {
			b.logger.Warn(ctx, "Telegram not configured (bot token or chat id missing)")
		} else {
			b.logger.Error(ctx, "Telegram delivery failed: %v", err)
		}
		return false
	}
	b.logger.Info(ctx, "Digest sent to Telegram")
	return true
}

// writeCombined writes LEAD-<id>_combined_<date>.md with one section per summary.
func (b *implBuilder) writeCombined(leadID string, rows []model.ClientSummary, date string) (string, error) {
	path := filepath.Join(document.DatedDir(b.outDir, date), fmt.Sprintf("LEAD-%s_combined_%s.md", leadID, date))
	header := fmt.Sprintf("# LEAD-%s overview for %s\n\n_Generated: %s_\n\n---\n\n", leadID, date, b.now().Format(stampLayout))

	var body strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&body, "## %s\n\n%s\n\n---\n\n", sectionLabel(r.SourceType), r.SummaryText)
	}

	if err := document.WriteMarkdown(path, header, body.String()); err != nil {
		return "", err
	}
	return path, nil
}

func sectionLabel(source model.SourceType) string {
	if source == model.SourceCall {
		return "📞 Call"
	}
	return "💬 Chat"
}

// groupByLead keeps the store's lead then source ordering.
func groupByLead(rows []model.ClientSummary) ([]string, map[string][]model.ClientSummary) {
	var leads []string
	grouped := make(map[string][]model.ClientSummary)
	for _, r := range rows {
		if _, ok := grouped[r.LeadID]; !ok {
			leads = append(leads, r.LeadID)
		}
		grouped[r.LeadID] = append(grouped[r.LeadID], r)
	}
	return leads, grouped
}
