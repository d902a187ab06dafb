package summarizer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lead-digest/internal/document"
	"github.com/nguyentantai21042004/lead-digest/internal/llm"
	"github.com/nguyentantai21042004/lead-digest/internal/model"
)

const (
	summaryMaxTokens   = 2000
	summaryPlaceholder = "Summary not received."
)

func (s *implSummarizer) SummarizeCalls(ctx context.Context, leadID string, day time.Time) ([]Result, error) {
	records, err := s.transcripts.ListCompleted(ctx, leadID, day)
	if err != nil {
		return nil, fmt.Errorf("list transcripts for LEAD-%s: %w", leadID, err)
	}
	if len(records) == 0 {
		s.logger.Info(ctx, "No transcripts on %s for LEAD-%s", day.Format(model.DateLayout), leadID)
		return nil, nil
	}

	s.logger.Info(ctx, "Found %d transcripts for LEAD-%s", len(records), leadID)

	results := make([]Result, 0, len(records))
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		s.logger.Info(ctx, "[%d/%d] Summarizing call %s", i+1, len(records), rec.Filename)

		text := llm.Generate(ctx, s.llm, llm.Request{
			System:    callPrompt,
			User:      *rec.TranscriptText,
			MaxTokens: summaryMaxTokens,
		}, summaryPlaceholder)

		res, err := s.save(ctx, leadID, model.SourceCall, rec.ID, callExtra(rec), day, text)
		if err != nil {
			return results, err
		}
		results = append(results, *res)
	}
	return results, nil
}

func (s *implSummarizer) SummarizeChat(ctx context.Context, leadID string, day time.Time, allHistory bool) (*Result, error) {
	var filter *time.Time
	if !allHistory {
		filter = &day
	}

	msgs, err := s.messages.ListByLead(ctx, leadID, filter)
	if err != nil {
		return nil, fmt.Errorf("list messages for LEAD-%s: %w", leadID, err)
	}
	if len(msgs) == 0 {
		if allHistory {
			s.logger.Info(ctx, "No messages stored for LEAD-%s", leadID)
		} else {
			s.logger.Info(ctx, "No messages on %s for LEAD-%s", day.Format(model.DateLayout), leadID)
		}
		return nil, nil
	}

	s.logger.Info(ctx, "Found %d messages for LEAD-%s", len(msgs), leadID)

	text := llm.Generate(ctx, s.llm, llm.Request{
		System:    chatPrompt,
		User:      renderChat(msgs),
		MaxTokens: summaryMaxTokens,
	}, summaryPlaceholder)

	return s.save(ctx, leadID, model.SourceChat, msgs[len(msgs)-1].ID, "", day, text)
}

func (s *implSummarizer) SummarizeLeads(ctx context.Context, opts Options) ([]Result, error) {
	leads, err := s.resolveLeads(ctx, opts)
	if err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		s.logger.Warn(ctx, "No data on %s", opts.Day.Format(model.DateLayout))
		return nil, nil
	}

	s.logger.Info(ctx, "Summarizing leads %s (source %s)", strings.Join(leads, ", "), opts.Source)

	var (
		results []Result
		errs    []error
	)
	for _, leadID := range leads {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if opts.Source == SourceCall || opts.Source == SourceBoth {
			calls, err := s.SummarizeCalls(ctx, leadID, opts.Day)
			results = append(results, calls...)
			if err != nil {
				s.logger.Error(ctx, "Call summaries for LEAD-%s failed: %v", leadID, err)
				errs = append(errs, err)
			}
		}

		if opts.Source == SourceChat || opts.Source == SourceBoth {
			chat, err := s.SummarizeChat(ctx, leadID, opts.Day, opts.AllHistory)
			if err != nil {
				s.logger.Error(ctx, "Chat summary for LEAD-%s failed: %v", leadID, err)
				errs = append(errs, err)
			} else if chat != nil {
				results = append(results, *chat)
			}
		}
	}

	s.logger.Info(ctx, "Created %d summaries in %s", len(results), document.DatedDir(s.outDir, opts.Day.Format(model.DateLayout)))
	return results, errors.Join(errs...)
}

// resolveLeads expands "all" into the sorted union of leads with data for the run.
func (s *implSummarizer) resolveLeads(ctx context.Context, opts Options) ([]string, error) {
	if len(opts.Leads) != 1 || !strings.EqualFold(opts.Leads[0], AllLeads) {
		return opts.Leads, nil
	}

	seen := make(map[string]struct{})
	if opts.Source == SourceCall || opts.Source == SourceBoth {
		ids, err := s.transcripts.Leads(ctx, opts.Day)
		if err != nil {
			return nil, fmt.Errorf("list call leads: %w", err)
		}
		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}
	if opts.Source == SourceChat || opts.Source == SourceBoth {
		var filter *time.Time
		if !opts.AllHistory {
			filter = &opts.Day
		}
		ids, err := s.messages.Leads(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list chat leads: %w", err)
		}
		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}

	leads := make([]string, 0, len(seen))
	for id := range seen {
		leads = append(leads, id)
	}
	sort.Strings(leads)
	return leads, nil
}

// save writes the summary file and upserts the summary record. A summary that
// was generated is always recorded, even after ctx is cancelled.
func (s *implSummarizer) save(ctx context.Context, leadID string, source model.SourceType, sourceID uint, extra string, day time.Time, text string) (*Result, error) {
	date := day.Format(model.DateLayout)
	path := filepath.Join(document.DatedDir(s.outDir, date), summaryName(leadID, source, extra, date))
	header := summaryHeader(leadID, source, date, s.now().Format(messageLayout), s.llm.Model())

	if err := document.WriteMarkdown(path, header, text); err != nil {
		return nil, err
	}
	if s.docx {
		title := fmt.Sprintf("LEAD-%s %s %s", leadID, source, date)
		if err := document.WriteDocx(title, text, document.SwapExt(path, ".docx")); err != nil {
			s.logger.Warn(ctx, "Docx export for %s failed: %v", path, err)
		}
	}

	err := s.summaries.Save(context.WithoutCancel(ctx), &model.ClientSummary{
		LeadID:      leadID,
		SourceType:  source,
		SourceID:    sourceID,
		SummaryText: text,
		SummaryDate: model.Day(day),
	})
	if err != nil {
		return nil, fmt.Errorf("save %s summary for LEAD-%s: %w", source, leadID, err)
	}

	s.logger.Info(ctx, "Saved %s", path)
	return &Result{LeadID: leadID, SourceType: source, SourceID: sourceID, Path: path, Text: text}, nil
}
