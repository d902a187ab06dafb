package store

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/lead-digest/internal/model"
)

func (s *implTranscriptStore) ListCompleted(ctx context.Context, leadID string, day time.Time) ([]model.ProcessedFile, error) {
	start, end := model.DayBounds(day)

	var out []model.ProcessedFile
	err := s.db.WithContext(ctx).
		Where("lead_id = ? AND status = ? AND transcript_text IS NOT NULL", leadID, model.StatusCompleted).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at, id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list transcripts for LEAD-%s: %w", leadID, err)
	}
	return out, nil
}

func (s *implTranscriptStore) Leads(ctx context.Context, day time.Time) ([]string, error) {
	start, end := model.DayBounds(day)

	var leads []string
	err := s.db.WithContext(ctx).Model(&model.ProcessedFile{}).
		Where("status = ? AND created_at >= ? AND created_at < ?", model.StatusCompleted, start, end).
		Where("lead_id <> ''").
		Distinct("lead_id").
		Order("lead_id").
		Pluck("lead_id", &leads).Error
	if err != nil {
		return nil, fmt.Errorf("list call leads: %w", err)
	}
	return leads, nil
}

func (s *implTranscriptStore) Start(ctx context.Context, leadID, filename string) (*model.ProcessedFile, error) {
	row := &model.ProcessedFile{
		LeadID:   leadID,
		Filename: filename,
		Status:   model.StatusPending,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("record %s: %w", filename, err)
	}
	return row, nil
}

func (s *implTranscriptStore) Complete(ctx context.Context, id uint, text string) error {
	err := s.db.WithContext(ctx).Model(&model.ProcessedFile{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          model.StatusCompleted,
			"transcript_text": text,
			"updated_at":      time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("complete transcript %d: %w", id, err)
	}
	return nil
}

func (s *implTranscriptStore) Fail(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Model(&model.ProcessedFile{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     model.StatusFailed,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("fail transcript %d: %w", id, err)
	}
	return nil
}
