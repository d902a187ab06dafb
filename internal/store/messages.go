package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nguyentantai21042004/lead-digest/internal/model"
)

func (s *implMessageStore) Import(ctx context.Context, messages []model.ChatMessage, replace bool) (int64, error) {
	if len(messages) == 0 {
		return 0, nil
	}

	leadID := messages[0].LeadID
	for _, m := range messages[1:] {
		if m.LeadID != leadID {
			return 0, fmt.Errorf("import batch mixes leads %s and %s", leadID, m.LeadID)
		}
	}

	var imported int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replace {
			res := tx.Where("lead_id = ?", leadID).Delete(&model.ChatMessage{})
			if res.Error != nil {
				return fmt.Errorf("delete existing messages: %w", res.Error)
			}
			s.logger.Info(ctx, "Deleted %d existing messages for LEAD-%s", res.RowsAffected, leadID)
		}

		var before int64
		if err := tx.Model(&model.ChatMessage{}).Where("lead_id = ?", leadID).Count(&before).Error; err != nil {
			return fmt.Errorf("count before import: %w", err)
		}

		rows := make([]model.ChatMessage, len(messages))
		copy(rows, messages)
		for i := range rows {
			rows[i].ID = 0
		}
		if err := tx.CreateInBatches(&rows, importBatchSize).Error; err != nil {
			return fmt.Errorf("insert messages: %w", err)
		}

		var after int64
		if err := tx.Model(&model.ChatMessage{}).Where("lead_id = ?", leadID).Count(&after).Error; err != nil {
			return fmt.Errorf("count after import: %w", err)
		}

		imported = after - before
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

func (s *implMessageStore) ListByLead(ctx context.Context, leadID string, day *time.Time) ([]model.ChatMessage, error) {
	q := s.db.WithContext(ctx).Where("lead_id = ?", leadID)
	if day != nil {
		start, end := model.DayBounds(*day)
		q = q.Where("message_date >= ? AND message_date < ?", start, end)
	}

	var out []model.ChatMessage
	if err := q.Order("message_date, id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list messages for LEAD-%s: %w", leadID, err)
	}
	return out, nil
}

func (s *implMessageStore) Leads(ctx context.Context, day *time.Time) ([]string, error) {
	q := s.db.WithContext(ctx).Model(&model.ChatMessage{})
	if day != nil {
		start, end := model.DayBounds(*day)
		q = q.Where("message_date >= ? AND message_date < ?", start, end)
	}

	var leads []string
	if err := q.Distinct("lead_id").Order("lead_id").Pluck("lead_id", &leads).Error; err != nil {
		return nil, fmt.Errorf("list chat leads: %w", err)
	}
	return leads, nil
}
