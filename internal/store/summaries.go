package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nguyentantai21042004/lead-digest/internal/model"
)

// Save upserts on (lead, source, source id, date). A lead has at most one chat
// summary per date: its source id moves with every import, so an older chat
// row for the same date is replaced rather than kept beside the new one.
func (s *implSummaryStore) Save(ctx context.Context, summary *model.ClientSummary) error {
	summary.SummaryDate = model.Day(summary.SummaryDate)
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now()
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if summary.SourceType == model.SourceChat {
			err := tx.Where("lead_id = ? AND source_type = ? AND summary_date = ? AND source_id <> ?",
				summary.LeadID, model.SourceChat, summary.SummaryDate, summary.SourceID).
				Delete(&model.ClientSummary{}).Error
			if err != nil {
				return err
			}
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "lead_id"},
				{Name: "source_type"},
				{Name: "source_id"},
				{Name: "summary_date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"summary_text", "created_at"}),
		}).Create(summary).Error
	})
	if err != nil {
		return fmt.Errorf("save %s summary for LEAD-%s: %w", summary.SourceType, summary.LeadID, err)
	}
	return nil
}

func (s *implSummaryStore) ListByDate(ctx context.Context, day time.Time) ([]model.ClientSummary, error) {
	var out []model.ClientSummary
	err := s.db.WithContext(ctx).
		Where("summary_date = ?", model.Day(day)).
		Order("lead_id, source_type, id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list summaries for %s: %w", day.Format(model.DateLayout), err)
	}
	return out, nil
}
