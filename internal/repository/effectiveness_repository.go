package repository

import (
	"context"

	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EffectivenessRepository is an append-only collection of reports. Reports
// are never updated or deleted except by a full data wipe.
type EffectivenessRepository interface {
	Create(ctx context.Context, report *domain.EffectivenessReport) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.EffectivenessReport, error)
}

type effectivenessRepository struct {
	db *gorm.DB
}

func NewEffectivenessRepository(db *gorm.DB) EffectivenessRepository {
	return &effectivenessRepository{db: db}
}

func (r *effectivenessRepository) Create(ctx context.Context, report *domain.EffectivenessReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *effectivenessRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.EffectivenessReport, error) {
	var reports []domain.EffectivenessReport
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
