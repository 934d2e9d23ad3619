package repository

import (
	"context"

	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountabilityRepository interface {
	Create(ctx context.Context, check *domain.AccountabilityCheck) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AccountabilityCheck, error)
	Update(ctx context.Context, check *domain.AccountabilityCheck) error
	ListByUser(ctx context.Context, userID uuid.UUID, pendingOnly bool) ([]domain.AccountabilityCheck, error)
}

type accountabilityRepository struct {
	db *gorm.DB
}

func NewAccountabilityRepository(db *gorm.DB) AccountabilityRepository {
	return &accountabilityRepository{db: db}
}

func (r *accountabilityRepository) Create(ctx context.Context, check *domain.AccountabilityCheck) error {
	return r.db.WithContext(ctx).Create(check).Error
}

func (r *accountabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccountabilityCheck, error) {
	var check domain.AccountabilityCheck
	err := r.db.WithContext(ctx).First(&check, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &check, nil
}

func (r *accountabilityRepository) Update(ctx context.Context, check *domain.AccountabilityCheck) error {
	return r.db.WithContext(ctx).Save(check).Error
}

func (r *accountabilityRepository) ListByUser(ctx context.Context, userID uuid.UUID, pendingOnly bool) ([]domain.AccountabilityCheck, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scheduled_date DESC")

	if pendingOnly {
		query = query.Where("completed = ?", false)
	}

	var checks []domain.AccountabilityCheck
	if err := query.Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}
