package repository

import (
	"context"

	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PredictionRepository interface {
	Create(ctx context.Context, prediction *domain.MoodPrediction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MoodPrediction, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.MoodPrediction, error)
}

type predictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) Create(ctx context.Context, prediction *domain.MoodPrediction) error {
	return r.db.WithContext(ctx).Create(prediction).Error
}

func (r *predictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MoodPrediction, error) {
	var prediction domain.MoodPrediction
	err := r.db.WithContext(ctx).First(&prediction, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &prediction, nil
}

func (r *predictionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.MoodPrediction, error) {
	var predictions []domain.MoodPrediction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("target_date DESC").
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}
