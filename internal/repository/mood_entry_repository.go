package repository

import (
	"context"
	"time"

	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/SyntaxStrategist/genuity-ai/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MoodEntryRepository interface {
	Create(ctx context.Context, entry *domain.MoodEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MoodEntry, error)
	Update(ctx context.Context, entry *domain.MoodEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter domain.MoodEntryFilter) ([]domain.MoodEntry, error)
	// ListAll returns the user's full history, newest first. The analysis
	// services treat the returned slice as an immutable snapshot.
	ListAll(ctx context.Context, userID uuid.UUID) ([]domain.MoodEntry, error)
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.MoodEntry, error)
	GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.MoodEntry, error)
}

type moodEntryRepository struct {
	db *gorm.DB
}

func NewMoodEntryRepository(db *gorm.DB) MoodEntryRepository {
	return &moodEntryRepository{db: db}
}

func (r *moodEntryRepository) Create(ctx context.Context, entry *domain.MoodEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *moodEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MoodEntry, error) {
	var entry domain.MoodEntry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *moodEntryRepository) Update(ctx context.Context, entry *domain.MoodEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *moodEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.MoodEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *moodEntryRepository) List(ctx context.Context, userID uuid.UUID, filter domain.MoodEntryFilter) ([]domain.MoodEntry, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC")

	// Apply time filters
	if filter.From != nil {
		query = query.Where("logged_at >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("logged_at <= ?", filter.To)
	}

	// Apply cursor pagination
	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// For DESC order: records older than the cursor entry, with the
			// ID as a tiebreaker for identical timestamps
			query = query.Where(
				"(logged_at < ?) OR (logged_at = ? AND id < ?)",
				cursor.LoggedAt, cursor.LoggedAt, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var entries []domain.MoodEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *moodEntryRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.MoodEntry, error) {
	var entries []domain.MoodEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *moodEntryRepository) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.MoodEntry, error) {
	var entries []domain.MoodEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ?", userID, since).
		Order("logged_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *moodEntryRepository) GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.MoodEntry, error) {
	var entry domain.MoodEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND client_request_id = ?", userID, clientRequestID).
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // Not found is not an error for idempotency check
		}
		return nil, err
	}
	return &entry, nil
}
