package service

import (
	"context"
	"time"

	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/google/uuid"
)

// MockMoodEntryRepository is a mock implementation of MoodEntryRepository
type MockMoodEntryRepository struct {
	entries         map[uuid.UUID]*domain.MoodEntry
	clientRequestID map[string]*domain.MoodEntry
	listResult      []domain.MoodEntry
	err             error
}

func NewMockMoodEntryRepository() *MockMoodEntryRepository {
	return &MockMoodEntryRepository{
		entries:         make(map[uuid.UUID]*domain.MoodEntry),
		clientRequestID: make(map[string]*domain.MoodEntry),
	}
}

func (m *MockMoodEntryRepository) Create(ctx context.Context, entry *domain.MoodEntry) error {
	if m.err != nil {
		return m.err
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	m.entries[entry.ID] = entry
	if entry.ClientRequestID != nil {
		key := entry.UserID.String() + ":" + *entry.ClientRequestID
		m.clientRequestID[key] = entry
	}
	return nil
}

func (m *MockMoodEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MoodEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	entry, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

func (m *MockMoodEntryRepository) Update(ctx context.Context, entry *domain.MoodEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockMoodEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *MockMoodEntryRepository) List(ctx context.Context, userID uuid.UUID, filter domain.MoodEntryFilter) ([]domain.MoodEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.listResult != nil {
		result := make([]domain.MoodEntry, len(m.listResult))
		copy(result, m.listResult)
		return result, nil
	}
	var result []domain.MoodEntry
	for _, entry := range m.entries {
		if entry.UserID == userID {
			result = append(result, *entry)
		}
	}
	return result, nil
}

func (m *MockMoodEntryRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.MoodEntry, error) {
	return m.List(ctx, userID, domain.MoodEntryFilter{})
}

func (m *MockMoodEntryRepository) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.MoodEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.listResult != nil {
		result := make([]domain.MoodEntry, len(m.listResult))
		copy(result, m.listResult)
		return result, nil
	}
	var result []domain.MoodEntry
	for _, entry := range m.entries {
		if entry.UserID == userID && !entry.LoggedAt.Before(since) {
			result = append(result, *entry)
		}
	}
	return result, nil
}

func (m *MockMoodEntryRepository) GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.MoodEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	key := userID.String() + ":" + clientRequestID
	entry, ok := m.clientRequestID[key]
	if !ok {
		return nil, nil
	}
	return entry, nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

// MockPredictionRepository is a mock implementation of PredictionRepository
type MockPredictionRepository struct {
	predictions map[uuid.UUID]*domain.MoodPrediction
	err         error
}

func NewMockPredictionRepository() *MockPredictionRepository {
	return &MockPredictionRepository{
		predictions: make(map[uuid.UUID]*domain.MoodPrediction),
	}
}

func (m *MockPredictionRepository) Create(ctx context.Context, prediction *domain.MoodPrediction) error {
	if m.err != nil {
		return m.err
	}
	m.predictions[prediction.ID] = prediction
	return nil
}

func (m *MockPredictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MoodPrediction, error) {
	if m.err != nil {
		return nil, m.err
	}
	prediction, ok := m.predictions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return prediction, nil
}

func (m *MockPredictionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.MoodPrediction, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.MoodPrediction
	for _, prediction := range m.predictions {
		if prediction.UserID == userID {
			result = append(result, *prediction)
		}
	}
	return result, nil
}

// MockAccountabilityRepository is a mock implementation of AccountabilityRepository
type MockAccountabilityRepository struct {
	checks map[uuid.UUID]*domain.AccountabilityCheck
	err    error
}

func NewMockAccountabilityRepository() *MockAccountabilityRepository {
	return &MockAccountabilityRepository{
		checks: make(map[uuid.UUID]*domain.AccountabilityCheck),
	}
}

func (m *MockAccountabilityRepository) Create(ctx context.Context, check *domain.AccountabilityCheck) error {
	if m.err != nil {
		return m.err
	}
	m.checks[check.ID] = check
	return nil
}

func (m *MockAccountabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccountabilityCheck, error) {
	if m.err != nil {
		return nil, m.err
	}
	check, ok := m.checks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return check, nil
}

func (m *MockAccountabilityRepository) Update(ctx context.Context, check *domain.AccountabilityCheck) error {
	if m.err != nil {
		return m.err
	}
	m.checks[check.ID] = check
	return nil
}

func (m *MockAccountabilityRepository) ListByUser(ctx context.Context, userID uuid.UUID, pendingOnly bool) ([]domain.AccountabilityCheck, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.AccountabilityCheck
	for _, check := range m.checks {
		if check.UserID != userID {
			continue
		}
		if pendingOnly && check.Completed {
			continue
		}
		result = append(result, *check)
	}
	return result, nil
}

// MockEffectivenessRepository is a mock implementation of EffectivenessRepository
type MockEffectivenessRepository struct {
	reports []domain.EffectivenessReport
	err     error
}

func NewMockEffectivenessRepository() *MockEffectivenessRepository {
	return &MockEffectivenessRepository{}
}

func (m *MockEffectivenessRepository) Create(ctx context.Context, report *domain.EffectivenessReport) error {
	if m.err != nil {
		return m.err
	}
	m.reports = append(m.reports, *report)
	return nil
}

func (m *MockEffectivenessRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.EffectivenessReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.EffectivenessReport
	for _, report := range m.reports {
		if report.UserID == userID {
			result = append(result, report)
		}
	}
	return result, nil
}

// MockInterventionLLM is a mock implementation of llm.InterventionLLM
type MockInterventionLLM struct {
	response string
	err      error
	calls    int
}

func (m *MockInterventionLLM) GenerateInterventionSteps(ctx context.Context, prediction *domain.MoodPrediction, patterns []domain.DetectedPattern) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}
