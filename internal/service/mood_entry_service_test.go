package service

import (
	"context"
	"testing"
	"time"

	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/google/uuid"
)

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func intPtr(i int) *int {
	return &i
}

func TestMoodEntryService_Create(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "Europe/Amsterdam"}

	tests := []struct {
		name         string
		req          *domain.CreateMoodEntryRequest
		setupEntries func(*MockMoodEntryRepository)
		wantErr      error
		wantExist    bool
		check        func(*testing.T, *domain.MoodEntry)
	}{
		{
			name: "basic check-in uses the user's timezone",
			req: &domain.CreateMoodEntryRequest{
				MoodScore:  4,
				Notes:      "Morning run really helped!",
				Activities: []string{"Exercise"},
			},
			check: func(t *testing.T, entry *domain.MoodEntry) {
				if entry.LocalTimezone != "Europe/Amsterdam" {
					t.Errorf("LocalTimezone = %q, want the user's home timezone", entry.LocalTimezone)
				}
				if entry.LoggedAt.IsZero() {
					t.Error("LoggedAt not defaulted")
				}
			},
		},
		{
			name: "explicit timestamp and timezone override",
			req: &domain.CreateMoodEntryRequest{
				Timestamp:     timePtr(time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)),
				MoodScore:     3,
				LocalTimezone: strPtr("Asia/Tokyo"),
			},
			check: func(t *testing.T, entry *domain.MoodEntry) {
				if !entry.LoggedAt.Equal(time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)) {
					t.Errorf("LoggedAt = %v", entry.LoggedAt)
				}
				if entry.LocalTimezone != "Asia/Tokyo" {
					t.Errorf("LocalTimezone = %q, want Asia/Tokyo", entry.LocalTimezone)
				}
			},
		},
		{
			name: "out-of-range score clamps to the scale",
			req: &domain.CreateMoodEntryRequest{
				MoodScore: 9,
			},
			check: func(t *testing.T, entry *domain.MoodEntry) {
				if entry.MoodScore != 5 {
					t.Errorf("MoodScore = %d, want 5", entry.MoodScore)
				}
			},
		},
		{
			name: "duplicate activity tags are dropped",
			req: &domain.CreateMoodEntryRequest{
				MoodScore:  4,
				Activities: []string{"Work", "Exercise", "Work"},
			},
			check: func(t *testing.T, entry *domain.MoodEntry) {
				if len(entry.Activities) != 2 || entry.Activities[0] != "Work" || entry.Activities[1] != "Exercise" {
					t.Errorf("Activities = %v, want [Work Exercise]", entry.Activities)
				}
			},
		},
		{
			name: "idempotent request returns existing",
			req: &domain.CreateMoodEntryRequest{
				MoodScore:       4,
				ClientRequestID: strPtr("req-123"),
			},
			setupEntries: func(repo *MockMoodEntryRepository) {
				existing := &domain.MoodEntry{
					ID:              uuid.New(),
					UserID:          userID,
					LoggedAt:        time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
					MoodScore:       4,
					LocalTimezone:   "Europe/Amsterdam",
					ClientRequestID: strPtr("req-123"),
				}
				repo.entries[existing.ID] = existing
				repo.clientRequestID[userID.String()+":req-123"] = existing
			},
			wantExist: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entryRepo := NewMockMoodEntryRepository()
			if tt.setupEntries != nil {
				tt.setupEntries(entryRepo)
			}

			svc := NewMoodEntryService(entryRepo, userRepo)
			entry, isExisting, err := svc.Create(context.Background(), userID, tt.req)

			if err != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr != nil {
				return
			}
			if entry == nil {
				t.Fatal("Create() returned nil entry")
			}
			if isExisting != tt.wantExist {
				t.Errorf("Create() isExisting = %v, want %v", isExisting, tt.wantExist)
			}
			if tt.check != nil {
				tt.check(t, entry)
			}
		})
	}
}

func TestMoodEntryService_Create_UserNotFound(t *testing.T) {
	svc := NewMoodEntryService(NewMockMoodEntryRepository(), NewMockUserRepository())

	_, _, err := svc.Create(context.Background(), uuid.New(), &domain.CreateMoodEntryRequest{MoodScore: 3})
	if err != domain.ErrNotFound {
		t.Errorf("Create() error = %v, want ErrNotFound", err)
	}
}

func TestMoodEntryService_List_DefaultsAndCursor(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	entries := make([]domain.MoodEntry, 25)
	base := time.Date(2024, 1, 31, 14, 0, 0, 0, time.UTC)
	for i := range entries {
		entries[i] = domain.MoodEntry{
			ID:        uuid.New(),
			UserID:    userID,
			LoggedAt:  base.AddDate(0, 0, -i),
			MoodScore: 3,
		}
	}

	entryRepo := NewMockMoodEntryRepository()
	entryRepo.listResult = entries

	svc := NewMoodEntryService(entryRepo, userRepo)

	resp, err := svc.List(context.Background(), userID, domain.MoodEntryFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resp.Data) != 20 {
		t.Errorf("got %d entries, want the default limit of 20", len(resp.Data))
	}
	if !resp.Pagination.HasMore {
		t.Error("HasMore = false, want true")
	}
	if resp.Pagination.NextCursor == "" {
		t.Error("NextCursor empty, want cursor for the next page")
	}
}

func TestMoodEntryService_List_NoMorePages(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	entryRepo := NewMockMoodEntryRepository()
	entryRepo.listResult = []domain.MoodEntry{
		{ID: uuid.New(), UserID: userID, LoggedAt: time.Now().UTC(), MoodScore: 4},
	}

	svc := NewMoodEntryService(entryRepo, userRepo)

	resp, err := svc.List(context.Background(), userID, domain.MoodEntryFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Pagination.HasMore {
		t.Error("HasMore = true, want false")
	}
	if resp.Pagination.NextCursor != "" {
		t.Errorf("NextCursor = %q, want empty", resp.Pagination.NextCursor)
	}
}

func TestMoodEntryService_Delete_Ownership(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	entry := &domain.MoodEntry{ID: uuid.New(), UserID: userID, LoggedAt: time.Now(), MoodScore: 3}
	entryRepo := NewMockMoodEntryRepository()
	entryRepo.entries[entry.ID] = entry

	svc := NewMoodEntryService(entryRepo, userRepo)

	if err := svc.Delete(context.Background(), uuid.New(), entry.ID); err != domain.ErrNotFound {
		t.Errorf("Delete() by another user error = %v, want ErrNotFound", err)
	}

	if err := svc.Delete(context.Background(), userID, entry.ID); err != nil {
		t.Errorf("Delete() by owner error = %v", err)
	}
	if _, ok := entryRepo.entries[entry.ID]; ok {
		t.Error("entry still present after delete")
	}
}

func TestMoodEntryService_UpdateHealth(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	entry := &domain.MoodEntry{
		ID:         uuid.New(),
		UserID:     userID,
		LoggedAt:   time.Now(),
		MoodScore:  3,
		SleepHours: floatPtr(7.0),
	}
	entryRepo := NewMockMoodEntryRepository()
	entryRepo.entries[entry.ID] = entry

	svc := NewMoodEntryService(entryRepo, userRepo)

	// Empty patch is rejected
	_, err := svc.UpdateHealth(context.Background(), userID, entry.ID, &domain.UpdateHealthContextRequest{})
	if err != domain.ErrInvalidInput {
		t.Errorf("UpdateHealth() with no fields error = %v, want ErrInvalidInput", err)
	}

	// Partial patch leaves other fields alone
	updated, err := svc.UpdateHealth(context.Background(), userID, entry.ID, &domain.UpdateHealthContextRequest{
		ExerciseMinutes: intPtr(30),
	})
	if err != nil {
		t.Fatalf("UpdateHealth() error = %v", err)
	}
	if updated.ExerciseMinutes == nil || *updated.ExerciseMinutes != 30 {
		t.Errorf("ExerciseMinutes = %v, want 30", updated.ExerciseMinutes)
	}
	if updated.SleepHours == nil || *updated.SleepHours != 7.0 {
		t.Errorf("SleepHours = %v, want 7.0 preserved", updated.SleepHours)
	}

	// Ownership check
	_, err = svc.UpdateHealth(context.Background(), uuid.New(), entry.ID, &domain.UpdateHealthContextRequest{
		StepCount: intPtr(5000),
	})
	if err != domain.ErrNotFound {
		t.Errorf("UpdateHealth() by another user error = %v, want ErrNotFound", err)
	}
}

func TestMoodEntryService_Summary(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	entryRepo := NewMockMoodEntryRepository()
	now := time.Now().UTC()

	// Newest first, as the repository returns them
	moods := []int{5, 5, 4, 2, 2, 2}
	listResult := make([]domain.MoodEntry, len(moods))
	for i, mood := range moods {
		listResult[i] = domain.MoodEntry{
			ID:        uuid.New(),
			UserID:    userID,
			LoggedAt:  now.AddDate(0, 0, -i),
			MoodScore: mood,
		}
	}
	entryRepo.listResult = listResult

	svc := NewMoodEntryService(entryRepo, userRepo)

	summary, err := svc.Summary(context.Background(), userID, 0)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.WindowDays != DefaultSummaryWindowDays {
		t.Errorf("WindowDays = %d, want %d", summary.WindowDays, DefaultSummaryWindowDays)
	}
	if summary.EntryCount != 6 {
		t.Errorf("EntryCount = %d, want 6", summary.EntryCount)
	}
	if !almostEqual(summary.AverageMood, 20.0/6.0) {
		t.Errorf("AverageMood = %v, want %v", summary.AverageMood, 20.0/6.0)
	}
	if summary.Trend != domain.TrendImproving {
		t.Errorf("Trend = %s, want improving", summary.Trend)
	}
}

func TestMoodTrend(t *testing.T) {
	now := time.Now().UTC()
	fromMoods := func(moods ...int) []domain.MoodEntry {
		// Newest first, matching repository order
		entries := make([]domain.MoodEntry, len(moods))
		for i, mood := range moods {
			entries[i] = domain.MoodEntry{
				ID:        uuid.New(),
				LoggedAt:  now.AddDate(0, 0, -i),
				MoodScore: mood,
			}
		}
		return entries
	}

	tests := []struct {
		name    string
		entries []domain.MoodEntry
		want    domain.MoodTrend
	}{
		{"empty", nil, domain.TrendStable},
		{"single entry", fromMoods(4), domain.TrendStable},
		{"improving", fromMoods(5, 5, 4, 2, 2, 2), domain.TrendImproving},
		{"declining", fromMoods(2, 2, 2, 4, 5, 5), domain.TrendDeclining},
		{"flat", fromMoods(3, 3, 3, 3), domain.TrendStable},
		{"within threshold", fromMoods(4, 3, 3, 3), domain.TrendStable},
		{"odd count drops the middle entry", fromMoods(5, 5, 3, 2, 2), domain.TrendImproving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := moodTrend(tt.entries); got != tt.want {
				t.Errorf("moodTrend() = %s, want %s", got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
