package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const seededDays = 28

// Run seeds the database with sample users and mood entries. The generated
// history has deliberate structure (a Monday dip, sleep and exercise
// correlations) so pattern detection has something to find. Safe to call
// multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.MoodEntry{},
		&domain.MoodPrediction{},
		&domain.AccountabilityCheck{},
		&domain.EffectivenessReport{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "Europe/Amsterdam"},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/New_York"},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Asia/Tokyo"},
		{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), Timezone: "Australia/Sydney"},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		if err := seedMoodEntriesForUser(db, user, rng); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

func seedMoodEntriesForUser(db *gorm.DB, user domain.User, rng *rand.Rand) error {
	now := time.Now().UTC()
	for i := 0; i < seededDays; i++ {
		date := now.AddDate(0, 0, -i)
		loggedAt := time.Date(date.Year(), date.Month(), date.Day(), 8+rng.Intn(12), rng.Intn(60), 0, 0, time.UTC)

		sleepHours := 7.5 + rng.Float64()
		if rng.Float32() < 0.3 {
			sleepHours = 5.0 + rng.Float64()*1.4
		}

		exerciseMinutes := 0
		if rng.Float32() < 0.5 {
			exerciseMinutes = 20 + rng.Intn(40)
		}

		mood := 3
		notes := "Regular day"
		activities := []string{"Work"}

		switch {
		case loggedAt.Weekday() == time.Monday:
			mood = 2
			notes = "Rough start to the week"
		case sleepHours < 6.5:
			mood = 2 + rng.Intn(2)
			notes = "Tired after a short night"
		case exerciseMinutes >= 20:
			mood = 4 + rng.Intn(2)
			notes = "Felt great after moving"
		default:
			mood = 3 + rng.Intn(2)
		}

		if exerciseMinutes >= 20 {
			activities = append(activities, "Exercise")
		}
		if rng.Float32() < 0.3 {
			activities = append(activities, "Social")
		}

		clientReqID := fmt.Sprintf("seed-mood-%s-%d", user.ID, i)
		entry := domain.MoodEntry{
			UserID:          user.ID,
			LoggedAt:        loggedAt,
			MoodScore:       domain.ClampMoodScore(mood),
			Notes:           notes,
			Activities:      activities,
			SleepHours:      &sleepHours,
			ExerciseMinutes: &exerciseMinutes,
			LocalTimezone:   user.Timezone,
			ClientRequestID: &clientReqID,
		}

		if err := db.Where("client_request_id = ?", clientReqID).FirstOrCreate(&entry).Error; err != nil {
			return fmt.Errorf("failed to create mood entry: %w", err)
		}
	}
	return nil
}
