package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/SyntaxStrategist/genuity-ai/internal/repository"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// MinEntriesForAnalysis gates both pattern detection and prediction.
	// Below this the history is treated as insufficient data, not an error.
	MinEntriesForAnalysis = 7

	// DefaultPatternWindowDays is the default history window for detection.
	DefaultPatternWindowDays = 30

	// Impact thresholds: a correlation is only flagged when the group mean
	// differs from the comparison mean by more than this many mood points.
	generalImpactThreshold  = 0.5
	activityImpactThreshold = 0.3

	// Sample-size minimums per analysis
	minEntriesPerWeekday       = 2
	minEntriesWithSleep        = 5
	minEntriesPerSleepBand     = 2
	minEntriesWithExercise     = 5
	minEntriesPerExerciseGroup = 2
	minActivityOccurrences     = 3
	minMorningEntries          = 2
	minOffMorningEntries       = 2

	// Sleep bands: entries between the two bounds belong to neither group.
	goodSleepHours = 7.5
	poorSleepHours = 6.5

	// Exercise threshold: 20+ minutes counts as exercised (inclusive).
	exerciseThresholdMinutes = 20
)

// weekdayOrder fixes the output order of day-of-week patterns.
var weekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// PatternService detects behavioral mood correlations from entry history.
type PatternService interface {
	// Detect analyzes the user's recent history and returns the detected
	// patterns. Fewer than 7 entries yields an empty result.
	Detect(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.PatternListResponse, error)
}

type patternService struct {
	entryRepo repository.MoodEntryRepository
	userRepo  repository.UserRepository
}

// NewPatternService creates a new PatternService.
func NewPatternService(entryRepo repository.MoodEntryRepository, userRepo repository.UserRepository) PatternService {
	return &patternService{
		entryRepo: entryRepo,
		userRepo:  userRepo,
	}
}

func (s *patternService) Detect(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.PatternListResponse, error) {
	// Validate user exists
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	if windowDays <= 0 {
		windowDays = DefaultPatternWindowDays
	}

	since := time.Now().UTC().AddDate(0, 0, -windowDays)
	entries, err := s.entryRepo.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	tracer := otel.Tracer("genuity-ai-api/patterns")
	_, span := tracer.Start(ctx, "PatternService.Detect",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.Int("window.days", windowDays),
			attribute.Int("entries.count", len(entries)),
		),
	)
	defer span.End()

	patterns := DetectPatterns(entries)
	span.SetAttributes(attribute.Int("patterns.count", len(patterns)))

	return &domain.PatternListResponse{
		WindowDays: windowDays,
		EntryCount: len(entries),
		Patterns:   patterns,
	}, nil
}

// DetectPatterns runs the five analyses over an immutable entry snapshot and
// concatenates their results. No cross-analysis deduplication is performed.
func DetectPatterns(entries []domain.MoodEntry) []domain.DetectedPattern {
	if len(entries) < MinEntriesForAnalysis {
		return []domain.DetectedPattern{}
	}

	patterns := make([]domain.DetectedPattern, 0)
	patterns = append(patterns, detectSleepPatterns(entries)...)
	patterns = append(patterns, detectExercisePatterns(entries)...)
	patterns = append(patterns, detectActivityPatterns(entries)...)
	patterns = append(patterns, detectDayOfWeekPatterns(entries)...)
	patterns = append(patterns, detectTimeOfDayPatterns(entries)...)
	return patterns
}

func detectDayOfWeekPatterns(entries []domain.MoodEntry) []domain.DetectedPattern {
	var patterns []domain.DetectedPattern

	overallAvg := meanMood(entries)

	for _, weekday := range weekdayOrder {
		var dayEntries []domain.MoodEntry
		for _, entry := range entries {
			if entry.LocalTime().Weekday() == weekday {
				dayEntries = append(dayEntries, entry)
			}
		}

		if len(dayEntries) < minEntriesPerWeekday {
			continue
		}

		dayAvg := meanMood(dayEntries)
		impact := dayAvg - overallAvg

		if abs(impact) <= generalImpactThreshold {
			continue
		}

		confidence := capConfidence(float64(len(dayEntries)) / 10.0)
		day := weekday.String()

		var description string
		if impact > 0 {
			description = fmt.Sprintf("%ss are your best day (%.1f/5 vs %.1f/5 avg)", day, dayAvg, overallAvg)
		} else {
			description = fmt.Sprintf("%ss are challenging for you (%.1f/5 vs %.1f/5 avg)", day, dayAvg, overallAvg)
		}

		patterns = append(patterns, domain.NewDetectedPattern(
			domain.PatternDayOfWeek, day, impact, confidence, len(dayEntries), description,
		))
	}

	return patterns
}

func detectSleepPatterns(entries []domain.MoodEntry) []domain.DetectedPattern {
	var patterns []domain.DetectedPattern

	var withSleep []domain.MoodEntry
	for _, entry := range entries {
		if entry.SleepHours != nil {
			withSleep = append(withSleep, entry)
		}
	}
	if len(withSleep) < minEntriesWithSleep {
		return patterns
	}

	// Entries between the bounds belong to neither band.
	var goodSleep, poorSleep []domain.MoodEntry
	for _, entry := range withSleep {
		switch {
		case *entry.SleepHours >= goodSleepHours:
			goodSleep = append(goodSleep, entry)
		case *entry.SleepHours < poorSleepHours:
			poorSleep = append(poorSleep, entry)
		}
	}

	if len(goodSleep) < minEntriesPerSleepBand || len(poorSleep) < minEntriesPerSleepBand {
		return patterns
	}

	goodAvg := meanMood(goodSleep)
	poorAvg := meanMood(poorSleep)
	impact := goodAvg - poorAvg

	if abs(impact) <= generalImpactThreshold {
		return patterns
	}

	var description string
	if impact > 0 {
		description = fmt.Sprintf("8+ hours of sleep lifts you to %.1f/5 vs %.1f/5 on short sleep (%+.1f boost)", goodAvg, poorAvg, impact)
	} else {
		description = fmt.Sprintf("Poor sleep (<7h) drops your mood by %.1f points", abs(impact))
	}

	patterns = append(patterns, domain.NewDetectedPattern(
		domain.PatternSleep, "Sleep Quality", impact, 0.90, len(goodSleep)+len(poorSleep), description,
	))

	return patterns
}

func detectExercisePatterns(entries []domain.MoodEntry) []domain.DetectedPattern {
	var patterns []domain.DetectedPattern

	var withExercise []domain.MoodEntry
	for _, entry := range entries {
		if entry.ExerciseMinutes != nil {
			withExercise = append(withExercise, entry)
		}
	}
	if len(withExercise) < minEntriesWithExercise {
		return patterns
	}

	var exercised, noExercise []domain.MoodEntry
	for _, entry := range withExercise {
		if *entry.ExerciseMinutes >= exerciseThresholdMinutes {
			exercised = append(exercised, entry)
		} else {
			noExercise = append(noExercise, entry)
		}
	}

	if len(exercised) < minEntriesPerExerciseGroup || len(noExercise) < minEntriesPerExerciseGroup {
		return patterns
	}

	exercisedAvg := meanMood(exercised)
	noExerciseAvg := meanMood(noExercise)
	impact := exercisedAvg - noExerciseAvg

	if abs(impact) <= generalImpactThreshold {
		return patterns
	}

	description := fmt.Sprintf("Exercise (20+ min) averages %.1f/5 vs %.1f/5 without (%+.1f boost)", exercisedAvg, noExerciseAvg, impact)

	patterns = append(patterns, domain.NewDetectedPattern(
		domain.PatternActivity, "Exercise", impact, 0.92, len(exercised)+len(noExercise), description,
	))

	return patterns
}

func detectActivityPatterns(entries []domain.MoodEntry) []domain.DetectedPattern {
	var patterns []domain.DetectedPattern

	// Group mood scores by activity tag; an entry with N tags contributes
	// its score to N groups.
	activityMoods := make(map[string][]float64)
	for _, entry := range entries {
		for _, activity := range entry.Activities {
			activityMoods[activity] = append(activityMoods[activity], float64(entry.MoodScore))
		}
	}

	overallAvg := meanMood(entries)

	for activity, moods := range activityMoods {
		if len(moods) < minActivityOccurrences {
			continue
		}

		activityAvg := mean(moods)
		impact := activityAvg - overallAvg

		if abs(impact) <= activityImpactThreshold {
			continue
		}

		confidence := capConfidence(float64(len(moods)) / 15.0)

		var description string
		if impact > 0 {
			description = fmt.Sprintf("%s boosts your mood (%.1f/5 with vs %.1f/5 without)", activity, activityAvg, overallAvg)
		} else {
			description = fmt.Sprintf("%s correlates with lower mood (%.1f/5 vs %.1f/5 avg)", activity, activityAvg, overallAvg)
		}

		patterns = append(patterns, domain.NewDetectedPattern(
			domain.PatternActivity, activity, impact, confidence, len(moods), description,
		))
	}

	sort.Slice(patterns, func(i, j int) bool {
		if abs(patterns[i].Impact) != abs(patterns[j].Impact) {
			return abs(patterns[i].Impact) > abs(patterns[j].Impact)
		}
		return patterns[i].Trigger < patterns[j].Trigger
	})

	return patterns
}

func detectTimeOfDayPatterns(entries []domain.MoodEntry) []domain.DetectedPattern {
	var patterns []domain.DetectedPattern

	var morning, afternoon, evening []domain.MoodEntry
	for _, entry := range entries {
		hour := entry.LocalTime().Hour()
		switch {
		case hour < 12:
			morning = append(morning, entry)
		case hour < 18:
			afternoon = append(afternoon, entry)
		default:
			evening = append(evening, entry)
		}
	}

	if len(morning) < minMorningEntries {
		return patterns
	}
	if len(afternoon) < minOffMorningEntries && len(evening) < minOffMorningEntries {
		return patterns
	}

	// Only the morning comparison is emitted; afternoon/evening splits feed
	// the guard above but have no pattern output yet.
	morningAvg := meanMood(morning)
	overallAvg := meanMood(entries)
	impact := morningAvg - overallAvg

	if abs(impact) <= generalImpactThreshold {
		return patterns
	}

	var description string
	if impact > 0 {
		description = "You're a morning person - your mood is highest before noon"
	} else {
		description = "Mornings are tough for you - consider evening activities instead"
	}

	patterns = append(patterns, domain.NewDetectedPattern(
		domain.PatternTimeOfDay, "Morning", impact, 0.75, len(morning), description,
	))

	return patterns
}

// meanMood averages the mood scores of a set of entries.
func meanMood(entries []domain.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0.0
	for _, entry := range entries {
		sum += float64(entry.MoodScore)
	}
	return sum / float64(len(entries))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// capConfidence bounds sample-size-derived confidence at 0.95.
func capConfidence(c float64) float64 {
	if c > 0.95 {
		return 0.95
	}
	return c
}
