package answers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const DEFAULT_MAX_SAVE_ATTEMPTS = 5

// AnswerService implements the operations on a user's answer record on top
// of a Store. All writes go through the same optimistic merge loop, so two
// concurrent saves for the same user never lose each other's keys.
type AnswerService struct {
	store           Store
	maxSaveAttempts int
	now             func() time.Time
}

func NewAnswerService(store Store, maxSaveAttempts int) *AnswerService {
	if maxSaveAttempts < 1 {
		maxSaveAttempts = DEFAULT_MAX_SAVE_ATTEMPTS
	}
	return &AnswerService{
		store:           store,
		maxSaveAttempts: maxSaveAttempts,
		now:             time.Now,
	}
}

// SaveAnswers merges newAnswers into the user's record, new keys inserted
// and existing keys overwritten, and persists the result as a whole. The
// second return value reports whether this call created the record.
func (s *AnswerService) SaveAnswers(ctx context.Context, userID string, newAnswers map[string]string) (AnswerRecord, bool, error) {
	if len(newAnswers) == 0 {
		return AnswerRecord{}, false, newValidationError("answers", "cannot be empty")
	}
	for questionID := range newAnswers {
		if strings.TrimSpace(questionID) == "" {
			return AnswerRecord{}, false, newValidationError("answers", "question id cannot be empty")
		}
	}
	return s.saveMerged(ctx, userID, newAnswers)
}

// UpdateSingleAnswer goes through the same merge path as SaveAnswers with a
// single entry map, so creation, timestamps and the derived count follow
// the same rules.
func (s *AnswerService) UpdateSingleAnswer(ctx context.Context, userID string, questionID string, answerText string) (AnswerRecord, bool, error) {
	if strings.TrimSpace(questionID) == "" {
		return AnswerRecord{}, false, newValidationError("question id", "cannot be empty")
	}
	return s.saveMerged(ctx, userID, map[string]string{questionID: answerText})
}

// GetAnswers returns the user's record. TotalQuestions is recomputed from
// the live answer map.
func (s *AnswerService) GetAnswers(ctx context.Context, userID string) (AnswerRecord, error) {
	record, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return AnswerRecord{}, err
		}
		return AnswerRecord{}, storeFailure(err)
	}
	record.TotalQuestions = len(record.Answers)
	return record, nil
}

// DeleteAnswers removes the user's record. Deleting an absent record is not
// an error.
func (s *AnswerService) DeleteAnswers(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return storeFailure(err)
	}
	return nil
}

// GetStats derives all counters from the live answer map, the stored
// totalQuestions field is ignored so it cannot drift from reality.
func (s *AnswerService) GetStats(ctx context.Context, userID string) (AnswerStats, error) {
	record, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return AnswerStats{}, err
		}
		return AnswerStats{}, storeFailure(err)
	}

	total := len(record.Answers)
	completed := 0
	for _, answerText := range record.Answers {
		if strings.TrimSpace(answerText) != "" {
			completed++
		}
	}
	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(completed)/float64(total)*10000) / 100
	}

	return AnswerStats{
		TotalQuestions:       total,
		CompletedQuestions:   completed,
		CompletionPercentage: percentage,
		CreatedAt:            record.CreatedAt,
		UpdatedAt:            record.UpdatedAt,
	}, nil
}

func (s *AnswerService) saveMerged(ctx context.Context, userID string, newAnswers map[string]string) (AnswerRecord, bool, error) {
	for attempt := 0; attempt < s.maxSaveAttempts; attempt++ {
		current, err := s.store.Get(ctx, userID)
		exists := err == nil
		if err != nil && !errors.Is(err, ErrRecordNotFound) {
			return AnswerRecord{}, false, storeFailure(err)
		}

		merged := make(map[string]string, len(current.Answers)+len(newAnswers))
		for questionID, answerText := range current.Answers {
			merged[questionID] = answerText
		}
		for questionID, answerText := range newAnswers {
			merged[questionID] = answerText
		}

		now := s.now().UTC()
		record := AnswerRecord{
			ID:             current.ID,
			UserID:         userID,
			Answers:        merged,
			TotalQuestions: len(merged),
			CreatedAt:      now,
			UpdatedAt:      now,
			Revision:       current.Revision,
		}
		if exists {
			record.CreatedAt = current.CreatedAt
		}

		saved, err := s.store.Save(ctx, record)
		if err == nil {
			return saved, !exists, nil
		}
		if !errors.Is(err, ErrRevisionMismatch) {
			return AnswerRecord{}, false, storeFailure(err)
		}
		// Another writer committed between our read and replace, merge
		// again on top of the newer revision.
	}
	return AnswerRecord{}, false, ErrSaveConflict
}

func storeFailure(err error) error {
	return fmt.Errorf("%w: %s", ErrStoreUnavailable, err.Error())
}
