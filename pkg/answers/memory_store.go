package answers

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store implementation intended for tests and
// local development. It enforces the same revision based conditional replace
// semantics as the MongoDB backed store.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]AnswerRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]AnswerRecord{}}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (AnswerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[userID]
	if !ok {
		return AnswerRecord{}, ErrRecordNotFound
	}
	return cloneRecord(record), nil
}

func (s *MemoryStore) Save(_ context.Context, record AnswerRecord) (AnswerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[record.UserID]
	if record.Revision == 0 {
		if ok {
			return AnswerRecord{}, ErrRevisionMismatch
		}
	} else if !ok || current.Revision != record.Revision {
		return AnswerRecord{}, ErrRevisionMismatch
	}

	record.Revision++
	s.records[record.UserID] = cloneRecord(record)
	return cloneRecord(record), nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, userID)
	return nil
}

func cloneRecord(record AnswerRecord) AnswerRecord {
	out := record
	if record.Answers == nil {
		return out
	}
	out.Answers = make(map[string]string, len(record.Answers))
	for questionID, answerText := range record.Answers {
		out.Answers[questionID] = answerText
	}
	return out
}
