package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/WandLZhang/chinese-conversation/internal/domain"
	"github.com/WandLZhang/chinese-conversation/internal/speech"
	"github.com/WandLZhang/chinese-conversation/internal/store"
)

// fakeVocabStore implements store.VocabStore in memory and records writes.
type fakeVocabStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.VocabularyItem

	updateErr   error
	masteredErr error

	reviewWrites   []reviewWrite
	masteredWrites []masteredWrite
}

type reviewWrite struct {
	id      uuid.UUID
	variant domain.Variant
	next    *time.Time
}

type masteredWrite struct {
	id       uuid.UUID
	variant  domain.Variant
	mastered bool
}

func newFakeVocabStore(items ...*domain.VocabularyItem) *fakeVocabStore {
	s := &fakeVocabStore{items: make(map[uuid.UUID]*domain.VocabularyItem)}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

func (s *fakeVocabStore) GetItem(_ context.Context, id uuid.UUID) (*domain.VocabularyItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (s *fakeVocabStore) UpdateNextReview(_ context.Context, id uuid.UUID, variant domain.Variant, next *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	if _, ok := s.items[id]; !ok {
		return store.ErrItemNotFound
	}
	s.reviewWrites = append(s.reviewWrites, reviewWrite{id: id, variant: variant, next: next})
	return nil
}

func (s *fakeVocabStore) SetMastered(_ context.Context, id uuid.UUID, variant domain.Variant, mastered bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.masteredErr != nil {
		return s.masteredErr
	}
	if _, ok := s.items[id]; !ok {
		return store.ErrItemNotFound
	}
	s.masteredWrites = append(s.masteredWrites, masteredWrite{id: id, variant: variant, mastered: mastered})
	return nil
}

var _ store.VocabStore = (*fakeVocabStore)(nil)

// fakeJudge returns scripted replies in order.
type fakeJudge struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   int
}

func (f *fakeJudge) Complete(_ context.Context, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.calls
	f.calls++
	var err error
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	reply := ""
	if idx < len(f.replies) {
		reply = f.replies[idx]
	}
	return reply, err
}

// fakeSynthesizer implements speech.Synthesizer.
type fakeSynthesizer struct {
	audio []byte
	err   error
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, _ string, _ domain.Variant) ([]byte, error) {
	return f.audio, f.err
}

var _ speech.Synthesizer = (*fakeSynthesizer)(nil)

// testItem builds a vocabulary item with both variants populated.
func testItem() *domain.VocabularyItem {
	return &domain.VocabularyItem{
		ID:         uuid.New(),
		Simplified: "漂亮",
		Mandarin:   "她真漂亮",
		Cantonese:  "佢好靚",
	}
}

const verdictJSON = `{
	"fluent": true,
	"meaningful_usage": true,
	"has_fillers": false,
	"romanization": "keoi5 hou2 leng3",
	"improved_answer": "佢好靚",
	"feedback": "Good answer."
}`
