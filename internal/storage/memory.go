package storage

import (
	"context"
	"sort"
	"sync"

	"fibertract/internal/model"
	"fibertract/internal/signal"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	bundles     map[string]model.BundleRecord
	runs        map[string]model.RunRecord
	history     map[string][]uint64
	painEvents  map[string][]model.PainRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.bundles = make(map[string]model.BundleRecord)
	s.runs = make(map[string]model.RunRecord)
	s.history = make(map[string][]uint64)
	s.painEvents = make(map[string][]model.PainRecord)
	return nil
}

func (s *MemoryStore) SaveBundle(_ context.Context, bundle model.BundleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := bundle
	copied.Tracts = copyTracts(bundle.Tracts)
	s.bundles[bundle.Name] = copied
	return nil
}

func (s *MemoryStore) GetBundle(_ context.Context, name string) (model.BundleRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bundle, ok := s.bundles[name]
	if !ok {
		return model.BundleRecord{}, false, nil
	}
	copied := bundle
	copied.Tracts = copyTracts(bundle.Tracts)
	return copied, true, nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.RunID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, runID string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[runID]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAtUTC != runs[j].CreatedAtUTC {
			return runs[i].CreatedAtUTC < runs[j].CreatedAtUTC
		}
		return runs[i].RunID < runs[j].RunID
	})
	return runs, nil
}

func (s *MemoryStore) SaveActivityHistory(_ context.Context, runID string, history []uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := append([]uint64(nil), history...)
	s.history[runID] = copied
	return nil
}

func (s *MemoryStore) GetActivityHistory(_ context.Context, runID string) ([]uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.history[runID]
	if !ok {
		return nil, false, nil
	}
	copied := append([]uint64(nil), history...)
	return copied, true, nil
}

func (s *MemoryStore) SavePainEvents(_ context.Context, runID string, events []model.PainRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.PainRecord, len(events))
	copy(copied, events)
	s.painEvents[runID] = copied
	return nil
}

func (s *MemoryStore) GetPainEvents(_ context.Context, runID string) ([]model.PainRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events, ok := s.painEvents[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.PainRecord, len(events))
	copy(copied, events)
	return copied, true, nil
}

func copyTracts(tracts []model.TractRecord) []model.TractRecord {
	copied := make([]model.TractRecord, len(tracts))
	copy(copied, tracts)
	for i := range copied {
		copied[i].MotorSignals = append([]signal.Signal(nil), copied[i].MotorSignals...)
		copied[i].SensorySignals = append([]int32(nil), copied[i].SensorySignals...)
		copied[i].MotorPrev = append([]signal.Signal(nil), copied[i].MotorPrev...)
		copied[i].SensoryPrev = append([]int32(nil), copied[i].SensoryPrev...)
	}
	return copied
}
