package service

import (
	"fmt"
	"sync"
)

// IngestionMetrics tracks a single ingestion run. It is safe for
// concurrent use since races within a card are analyzed in parallel.
type IngestionMetrics struct {
	mu               sync.Mutex
	TotalRaces       int
	SuccessfulRaces  int
	TotalHorses      int
	Duplicates       int
	ValidationErrors int
	Errors           int
}

func (m *IngestionMetrics) RecordRace(horses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TotalRaces++
	m.TotalHorses += horses
}

func (m *IngestionMetrics) RecordSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuccessfulRaces++
}

func (m *IngestionMetrics) RecordDuplicate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duplicates++
}

func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

func (m *IngestionMetrics) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("races=%d successful=%d horses=%d duplicates=%d validation_errors=%d errors=%d",
		m.TotalRaces, m.SuccessfulRaces, m.TotalHorses, m.Duplicates, m.ValidationErrors, m.Errors)
}
