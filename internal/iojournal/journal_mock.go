package iojournal

import (
	"time"

	"github.com/huangsam/tempdash/internal/contract"
	"github.com/huangsam/tempdash/schema"
	"github.com/stretchr/testify/mock"
)

// MockJournalManager is a mock implementation of JournalManager for testing.
type MockJournalManager struct {
	mock.Mock
}

var _ contract.JournalManager = &MockJournalManager{} // Compile-time check

// GetJournalStore implements the JournalManager interface.
func (m *MockJournalManager) GetJournalStore() contract.JournalStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.JournalStore)
	return store
}

// MockJournalStore is a mock implementation of JournalStore for testing.
type MockJournalStore struct {
	mock.Mock
}

var _ contract.JournalStore = &MockJournalStore{} // Compile-time check

// BeginSession implements the JournalStore interface.
func (m *MockJournalStore) BeginSession(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// RecordSummary implements the JournalStore interface.
func (m *MockJournalStore) RecordSummary(sessionID int64, summary schema.SessionSummary) error {
	args := m.Called(sessionID, summary)
	return args.Error(0)
}

// EndSession implements the JournalStore interface.
func (m *MockJournalStore) EndSession(sessionID int64, endTime time.Time, totalTicks int64) error {
	args := m.Called(sessionID, endTime, totalTicks)
	return args.Error(0)
}

// GetStatus implements the JournalStore interface.
func (m *MockJournalStore) GetStatus() (schema.JournalStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.JournalStatus), args.Error(1)
}

// GetAllSessions implements the JournalStore interface.
func (m *MockJournalStore) GetAllSessions() ([]schema.SessionRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.SessionRecord)
	return records, args.Error(1)
}

// GetAllSummaries implements the JournalStore interface.
func (m *MockJournalStore) GetAllSummaries() ([]schema.SessionSummaryRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.SessionSummaryRecord)
	return records, args.Error(1)
}

// Close implements the JournalStore interface.
func (m *MockJournalStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
