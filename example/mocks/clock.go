// Package mocks holds testify mocks for the example models.
package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

type MockClock struct {
	mock.Mock
}

func NewMockClock() *MockClock {
	return &MockClock{}
}

func (m *MockClock) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}
