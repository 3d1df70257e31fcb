package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"babystory-server/internal/service"
)

// MockModerator is a mock type for the Moderator type
type MockModerator struct {
	mock.Mock
}

// Check provides a mock function with given fields: ctx, prompt
func (_m *MockModerator) Check(ctx context.Context, prompt string) error {
	ret := _m.Called(ctx, prompt)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, prompt)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockModerator creates a new instance of MockModerator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockModerator(t interface {
	mock.TestingT
	Helper()
}) *MockModerator {
	m := &MockModerator{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.Moderator = (*MockModerator)(nil)
