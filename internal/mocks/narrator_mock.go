package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"babystory-server/internal/service"
)

// MockNarrator is a mock type for the Narrator type
type MockNarrator struct {
	mock.Mock
}

// Build provides a mock function with given fields: ctx, storyText
func (_m *MockNarrator) Build(ctx context.Context, storyText string) (string, error) {
	ret := _m.Called(ctx, storyText)

	var r0 string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, storyText)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockNarrator creates a new instance of MockNarrator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockNarrator(t interface {
	mock.TestingT
	Helper()
}) *MockNarrator {
	m := &MockNarrator{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.Narrator = (*MockNarrator)(nil)
