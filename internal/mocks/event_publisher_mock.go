package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"babystory-server/internal/messaging"
	"babystory-server/internal/service"
)

// MockEventPublisher is a mock type for the EventPublisher type
type MockEventPublisher struct {
	mock.Mock
}

// PublishStoryEvent provides a mock function with given fields: ctx, event
func (_m *MockEventPublisher) PublishStoryEvent(ctx context.Context, event messaging.StoryEvent) error {
	ret := _m.Called(ctx, event)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, messaging.StoryEvent) error); ok {
		r0 = rf(ctx, event)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockEventPublisher creates a new instance of MockEventPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Helper()
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.EventPublisher = (*MockEventPublisher)(nil)
