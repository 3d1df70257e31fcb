package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"babystory-server/internal/models"
	"babystory-server/internal/service"
)

// MockGenerator is a mock type for the Generator type
type MockGenerator struct {
	mock.Mock
}

// GenerateStory provides a mock function with given fields: ctx, prompt, pol
func (_m *MockGenerator) GenerateStory(ctx context.Context, prompt string, pol models.EffectivePolicy) (string, error) {
	ret := _m.Called(ctx, prompt, pol)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string, models.EffectivePolicy) string); ok {
		r0 = rf(ctx, prompt, pol)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, models.EffectivePolicy) error); ok {
		r1 = rf(ctx, prompt, pol)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Summarize provides a mock function with given fields: ctx, storyText
func (_m *MockGenerator) Summarize(ctx context.Context, storyText string) (string, string, error) {
	ret := _m.Called(ctx, storyText)

	var r0 string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}

	var r1 string
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(string)
	}

	var r2 error
	if rf, ok := ret.Get(2).(func(context.Context, string) error); ok {
		r2 = rf(ctx, storyText)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// NewMockGenerator creates a new instance of MockGenerator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockGenerator(t interface {
	mock.TestingT
	Helper()
}) *MockGenerator {
	m := &MockGenerator{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.Generator = (*MockGenerator)(nil)
