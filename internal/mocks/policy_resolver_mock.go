package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"babystory-server/internal/models"
	"babystory-server/internal/service"
)

// MockPolicyResolver is a mock type for the PolicyResolver type
type MockPolicyResolver struct {
	mock.Mock
}

// Resolve provides a mock function with given fields: ctx, userID
func (_m *MockPolicyResolver) Resolve(ctx context.Context, userID uuid.UUID) (models.EffectivePolicy, error) {
	ret := _m.Called(ctx, userID)

	var r0 models.EffectivePolicy
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) models.EffectivePolicy); ok {
		r0 = rf(ctx, userID)
	} else {
		r0 = ret.Get(0).(models.EffectivePolicy)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, userID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockPolicyResolver creates a new instance of MockPolicyResolver. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockPolicyResolver(t interface {
	mock.TestingT
	Helper()
}) *MockPolicyResolver {
	m := &MockPolicyResolver{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ service.PolicyResolver = (*MockPolicyResolver)(nil)
