package registry

import (
	"context"
	"encoding/json"

	"github.com/ruteri/contract-registry-client/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockTransport mocks the Transport interface
type MockTransport struct {
	mock.Mock
}

// Call mocks the Call method
func (m *MockTransport) Call(ctx context.Context, method string, request []byte) ([]byte, error) {
	args := m.Called(ctx, method, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockRegistry mocks the ContractRegistry interface
type MockRegistry struct {
	mock.Mock
}

// Register mocks the Register method
func (m *MockRegistry) Register(ctx context.Context, contract *interfaces.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

// Deregister mocks the Deregister method
func (m *MockRegistry) Deregister(ctx context.Context, name, tag string) error {
	args := m.Called(ctx, name, tag)
	return args.Error(0)
}

// DeleteArtifact mocks the DeleteArtifact method
func (m *MockRegistry) DeleteArtifact(ctx context.Context, bytecodeHash string) error {
	args := m.Called(ctx, bytecodeHash)
	return args.Error(0)
}

// GetCatalog mocks the GetCatalog method
func (m *MockRegistry) GetCatalog(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// GetTags mocks the GetTags method
func (m *MockRegistry) GetTags(ctx context.Context, name string) ([]string, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Get mocks the Get method
func (m *MockRegistry) Get(ctx context.Context, name, tag string) (*interfaces.Contract, error) {
	args := m.Called(ctx, name, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.Contract), args.Error(1)
}

// GetABI mocks the GetABI method
func (m *MockRegistry) GetABI(ctx context.Context, name, tag string) (json.RawMessage, error) {
	args := m.Called(ctx, name, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// GetBytecode mocks the GetBytecode method
func (m *MockRegistry) GetBytecode(ctx context.Context, name, tag string) (string, error) {
	args := m.Called(ctx, name, tag)
	return args.String(0), args.Error(1)
}

// GetDeployedBytecode mocks the GetDeployedBytecode method
func (m *MockRegistry) GetDeployedBytecode(ctx context.Context, name, tag string) (string, error) {
	args := m.Called(ctx, name, tag)
	return args.String(0), args.Error(1)
}
