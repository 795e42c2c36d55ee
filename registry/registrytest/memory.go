package registrytest

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ruteri/contract-registry-client/interfaces"
	"github.com/ruteri/contract-registry-client/registry"
)

var (
	// ErrContractNotFound is returned when no entry exists for a {name, tag} identity.
	ErrContractNotFound = errors.New("contract not found")
	// ErrContractExists is returned when registering an identity twice.
	ErrContractExists = errors.New("contract already registered")
	// ErrArtifactNotFound is returned by Artifact for unknown hashes.
	ErrArtifactNotFound = errors.New("artifact not found")
)

// MemoryRegistry provides a simple in-memory implementation of the ContractRegistry
// interface. Catalog and tag listings follow registration order.
// Bytecode artifacts are stored by keccak256 hash and survive Deregister.
type MemoryRegistry struct {
	mutex     sync.RWMutex
	contracts map[interfaces.ContractId]*interfaces.Contract
	order     []interfaces.ContractId
	artifacts map[string][]byte
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		contracts: make(map[interfaces.ContractId]*interfaces.Contract),
		artifacts: make(map[string][]byte),
	}
}

// Register stores the contract and its bytecode artifact.
func (m *MemoryRegistry) Register(ctx context.Context, contract *interfaces.Contract) error {
	if err := contract.ID.Validate(); err != nil {
		return err
	}
	code, err := registry.HexToBytes("bytecode", contract.Bytecode)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.contracts[contract.ID]; exists {
		return ErrContractExists
	}

	stored := *contract
	stored.ABI = append(json.RawMessage(nil), contract.ABI...)
	m.contracts[contract.ID] = &stored
	m.order = append(m.order, contract.ID)
	m.artifacts[crypto.Keccak256Hash(code).Hex()] = code
	return nil
}

// Deregister removes the {name, tag} entry, leaving its artifact in place.
func (m *MemoryRegistry) Deregister(ctx context.Context, name, tag string) error {
	id := interfaces.ContractId{Name: name, Tag: tag}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.contracts[id]; !exists {
		return ErrContractNotFound
	}
	delete(m.contracts, id)
	for i, existing := range m.order {
		if existing.Equal(id) {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteArtifact removes the artifact with the given hash. Unknown hashes are ignored.
func (m *MemoryRegistry) DeleteArtifact(ctx context.Context, bytecodeHash string) error {
	hash, err := registry.HexToBytes("bytecodeHash", bytecodeHash)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.artifacts, registry.BytesToHex(hash))
	return nil
}

// Artifact returns the bytecode stored under a hash.
func (m *MemoryRegistry) Artifact(bytecodeHash string) ([]byte, error) {
	hash, err := registry.HexToBytes("bytecodeHash", bytecodeHash)
	if err != nil {
		return nil, err
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	code, exists := m.artifacts[registry.BytesToHex(hash)]
	if !exists {
		return nil, ErrArtifactNotFound
	}
	return code, nil
}

// GetCatalog returns each registered name once, in first registration order.
func (m *MemoryRegistry) GetCatalog(ctx context.Context) ([]string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := []string{}
	seen := make(map[string]bool)
	for _, id := range m.order {
		if !seen[id.Name] {
			seen[id.Name] = true
			names = append(names, id.Name)
		}
	}
	return names, nil
}

// GetTags returns the tags registered under name, in registration order.
func (m *MemoryRegistry) GetTags(ctx context.Context, name string) ([]string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	tags := []string{}
	for _, id := range m.order {
		if id.Name == name {
			tags = append(tags, id.Tag)
		}
	}
	return tags, nil
}

// Get returns a copy of the stored contract.
func (m *MemoryRegistry) Get(ctx context.Context, name, tag string) (*interfaces.Contract, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	contract, exists := m.contracts[interfaces.ContractId{Name: name, Tag: tag}]
	if !exists {
		return nil, ErrContractNotFound
	}
	c := *contract
	c.ABI = append(json.RawMessage(nil), contract.ABI...)
	return &c, nil
}

func (m *MemoryRegistry) GetABI(ctx context.Context, name, tag string) (json.RawMessage, error) {
	c, err := m.Get(ctx, name, tag)
	if err != nil {
		return nil, err
	}
	return c.ABI, nil
}

func (m *MemoryRegistry) GetBytecode(ctx context.Context, name, tag string) (string, error) {
	c, err := m.Get(ctx, name, tag)
	if err != nil {
		return "", err
	}
	return c.Bytecode, nil
}

func (m *MemoryRegistry) GetDeployedBytecode(ctx context.Context, name, tag string) (string, error) {
	c, err := m.Get(ctx, name, tag)
	if err != nil {
		return "", err
	}
	return c.DeployedBytecode, nil
}
