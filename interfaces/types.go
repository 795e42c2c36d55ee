package interfaces

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ErrEmptyContractName is returned when a ContractId carries no name.
var ErrEmptyContractName = errors.New("contract name must not be empty")

// ContractId addresses one registered contract artifact set.
// An empty tag is a valid identity, distinct from any non-empty tag.
type ContractId struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// NewContractId creates a contract identity, rejecting an empty name.
func NewContractId(name, tag string) (ContractId, error) {
	id := ContractId{Name: name, Tag: tag}
	if err := id.Validate(); err != nil {
		return ContractId{}, err
	}
	return id, nil
}

// Validate checks that the identity has a name.
func (id ContractId) Validate() error {
	if id.Name == "" {
		return ErrEmptyContractName
	}
	return nil
}

// Equal compares both fields byte for byte.
func (id ContractId) Equal(other ContractId) bool {
	return id.Name == other.Name && id.Tag == other.Tag
}

// String returns the name:tag representation.
func (id ContractId) String() string {
	return id.Name + ":" + id.Tag
}

// Contract is the client-side view of a registered contract.
// ABI is opaque JSON text; bytecodes are 0x-prefixed hex strings.
type Contract struct {
	ID               ContractId      `json:"id"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`
}

// ParsedABI interprets the stored ABI as an Ethereum contract ABI.
// The registry itself never requires this to succeed.
func (c *Contract) ParsedABI() (abi.ABI, error) {
	parsed, err := abi.JSON(bytes.NewReader(c.ABI))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("could not parse ABI of %s: %w", c.ID, err)
	}
	return parsed, nil
}
