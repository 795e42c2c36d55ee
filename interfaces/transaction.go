package interfaces

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
)

var (
	ErrMissingRequestID  = errors.New("transaction request: missing id")
	ErrMissingChain      = errors.New("transaction request: missing chain")
	ErrMissingMethod     = errors.New("transaction request: contract call without method signature")
	ErrConflictingTarget = errors.New("transaction request: both 'to' and contract name set")
	ErrPrivateRecipients = errors.New("transaction request: privateFor and privacyGroupId are exclusive")
)

// TransactionRequest is a transaction to be sent against a chain, possibly
// calling a contract resolved from the registry by {ContractName, ContractTag}.
// Fields are grouped by concern; a request carries all of them flat.
type TransactionRequest struct {
	// Request metadata
	ID     string            `json:"id"`
	Labels map[string]string `json:"labels,omitempty"`

	// Transaction fields
	From     *common.Address `json:"from,omitempty"`
	To       *common.Address `json:"to,omitempty"`
	Nonce    *hexutil.Uint64 `json:"nonce,omitempty"`
	Gas      *hexutil.Uint64 `json:"gas,omitempty"`
	GasPrice *hexutil.Big    `json:"gasPrice,omitempty"`
	Value    *hexutil.Big    `json:"value,omitempty"`
	Data     hexutil.Bytes   `json:"data,omitempty"`

	// Call fields
	ContractName    string        `json:"contractName,omitempty"`
	ContractTag     string        `json:"contractTag,omitempty"`
	MethodSignature string        `json:"methodSignature,omitempty"`
	Args            []interface{} `json:"args,omitempty"`

	// Chain fields
	ChainName string `json:"chainName,omitempty"`
	ChainUUID string `json:"chainUUID,omitempty"`

	// Private transaction fields
	Protocol       string   `json:"protocol,omitempty"`
	PrivateFrom    string   `json:"privateFrom,omitempty"`
	PrivateFor     []string `json:"privateFor,omitempty"`
	PrivacyGroupID string   `json:"privacyGroupId,omitempty"`
}

// NewTransactionRequest creates a request with a fresh random id.
func NewTransactionRequest(chainName string) *TransactionRequest {
	return &TransactionRequest{
		ID:        uuid.Must(uuid.NewRandom()).String(),
		ChainName: chainName,
	}
}

// ContractID returns the registry identity targeted by the call fields, if any.
func (r *TransactionRequest) ContractID() (ContractId, bool) {
	if r.ContractName == "" {
		return ContractId{}, false
	}
	return ContractId{Name: r.ContractName, Tag: r.ContractTag}, true
}

// Validate checks the required fields of every field group.
func (r *TransactionRequest) Validate() error {
	if r.ID == "" {
		return ErrMissingRequestID
	}
	if r.ChainName == "" && r.ChainUUID == "" {
		return ErrMissingChain
	}
	if r.ContractName != "" {
		if r.MethodSignature == "" {
			return ErrMissingMethod
		}
		if r.To != nil {
			return ErrConflictingTarget
		}
	}
	if len(r.PrivateFor) > 0 && r.PrivacyGroupID != "" {
		return ErrPrivateRecipients
	}
	if r.PrivateFrom != "" && r.Protocol == "" {
		return fmt.Errorf("transaction request %s: private transaction without protocol", r.ID)
	}
	return nil
}
