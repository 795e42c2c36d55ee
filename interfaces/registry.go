package interfaces

import (
	"context"
	"encoding/json"
)

// ContractRegistry is the operation surface of the remote Contract Registry service.
// Every method performs exactly one remote call.
type ContractRegistry interface {
	// Register stores a contract under its {name, tag} identity.
	Register(ctx context.Context, contract *Contract) error
	// Deregister removes the {name, tag} entry. Artifact bytes may outlive it.
	Deregister(ctx context.Context, name, tag string) error
	// DeleteArtifact removes artifact bytes addressed by the hex bytecode hash.
	DeleteArtifact(ctx context.Context, bytecodeHash string) error

	// GetCatalog lists registered contract names in service order.
	GetCatalog(ctx context.Context) ([]string, error)
	// GetTags lists the tags registered for a name in service order.
	GetTags(ctx context.Context, name string) ([]string, error)

	Get(ctx context.Context, name, tag string) (*Contract, error)
	GetABI(ctx context.Context, name, tag string) (json.RawMessage, error)
	GetBytecode(ctx context.Context, name, tag string) (string, error)
	GetDeployedBytecode(ctx context.Context, name, tag string) (string, error)
}

// Transport performs a unary call of a fully-qualified remote method
// ("<package>.<Service>/<Method>") with an encoded request payload.
// Implementations must be safe for concurrent use.
type Transport interface {
	Call(ctx context.Context, method string, request []byte) ([]byte, error)
}
