// Package registry provides a client for a remote Contract Registry service
// that stores smart-contract artifacts (ABI, bytecode, deployed bytecode)
// under a {name, tag} identity, alongside a content-addressed store of
// bytecode keyed by its keccak256 hash.
//
// The package implements the interfaces.ContractRegistry interface. Each
// operation maps onto exactly one unary call of the
// contractregistry.ContractRegistry service:
//
//	Register            -> RegisterContract
//	Deregister          -> DeregisterContract
//	DeleteArtifact      -> DeleteArtifact
//	GetCatalog          -> GetCatalog
//	Get                 -> GetContract
//	GetABI              -> GetContractABI
//	GetBytecode         -> GetContractBytecode
//	GetDeployedBytecode -> GetContractDeployedBytecode
//	GetTags             -> GetTags
//
// # Wire format
//
// Messages are proto3 binary encoded by hand (see wire.go and
// proto/contractregistry.proto). The ABI travels as the UTF-8 bytes of its
// JSON text; bytecodes and hashes travel as raw bytes and are exposed to
// callers as lowercase 0x-prefixed hex.
//
// # Errors
//
// Transport failures, including failure statuses returned by the service,
// are returned unchanged. Responses that cannot be decoded yield a
// *DecodeError matching ErrDecode, and no partial result.
//
// # Usage
//
//	client, err := registry.NewContractRegistryClient("registry:50051", transport.DialOptions{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	abi, err := client.GetABI(ctx, "myContract", "1")
//
// The registrytest subpackage runs an in-memory service for tests.
package registry
