// Package interfaces defines core interfaces and types for the contract
// registry client, separating interface definitions from implementations.
//
// # Registry Interfaces
//
// ContractRegistry: the nine operations offered by the remote Contract Registry
// service (register, deregister, deleteArtifact, catalog and tag listing, and
// the four contract fetches).
//
// Transport: the single unary-call primitive the registry client depends on.
// It is implemented by the transport package over gRPC and by mocks in tests.
//
// # Types
//
//   - ContractId: the {name, tag} pair addressing one registry entry
//   - Contract: identity plus opaque JSON ABI and hex bytecodes
//   - TransactionRequest: a flat transaction request whose call fields refer
//     to registry contracts
package interfaces
