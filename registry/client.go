package registry

import (
	"context"
	"encoding/json"

	"github.com/ruteri/contract-registry-client/interfaces"
	"github.com/ruteri/contract-registry-client/transport"
)

// ContractRegistryClient implements the interfaces.ContractRegistry interface
// on top of a unary-call transport. It holds no state besides the transport
// and is safe for concurrent use when the transport is.
type ContractRegistryClient struct {
	transport interfaces.Transport
	conn      *transport.GRPCTransport
}

// NewContractRegistryClient dials the registry service at endpoint (host:port)
// and returns a client owning the connection.
func NewContractRegistryClient(endpoint string, opts transport.DialOptions) (*ContractRegistryClient, error) {
	conn, err := transport.Dial(endpoint, opts)
	if err != nil {
		return nil, err
	}

	return &ContractRegistryClient{
		transport: conn,
		conn:      conn,
	}, nil
}

// NewContractRegistryClientWithTransport creates a client over an existing transport.
// The caller keeps ownership of the transport.
func NewContractRegistryClientWithTransport(t interfaces.Transport) *ContractRegistryClient {
	return &ContractRegistryClient{transport: t}
}

// Close releases the connection if the client dialed it.
func (c *ContractRegistryClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Register stores the contract under its {name, tag} identity.
// Invalid hex bytecodes fail with a DecodeError before any call is made.
func (c *ContractRegistryClient) Register(ctx context.Context, contract *interfaces.Contract) error {
	if contract == nil {
		return ErrNilContract
	}
	wire, err := ContractToWire(contract)
	if err != nil {
		return err
	}

	req := &RegisterContractRequest{Contract: wire}
	return c.call(ctx, MethodRegisterContract, req, &RegisterContractResponse{})
}

// Deregister removes the {name, tag} entry from the catalog.
func (c *ContractRegistryClient) Deregister(ctx context.Context, name, tag string) error {
	req := &DeregisterContractRequest{ContractId: ContractIdWire{Name: name, Tag: tag}}
	return c.call(ctx, MethodDeregisterContract, req, &DeregisterContractResponse{})
}

// DeleteArtifact removes the artifact addressed by the hex bytecode hash.
func (c *ContractRegistryClient) DeleteArtifact(ctx context.Context, bytecodeHash string) error {
	hash, err := HexToBytes("bytecodeHash", bytecodeHash)
	if err != nil {
		return err
	}

	req := &DeleteArtifactRequest{BytecodeHash: hash}
	return c.call(ctx, MethodDeleteArtifact, req, &DeleteArtifactResponse{})
}

// GetCatalog returns all registered contract names as ordered by the service.
func (c *ContractRegistryClient) GetCatalog(ctx context.Context) ([]string, error) {
	resp := &GetCatalogResponse{}
	if err := c.call(ctx, MethodGetCatalog, &GetCatalogRequest{}, resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Names), nil
}

// Get fetches the full contract with decoded ABI and hex bytecodes.
func (c *ContractRegistryClient) Get(ctx context.Context, name, tag string) (*interfaces.Contract, error) {
	resp := &GetContractResponse{}
	if err := c.call(ctx, MethodGetContract, getContractRequest(name, tag), resp); err != nil {
		return nil, err
	}
	return ContractFromWire(resp.Contract)
}

// GetABI fetches only the contract ABI.
func (c *ContractRegistryClient) GetABI(ctx context.Context, name, tag string) (json.RawMessage, error) {
	resp := &GetContractABIResponse{}
	if err := c.call(ctx, MethodGetContractABI, getContractRequest(name, tag), resp); err != nil {
		return nil, err
	}
	return DecodeABI(resp.ABI)
}

// GetBytecode fetches only the contract bytecode as 0x-prefixed hex.
func (c *ContractRegistryClient) GetBytecode(ctx context.Context, name, tag string) (string, error) {
	resp := &GetContractBytecodeResponse{}
	if err := c.call(ctx, MethodGetContractBytecode, getContractRequest(name, tag), resp); err != nil {
		return "", err
	}
	return BytesToHex(resp.Bytecode), nil
}

// GetDeployedBytecode fetches only the deployed bytecode as 0x-prefixed hex.
func (c *ContractRegistryClient) GetDeployedBytecode(ctx context.Context, name, tag string) (string, error) {
	resp := &GetContractDeployedBytecodeResponse{}
	if err := c.call(ctx, MethodGetContractDeployedBytecode, getContractRequest(name, tag), resp); err != nil {
		return "", err
	}
	return BytesToHex(resp.DeployedBytecode), nil
}

// GetTags returns the tags registered for name as ordered by the service.
func (c *ContractRegistryClient) GetTags(ctx context.Context, name string) ([]string, error) {
	resp := &GetTagsResponse{}
	if err := c.call(ctx, MethodGetTags, &GetTagsRequest{Name: name}, resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Tags), nil
}

// call performs one round trip. Transport errors are returned unchanged.
func (c *ContractRegistryClient) call(ctx context.Context, method string, req, resp Message) error {
	out, err := c.transport.Call(ctx, method, req.Marshal())
	if err != nil {
		return err
	}
	return resp.Unmarshal(out)
}

func getContractRequest(name, tag string) *GetContractRequest {
	return &GetContractRequest{ContractId: ContractIdWire{Name: name, Tag: tag}}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
