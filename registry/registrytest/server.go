// Package registrytest provides an in-memory Contract Registry service
// speaking the registry wire schema over gRPC, for use in tests.
package registrytest

import (
	"context"
	"errors"
	"net"

	"go.uber.org/atomic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/ruteri/contract-registry-client/interfaces"
	"github.com/ruteri/contract-registry-client/registry"
	"github.com/ruteri/contract-registry-client/transport"
)

// Service exposes an interfaces.ContractRegistry backend as the
// contractregistry.ContractRegistry gRPC service.
type Service struct {
	Backend interfaces.ContractRegistry

	calls map[string]*atomic.Int64
}

// NewService creates a service over backend.
func NewService(backend interfaces.ContractRegistry) *Service {
	s := &Service{Backend: backend, calls: make(map[string]*atomic.Int64)}
	for _, m := range s.methods() {
		s.calls[m.name] = atomic.NewInt64(0)
	}
	return s
}

// Calls returns how many requests the method ("RegisterContract", ...) has received.
func (s *Service) Calls(method string) int64 {
	counter, ok := s.calls[method]
	if !ok {
		return 0
	}
	return counter.Load()
}

type method struct {
	name    string
	handler func(ctx context.Context, in []byte) (registry.Message, error)
}

func (s *Service) methods() []method {
	return []method{
		{"RegisterContract", s.registerContract},
		{"DeregisterContract", s.deregisterContract},
		{"DeleteArtifact", s.deleteArtifact},
		{"GetCatalog", s.getCatalog},
		{"GetContract", s.getContract},
		{"GetContractABI", s.getContractABI},
		{"GetContractBytecode", s.getContractBytecode},
		{"GetContractDeployedBytecode", s.getContractDeployedBytecode},
		{"GetTags", s.getTags},
	}
}

// ServiceDesc describes the service with raw-bytes handlers. Servers using it
// must be created with grpc.ForceServerCodec(transport.RawCodec{}).
func (s *Service) ServiceDesc() *grpc.ServiceDesc {
	desc := &grpc.ServiceDesc{
		ServiceName: registry.ServiceName,
		HandlerType: (*interface{})(nil),
		Streams:     []grpc.StreamDesc{},
		Metadata:    "contractregistry.proto",
	}
	for _, m := range s.methods() {
		desc.Methods = append(desc.Methods, grpc.MethodDesc{
			MethodName: m.name,
			Handler:    s.unaryHandler(m),
		})
	}
	return desc
}

// Register registers the service on a gRPC server.
func (s *Service) Register(srv grpc.ServiceRegistrar) {
	srv.RegisterService(s.ServiceDesc(), s)
}

// unaryHandler has the signature of grpc.MethodDesc.Handler.
func (s *Service) unaryHandler(m method) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	fullMethod := "/" + registry.ServiceName + "/" + m.name
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		var in []byte
		if err := dec(&in); err != nil {
			return nil, err
		}
		s.calls[m.name].Inc()

		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			out, err := m.handler(ctx, req.([]byte))
			if err != nil {
				return nil, mapErr(err)
			}
			return out.Marshal(), nil
		}
		if interceptor == nil {
			return handler(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, handler)
	}
}

func (s *Service) registerContract(ctx context.Context, in []byte) (registry.Message, error) {
	req := &registry.RegisterContractRequest{}
	if err := req.Unmarshal(in); err != nil {
		return nil, err
	}
	contract, err := registry.ContractFromWire(req.Contract)
	if err != nil {
		return nil, err
	}
	if err := s.Backend.Register(ctx, contract); err != nil {
		return nil, err
	}
	return &registry.RegisterContractResponse{}, nil
}

func (s *Service) deregisterContract(ctx context.Context, in []byte) (registry.Message, error) {
	req := &registry.DeregisterContractRequest{}
	if err := req.Unmarshal(in); err != nil {
		return nil, err
	}
	if err := s.Backend.Deregister(ctx, req.ContractId.Name, req.ContractId.Tag); err != nil {
		return nil, err
	}
	return &registry.DeregisterContractResponse{}, nil
}

func (s *Service) deleteArtifact(ctx context.Context, in []byte) (registry.Message, error) {
	req := &registry.DeleteArtifactRequest{}
	if err := req.Unmarshal(in); err != nil {
		return nil, err
	}
	if err := s.Backend.DeleteArtifact(ctx, registry.BytesToHex(req.BytecodeHash)); err != nil {
		return nil, err
	}
	return &registry.DeleteArtifactResponse{}, nil
}

func (s *Service) getCatalog(ctx context.Context, in []byte) (registry.Message, error) {
	req := &registry.GetCatalogRequest{}
	if err := req.Unmarshal(in); err != nil {
		return nil, err
	}
	names, err := s.Backend.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return &registry.GetCatalogResponse{Names: names}, nil
}

func (s *Service) getContract(ctx context.Context, in []byte) (registry.Message, error) {
	req := &registry.GetContractRequest{}
	if err := req.Unmarshal(in); err != nil {
		return nil, err
	}
	contract, err := s.Backend.Get(ctx, req.ContractId.Name, req.ContractId.Tag)
	if err != nil {
		return nil, err
	}
	wire, err := registry.ContractToWire(contract)
	if err != nil {
		return nil, err
	}
	return &registry.GetContractResponse{Contract: wire}, nil
}

func (s *Service) getContractABI(ctx context.Context, in []byte) (registry.Message, error) {
	req := &registry.GetContractABIRequest{}
	if err := req.Unmarshal(in); err != nil {
		return nil, err
	}
	abi, err := s.Backend.GetABI(ctx, req.ContractId.Name, req.ContractId.Tag)
	if err != nil {
		return nil, err
	}
	encoded, err := registry.EncodeABI(abi)
	if err != nil {
		return nil, err
	}
	return &registry.GetContractABIResponse{ABI: encoded}, nil
}

func (s *Service) getContractBytecode(ctx context.Context, in []byte) (registry.Message, error) {
	req := &registry.GetContractRequest{}
	if err := req.Unmarshal(in); err != nil {
		return nil, err
	}
	bytecode, err := s.Backend.GetBytecode(ctx, req.ContractId.Name, req.ContractId.Tag)
	if err != nil {
		return nil, err
	}
	code, err := registry.HexToBytes("bytecode", bytecode)
	if err != nil {
		return nil, err
	}
	return &registry.GetContractBytecodeResponse{Bytecode: code}, nil
}

func (s *Service) getContractDeployedBytecode(ctx context.Context, in []byte) (registry.Message, error) {
	req := &registry.GetContractRequest{}
	if err := req.Unmarshal(in); err != nil {
		return nil, err
	}
	bytecode, err := s.Backend.GetDeployedBytecode(ctx, req.ContractId.Name, req.ContractId.Tag)
	if err != nil {
		return nil, err
	}
	code, err := registry.HexToBytes("deployedBytecode", bytecode)
	if err != nil {
		return nil, err
	}
	return &registry.GetContractDeployedBytecodeResponse{DeployedBytecode: code}, nil
}

func (s *Service) getTags(ctx context.Context, in []byte) (registry.Message, error) {
	req := &registry.GetTagsRequest{}
	if err := req.Unmarshal(in); err != nil {
		return nil, err
	}
	tags, err := s.Backend.GetTags(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	return &registry.GetTagsResponse{Tags: tags}, nil
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, ErrContractNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrContractExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, registry.ErrDecode), errors.Is(err, interfaces.ErrEmptyContractName):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// Server runs a Service on an in-process bufconn listener.
type Server struct {
	*Service

	lis *bufconn.Listener
	srv *grpc.Server
}

// NewServer starts a gRPC server for backend. A nil backend gets a fresh MemoryRegistry.
func NewServer(backend interfaces.ContractRegistry) *Server {
	if backend == nil {
		backend = NewMemoryRegistry()
	}

	s := &Server{
		Service: NewService(backend),
		lis:     bufconn.Listen(1024 * 1024),
		srv:     grpc.NewServer(grpc.ForceServerCodec(transport.RawCodec{})),
	}
	s.Service.Register(s.srv)

	go func() {
		_ = s.srv.Serve(s.lis)
	}()
	return s
}

// Client returns a registry client connected to the server.
func (s *Server) Client() (*registry.ContractRegistryClient, error) {
	dialer := func(ctx context.Context, _ string) (net.Conn, error) { return s.lis.DialContext(ctx) }
	return registry.NewContractRegistryClient("passthrough:///bufnet", transport.DialOptions{
		DialOptions: []grpc.DialOption{grpc.WithContextDialer(dialer)},
	})
}

// Close stops the server.
func (s *Server) Close() {
	s.srv.Stop()
}
