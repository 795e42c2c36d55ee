// Package transport provides the unary-call primitive the registry client
// depends on, implemented over gRPC with pre-encoded message bytes.
package transport

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// GRPCTransport implements interfaces.Transport over a gRPC connection.
// A single connection is shared by all calls; it is safe for concurrent use.
type GRPCTransport struct {
	cc   grpc.ClientConnInterface
	conn *grpc.ClientConn

	// CallTimeout applies per call when non-zero. Otherwise only the
	// caller's context bounds the call.
	CallTimeout time.Duration
}

// DialOptions configures the connection made by Dial.
type DialOptions struct {
	// CallTimeout applies per call when non-zero.
	CallTimeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int

	// DialOptions are appended to the defaults, e.g. a context dialer in tests.
	DialOptions []grpc.DialOption
}

// Dial creates a transport for target (host:port). The connection is
// established lazily on the first call.
func Dial(target string, opts DialOptions) (*GRPCTransport, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}
	dialOpts = append(dialOpts, opts.DialOptions...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &GRPCTransport{cc: conn, conn: conn, CallTimeout: opts.CallTimeout}, nil
}

// Close closes the connection opened by Dial. It is safe to call on a nil transport.
func (t *GRPCTransport) Close() error {
	if t == nil || t.conn == nil {
		return nil
	}
	return t.conn.Close()
}

// Call invokes method ("<package>.<Service>/<Method>") with the encoded request
// and returns the encoded response. Failures are returned as *TransportError.
func (t *GRPCTransport) Call(ctx context.Context, method string, request []byte) ([]byte, error) {
	if t.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.CallTimeout)
		defer cancel()
	}

	var reply []byte
	if err := t.cc.Invoke(ctx, "/"+method, request, &reply, grpc.ForceCodec(RawCodec{})); err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}
	return reply, nil
}
