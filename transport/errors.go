package transport

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// TransportError reports a failed unary call: connectivity, deadline, or a
// failure status returned by the service.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("call %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Code returns the gRPC status code of the failure, codes.Unknown if there is none.
func (e *TransportError) Code() codes.Code {
	return status.Code(e.Err)
}

// GRPCStatus lets status.FromError and status.Code see through the wrapper.
func (e *TransportError) GRPCStatus() *status.Status {
	st, _ := status.FromError(e.Err)
	return st
}

// IsTransportError reports whether err came from the transport.
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// IsNotFound reports whether the service rejected the call with NotFound.
func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// IsAlreadyExists reports whether the service rejected the call with AlreadyExists.
func IsAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}
