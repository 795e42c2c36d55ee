package transport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRawCodec(t *testing.T) {
	codec := RawCodec{}
	assert.Equal(t, "proto", codec.Name())

	b, err := codec.Marshal([]byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, b)

	in := []byte{0x03}
	b, err = codec.Marshal(&in)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03}, b)

	_, err = codec.Marshal("not bytes")
	assert.Error(t, err)

	data := []byte{0x0a, 0x00}
	var out []byte
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.Equal(t, data, out)

	// the decoded message must not alias the transport buffer
	data[0] = 0xff
	assert.Equal(t, byte(0x0a), out[0])

	var wrong string
	assert.Error(t, codec.Unmarshal(data, &wrong))
}

func TestTransportError(t *testing.T) {
	cause := status.Error(codes.AlreadyExists, "duplicate")
	err := error(&TransportError{Method: "svc/Register", Err: cause})

	assert.Equal(t, "call svc/Register: rpc error: code = AlreadyExists desc = duplicate", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsTransportError(err))
	assert.True(t, IsAlreadyExists(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	plain := &TransportError{Method: "svc/Get", Err: errors.New("connection reset")}
	assert.Equal(t, codes.Unknown, plain.Code())
	assert.False(t, IsNotFound(plain))

	assert.False(t, IsTransportError(errors.New("other")))
}
