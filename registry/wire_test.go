package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

// field encodes a length-delimited field with a single-byte tag.
func field(num byte, payload []byte) []byte {
	b := []byte{num<<3 | byte(protowire.BytesType)}
	b = protowire.AppendVarint(b, uint64(len(payload)))
	return append(b, payload...)
}

func concat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

func TestContractIdWire_Marshal(t *testing.T) {
	id := &ContractIdWire{Name: "myContract", Tag: "tag"}
	expected := []byte{
		0x0a, 0x0a, 'm', 'y', 'C', 'o', 'n', 't', 'r', 'a', 'c', 't',
		0x12, 0x03, 't', 'a', 'g',
	}
	assert.Equal(t, expected, id.Marshal())

	// the empty tag is omitted on the wire and decodes back to ""
	empty := &ContractIdWire{Name: "myContract"}
	assert.Equal(t, expected[:12], empty.Marshal())

	var decoded ContractIdWire
	require.NoError(t, decoded.Unmarshal(expected[:12]))
	assert.Equal(t, ContractIdWire{Name: "myContract"}, decoded)
}

func TestRequests_Marshal(t *testing.T) {
	id := ContractIdWire{Name: "myContract", Tag: "tag"}

	tests := []struct {
		name     string
		msg      Message
		expected []byte
	}{
		{
			name:     "DeregisterContractRequest",
			msg:      &DeregisterContractRequest{ContractId: id},
			expected: field(1, id.Marshal()),
		},
		{
			name:     "DeleteArtifactRequest",
			msg:      &DeleteArtifactRequest{BytecodeHash: []byte{0xfe, 0xfe}},
			expected: []byte{0x0a, 0x02, 0xfe, 0xfe},
		},
		{
			name:     "GetCatalogRequest",
			msg:      &GetCatalogRequest{},
			expected: nil,
		},
		{
			name:     "GetContractRequest",
			msg:      &GetContractRequest{ContractId: id},
			expected: field(1, id.Marshal()),
		},
		{
			name:     "GetContractRequest with empty identity",
			msg:      &GetContractRequest{},
			expected: []byte{0x0a, 0x00},
		},
		{
			name:     "GetTagsRequest",
			msg:      &GetTagsRequest{Name: "contract1"},
			expected: field(1, []byte("contract1")),
		},
		{
			name: "RegisterContractRequest",
			msg: &RegisterContractRequest{Contract: ContractWire{
				ID:               ContractIdWire{Name: "myContract", Tag: "1"},
				ABI:              []byte(mockABIText),
				Bytecode:         []byte{0xfe, 0xfe},
				DeployedBytecode: []byte{0xde, 0xde},
			}},
			expected: field(1, concat(
				field(1, concat(field(1, []byte("myContract")), field(2, []byte("1")))),
				field(2, []byte(mockABIText)),
				field(3, []byte{0xfe, 0xfe}),
				field(4, []byte{0xde, 0xde}),
			)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := tt.msg.Marshal()
			assert.Equal(t, tt.expected, encoded)
			// deterministic
			assert.Equal(t, encoded, tt.msg.Marshal())
		})
	}
}

func TestResponses_Unmarshal(t *testing.T) {
	t.Run("GetTagsResponse keeps order", func(t *testing.T) {
		var resp GetTagsResponse
		require.NoError(t, resp.Unmarshal(concat(field(1, []byte("tag1")), field(1, []byte("tag2")))))
		assert.Equal(t, []string{"tag1", "tag2"}, resp.Tags)
	})

	t.Run("GetCatalogResponse empty", func(t *testing.T) {
		var resp GetCatalogResponse
		require.NoError(t, resp.Unmarshal(nil))
		assert.Empty(t, resp.Names)
	})

	t.Run("GetCatalogResponse keeps duplicates", func(t *testing.T) {
		var resp GetCatalogResponse
		require.NoError(t, resp.Unmarshal(concat(field(1, []byte("b")), field(1, []byte("a")), field(1, []byte("b")))))
		assert.Equal(t, []string{"b", "a", "b"}, resp.Names)
	})

	t.Run("GetContractResponse", func(t *testing.T) {
		var resp GetContractResponse
		data := field(1, concat(
			field(1, concat(field(1, []byte("myContract")), field(2, []byte("tag")))),
			field(2, []byte(mockABIText)),
			field(3, []byte{0xfe, 0xfe}),
			field(4, []byte{0xde, 0xde}),
		))
		require.NoError(t, resp.Unmarshal(data))
		assert.Equal(t, ContractWire{
			ID:               ContractIdWire{Name: "myContract", Tag: "tag"},
			ABI:              []byte(mockABIText),
			Bytecode:         []byte{0xfe, 0xfe},
			DeployedBytecode: []byte{0xde, 0xde},
		}, resp.Contract)
	})

	t.Run("acknowledgements accept empty payloads", func(t *testing.T) {
		for _, msg := range []Message{&RegisterContractResponse{}, &DeregisterContractResponse{}, &DeleteArtifactResponse{}} {
			assert.NoError(t, msg.Unmarshal(nil))
			assert.NoError(t, msg.Unmarshal([]byte{}))
			assert.Empty(t, msg.Marshal())
		}
	})
}

func TestUnmarshal_SkipsUnknownFields(t *testing.T) {
	var data []byte
	data = protowire.AppendTag(data, 7, protowire.VarintType)
	data = protowire.AppendVarint(data, 300)
	data = append(data, field(1, []byte{0x01, 0x02})...)
	data = protowire.AppendTag(data, 9, protowire.Fixed64Type)
	data = protowire.AppendFixed64(data, 42)
	data = append(data, field(15, []byte("future"))...)

	var resp GetContractBytecodeResponse
	require.NoError(t, resp.Unmarshal(data))
	assert.Equal(t, []byte{0x01, 0x02}, resp.Bytecode)
}

func TestUnmarshal_SkipsKnownFieldWithWrongWireType(t *testing.T) {
	var abi GetContractABIResponse
	require.NoError(t, abi.Unmarshal([]byte{0x08, 0x05}))
	assert.Empty(t, abi.ABI)

	// a mistyped occurrence does not clobber a well-typed one
	var id ContractIdWire
	data := concat(field(1, []byte("myContract")), []byte{0x08, 0x01}, []byte{0x15, 0x01, 0x02, 0x03, 0x04})
	require.NoError(t, id.Unmarshal(data))
	assert.Equal(t, ContractIdWire{Name: "myContract"}, id)

	var tags GetTagsResponse
	require.NoError(t, tags.Unmarshal(concat(field(1, []byte("1")), []byte{0x08, 0x02}, field(1, []byte("2")))))
	assert.Equal(t, []string{"1", "2"}, tags.Tags)

	var resp GetContractResponse
	require.NoError(t, resp.Unmarshal([]byte{0x09, 0, 0, 0, 0, 0, 0, 0, 0}))
	assert.Equal(t, ContractWire{}, resp.Contract)
}

func TestUnmarshal_MissingFields(t *testing.T) {
	var resp GetContractResponse
	require.NoError(t, resp.Unmarshal(field(1, nil)))
	assert.Equal(t, ContractWire{}, resp.Contract)

	var abi GetContractABIResponse
	require.NoError(t, abi.Unmarshal(nil))
	assert.Empty(t, abi.ABI)
}

func TestUnmarshal_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		msg  Message
	}{
		{name: "truncated length", data: []byte{0x0a, 0x05, 'a'}, msg: &GetTagsResponse{}},
		{name: "truncated tag", data: []byte{0x80}, msg: &GetCatalogResponse{}},
		{name: "truncated nested message", data: []byte{0x0a, 0x02, 0x0a, 0x05}, msg: &GetContractResponse{}},
		{name: "field number zero", data: []byte{0x02, 0x00}, msg: &DeleteArtifactResponse{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Unmarshal(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestMessages_RoundTrip(t *testing.T) {
	contract := ContractWire{
		ID:               ContractIdWire{Name: "myContract", Tag: "v1.0.0"},
		ABI:              []byte(mockABIText),
		Bytecode:         []byte{0x60, 0x80, 0x60, 0x40},
		DeployedBytecode: []byte{0x60, 0x80},
	}

	in := &RegisterContractRequest{Contract: contract}
	out := &RegisterContractRequest{}
	require.NoError(t, out.Unmarshal(in.Marshal()))
	assert.Equal(t, in, out)

	tags := &GetTagsResponse{Tags: []string{"", "1", "latest"}}
	decodedTags := &GetTagsResponse{}
	require.NoError(t, decodedTags.Unmarshal(tags.Marshal()))
	assert.Equal(t, tags, decodedTags)
}
