package registry

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

// ServiceName is the fully-qualified name of the remote registry service.
const ServiceName = "contractregistry.ContractRegistry"

// Fully-qualified method paths of the registry service.
const (
	MethodRegisterContract            = ServiceName + "/RegisterContract"
	MethodDeregisterContract          = ServiceName + "/DeregisterContract"
	MethodDeleteArtifact              = ServiceName + "/DeleteArtifact"
	MethodGetCatalog                  = ServiceName + "/GetCatalog"
	MethodGetContract                 = ServiceName + "/GetContract"
	MethodGetContractABI              = ServiceName + "/GetContractABI"
	MethodGetContractBytecode         = ServiceName + "/GetContractBytecode"
	MethodGetContractDeployedBytecode = ServiceName + "/GetContractDeployedBytecode"
	MethodGetTags                     = ServiceName + "/GetTags"
)

// Message is a registry wire message.
// Marshal is deterministic: fields are written in ascending field number order,
// empty scalars are omitted and embedded messages are always written.
// Unmarshal skips unknown fields and leaves missing fields at their zero value.
type Message interface {
	Marshal() []byte
	Unmarshal(b []byte) error
}

// ContractIdWire is the wire form of interfaces.ContractId.
type ContractIdWire struct {
	Name string // 1
	Tag  string // 2
}

// Marshal encodes the ContractIdWire in proto3 binary form.
func (m *ContractIdWire) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Name)
	b = appendString(b, 2, m.Tag)
	return b
}

// Unmarshal decodes a proto3 binary ContractIdWire into m.
func (m *ContractIdWire) Unmarshal(b []byte) error {
	return decodeFields("ContractId", b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Name)
		case 2:
			return consumeString(typ, b, &m.Tag)
		}
		return 0, nil
	})
}

// ContractWire is the wire form of interfaces.Contract.
type ContractWire struct {
	ID               ContractIdWire // 1
	ABI              []byte         // 2, UTF-8 JSON text
	Bytecode         []byte         // 3
	DeployedBytecode []byte         // 4
}

// Marshal encodes the ContractWire in proto3 binary form.
func (m *ContractWire) Marshal() []byte {
	var b []byte
	b = appendMessage(b, 1, &m.ID)
	b = appendBytes(b, 2, m.ABI)
	b = appendBytes(b, 3, m.Bytecode)
	b = appendBytes(b, 4, m.DeployedBytecode)
	return b
}

// Unmarshal decodes a proto3 binary ContractWire into m.
func (m *ContractWire) Unmarshal(b []byte) error {
	return decodeFields("Contract", b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeMessage(typ, b, &m.ID)
		case 2:
			return consumeBytes(typ, b, &m.ABI)
		case 3:
			return consumeBytes(typ, b, &m.Bytecode)
		case 4:
			return consumeBytes(typ, b, &m.DeployedBytecode)
		}
		return 0, nil
	})
}

// empty carries no fields; it backs every acknowledgement message and GetCatalogRequest.
type empty struct{}

// Marshal encodes the empty message as no bytes.
func (*empty) Marshal() []byte { return nil }

// Unmarshal accepts any well-formed message, skipping all fields.
func (*empty) Unmarshal(b []byte) error {
	return decodeFields("empty message", b, func(protowire.Number, protowire.Type, []byte) (int, error) {
		return 0, nil
	})
}

type (
	RegisterContractResponse   struct{ empty }
	DeregisterContractResponse struct{ empty }
	DeleteArtifactResponse     struct{ empty }
	GetCatalogRequest          struct{ empty }
)

type RegisterContractRequest struct {
	Contract ContractWire // 1
}

// Marshal encodes the RegisterContractRequest in proto3 binary form.
func (m *RegisterContractRequest) Marshal() []byte {
	return appendMessage(nil, 1, &m.Contract)
}

// Unmarshal decodes a proto3 binary RegisterContractRequest into m.
func (m *RegisterContractRequest) Unmarshal(b []byte) error {
	return decodeFields("RegisterContractRequest", b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeMessage(typ, b, &m.Contract)
		}
		return 0, nil
	})
}

type DeregisterContractRequest struct {
	ContractId ContractIdWire // 1
}

// Marshal encodes the DeregisterContractRequest in proto3 binary form.
func (m *DeregisterContractRequest) Marshal() []byte {
	return appendMessage(nil, 1, &m.ContractId)
}

// Unmarshal decodes a proto3 binary DeregisterContractRequest into m.
func (m *DeregisterContractRequest) Unmarshal(b []byte) error {
	return decodeFields("DeregisterContractRequest", b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeMessage(typ, b, &m.ContractId)
		}
		return 0, nil
	})
}

type DeleteArtifactRequest struct {
	BytecodeHash []byte // 1
}

// Marshal encodes the DeleteArtifactRequest in proto3 binary form.
func (m *DeleteArtifactRequest) Marshal() []byte {
	return appendBytes(nil, 1, m.BytecodeHash)
}

// Unmarshal decodes a proto3 binary DeleteArtifactRequest into m.
func (m *DeleteArtifactRequest) Unmarshal(b []byte) error {
	return decodeFields("DeleteArtifactRequest", b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeBytes(typ, b, &m.BytecodeHash)
		}
		return 0, nil
	})
}

type GetCatalogResponse struct {
	Names []string // 1
}

// Marshal encodes the GetCatalogResponse in proto3 binary form.
func (m *GetCatalogResponse) Marshal() []byte {
	return appendRepeatedString(nil, 1, m.Names)
}

// Unmarshal decodes a proto3 binary GetCatalogResponse into m.
func (m *GetCatalogResponse) Unmarshal(b []byte) error {
	return decodeFields("GetCatalogResponse", b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeRepeatedString(typ, b, &m.Names)
		}
		return 0, nil
	})
}

// GetContractRequest addresses a contract by identity. GetContract,
// GetContractABI, GetContractBytecode and GetContractDeployedBytecode all send it.
type GetContractRequest struct {
	ContractId ContractIdWire // 1
}

// GetContractABIRequest is the request of GetContractABI.
type GetContractABIRequest = GetContractRequest

// Marshal encodes the GetContractRequest in proto3 binary form.
func (m *GetContractRequest) Marshal() []byte {
	return appendMessage(nil, 1, &m.ContractId)
}

// Unmarshal decodes a proto3 binary GetContractRequest into m.
func (m *GetContractRequest) Unmarshal(b []byte) error {
	return decodeFields("GetContractRequest", b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeMessage(typ, b, &m.ContractId)
		}
		return 0, nil
	})
}

type GetContractResponse struct {
	Contract ContractWire // 1
}

// Marshal encodes the GetContractResponse in proto3 binary form.
func (m *GetContractResponse) Marshal() []byte {
	return appendMessage(nil, 1, &m.Contract)
}

// Unmarshal decodes a proto3 binary GetContractResponse into m.
func (m *GetContractResponse) Unmarshal(b []byte) error {
	return decodeFields("GetContractResponse", b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeMessage(typ, b, &m.Contract)
		}
		return 0, nil
	})
}

type GetContractABIResponse struct {
	ABI []byte // 1
}

// Marshal encodes the GetContractABIResponse in proto3 binary form.
func (m *GetContractABIResponse) Marshal() []byte {
	return appendBytes(nil, 1, m.ABI)
}

// Unmarshal decodes a proto3 binary GetContractABIResponse into m.
func (m *GetContractABIResponse) Unmarshal(b []byte) error {
	return decodeFields("GetContractABIResponse", b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeBytes(typ, b, &m.ABI)
		}
		return 0, nil
	})
}

type GetContractBytecodeResponse struct {
	Bytecode []byte // 1
}

// Marshal encodes the GetContractBytecodeResponse in proto3 binary form.
func (m *GetContractBytecodeResponse) Marshal() []byte {
	return appendBytes(nil, 1, m.Bytecode)
}

// Unmarshal decodes a proto3 binary GetContractBytecodeResponse into m.
func (m *GetContractBytecodeResponse) Unmarshal(b []byte) error {
	return decodeFields("GetContractBytecodeResponse", b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeBytes(typ, b, &m.Bytecode)
		}
		return 0, nil
	})
}

type GetContractDeployedBytecodeResponse struct {
	DeployedBytecode []byte // 1
}

// Marshal encodes the GetContractDeployedBytecodeResponse in proto3 binary form.
func (m *GetContractDeployedBytecodeResponse) Marshal() []byte {
	return appendBytes(nil, 1, m.DeployedBytecode)
}

// Unmarshal decodes a proto3 binary GetContractDeployedBytecodeResponse into m.
func (m *GetContractDeployedBytecodeResponse) Unmarshal(b []byte) error {
	return decodeFields("GetContractDeployedBytecodeResponse", b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeBytes(typ, b, &m.DeployedBytecode)
		}
		return 0, nil
	})
}

type GetTagsRequest struct {
	Name string // 1
}

// Marshal encodes the GetTagsRequest in proto3 binary form.
func (m *GetTagsRequest) Marshal() []byte {
	return appendString(nil, 1, m.Name)
}

// Unmarshal decodes a proto3 binary GetTagsRequest into m.
func (m *GetTagsRequest) Unmarshal(b []byte) error {
	return decodeFields("GetTagsRequest", b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.Name)
		}
		return 0, nil
	})
}

type GetTagsResponse struct {
	Tags []string // 1
}

// Marshal encodes the GetTagsResponse in proto3 binary form.
func (m *GetTagsResponse) Marshal() []byte {
	return appendRepeatedString(nil, 1, m.Tags)
}

// Unmarshal decodes a proto3 binary GetTagsResponse into m.
func (m *GetTagsResponse) Unmarshal(b []byte) error {
	return decodeFields("GetTagsResponse", b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeRepeatedString(typ, b, &m.Tags)
		}
		return 0, nil
	})
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendRepeatedString(b []byte, num protowire.Number, vs []string) []byte {
	for _, v := range vs {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, v)
	}
	return b
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.Marshal())
}

// fieldFunc consumes the value of one field and reports how many bytes it used.
// Zero means the field is unknown and is skipped.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

func decodeFields(message string, b []byte, field fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return &DecodeError{Field: message, Err: protowire.ParseError(n)}
		}
		b = b[n:]

		n, err := field(num, typ, b)
		if err != nil {
			var decodeErr *DecodeError
			if errors.As(err, &decodeErr) {
				return err
			}
			return &DecodeError{Field: message, Err: err}
		}
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return &DecodeError{Field: message, Err: protowire.ParseError(n)}
			}
		}
		b = b[n:]
	}
	return nil
}

// consumeLengthDelimited returns n == 0 when the field is not length-delimited,
// so that decodeFields skips it as an unknown field.
func consumeLengthDelimited(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, nil
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeString(typ protowire.Type, b []byte, dst *string) (int, error) {
	v, n, err := consumeLengthDelimited(typ, b)
	if err != nil || n == 0 {
		return 0, err
	}
	*dst = string(v)
	return n, nil
}

func consumeRepeatedString(typ protowire.Type, b []byte, dst *[]string) (int, error) {
	v, n, err := consumeLengthDelimited(typ, b)
	if err != nil || n == 0 {
		return 0, err
	}
	*dst = append(*dst, string(v))
	return n, nil
}

func consumeBytes(typ protowire.Type, b []byte, dst *[]byte) (int, error) {
	v, n, err := consumeLengthDelimited(typ, b)
	if err != nil || n == 0 {
		return 0, err
	}
	*dst = append([]byte(nil), v...)
	return n, nil
}

func consumeMessage(typ protowire.Type, b []byte, dst Message) (int, error) {
	v, n, err := consumeLengthDelimited(typ, b)
	if err != nil || n == 0 {
		return 0, err
	}
	if err := dst.Unmarshal(v); err != nil {
		return 0, err
	}
	return n, nil
}
