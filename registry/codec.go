package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ruteri/contract-registry-client/interfaces"
)

// EncodeABI serializes an ABI descriptor as compact UTF-8 JSON text.
// HTML characters are left unescaped. The output is semantically equal to
// JSON.stringify of the same value but not always byte-equal: U+2028 and
// U+2029 are escaped, and a json.RawMessage keeps its number text as written
// (1.0 stays 1.0, 1e2 stays 1e2).
func EncodeABI(abi any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(abi); err != nil {
		return nil, fmt.Errorf("could not encode ABI: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodeABI validates ABI bytes as UTF-8 JSON text and returns them as a raw JSON value.
// The shape of the ABI is not checked.
func DecodeABI(data []byte) (json.RawMessage, error) {
	if !utf8.Valid(data) {
		return nil, &DecodeError{Field: "abi", Err: errInvalidUTF8}
	}
	if !json.Valid(data) {
		return nil, &DecodeError{Field: "abi", Err: errInvalidJSON}
	}
	return json.RawMessage(bytes.Clone(data)), nil
}

// HexToBytes decodes a 0x-prefixed hex string.
func HexToBytes(field, hex string) ([]byte, error) {
	b, err := hexutil.Decode(hex)
	if err != nil {
		return nil, &DecodeError{Field: field, Err: err}
	}
	return b, nil
}

// BytesToHex encodes bytes as lowercase 0x-prefixed hex. Empty input yields "0x".
func BytesToHex(b []byte) string {
	return hexutil.Encode(b)
}

// BytecodeHash returns the keccak256 hash of a hex bytecode as 0x-prefixed hex,
// suitable for DeleteArtifact.
func BytecodeHash(bytecode string) (string, error) {
	code, err := HexToBytes("bytecode", bytecode)
	if err != nil {
		return "", err
	}
	return crypto.Keccak256Hash(code).Hex(), nil
}

// ContractIdToWire maps a contract identity to its wire form.
func ContractIdToWire(id interfaces.ContractId) ContractIdWire {
	return ContractIdWire{Name: id.Name, Tag: id.Tag}
}

// ContractIdFromWire maps a wire identity to its client form.
func ContractIdFromWire(id ContractIdWire) interfaces.ContractId {
	return interfaces.ContractId{Name: id.Name, Tag: id.Tag}
}

// ContractToWire converts a contract into its wire message.
func ContractToWire(c *interfaces.Contract) (ContractWire, error) {
	abi, err := EncodeABI(c.ABI)
	if err != nil {
		return ContractWire{}, err
	}
	bytecode, err := HexToBytes("bytecode", c.Bytecode)
	if err != nil {
		return ContractWire{}, err
	}
	deployedBytecode, err := HexToBytes("deployedBytecode", c.DeployedBytecode)
	if err != nil {
		return ContractWire{}, err
	}

	return ContractWire{
		ID:               ContractIdToWire(c.ID),
		ABI:              abi,
		Bytecode:         bytecode,
		DeployedBytecode: deployedBytecode,
	}, nil
}

// ContractFromWire converts a wire message into a contract.
func ContractFromWire(w ContractWire) (*interfaces.Contract, error) {
	abi, err := DecodeABI(w.ABI)
	if err != nil {
		return nil, err
	}

	return &interfaces.Contract{
		ID:               ContractIdFromWire(w.ID),
		ABI:              abi,
		Bytecode:         BytesToHex(w.Bytecode),
		DeployedBytecode: BytesToHex(w.DeployedBytecode),
	}, nil
}
