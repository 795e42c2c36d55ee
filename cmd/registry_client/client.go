package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ruteri/contract-registry-client/interfaces"
	"github.com/ruteri/contract-registry-client/registry"
)

var (
	ErrNoSemverTag     = errors.New("no semver tag registered")
	ErrNoArtifactHash  = errors.New("either --hash or --bytecode is required")
	ErrAmbiguousTarget = errors.New("--hash and --bytecode are exclusive")
)

// FetchKind selects which registry fetch a get-style command performs.
type FetchKind int

const (
	FetchContract FetchKind = iota
	FetchABI
	FetchBytecode
	FetchDeployedBytecode
)

// Identity is a contract identity as given on the command line.
type Identity struct {
	Name   string
	Tag    string
	Latest bool
}

type Client struct {
	Registry interfaces.ContractRegistry
	Out      io.Writer
	Log      *slog.Logger
}

func NewClient(r interfaces.ContractRegistry, out io.Writer, log *slog.Logger) *Client {
	return &Client{Registry: r, Out: out, Log: log}
}

func (c *Client) Register(ctx context.Context, contract *interfaces.Contract) error {
	if err := c.Registry.Register(ctx, contract); err != nil {
		return fmt.Errorf("registration of %s failed: %w", contract.ID, err)
	}
	c.Log.Info("contract registered", "name", contract.ID.Name, "tag", contract.ID.Tag)
	return c.print(contract.ID)
}

func (c *Client) Deregister(ctx context.Context, name, tag string) error {
	if err := c.Registry.Deregister(ctx, name, tag); err != nil {
		return fmt.Errorf("deregistration of %s:%s failed: %w", name, tag, err)
	}
	c.Log.Info("contract deregistered", "name", name, "tag", tag)
	return nil
}

// DeleteArtifact deletes by explicit hash, or by the keccak256 hash of bytecode.
func (c *Client) DeleteArtifact(ctx context.Context, hash, bytecode string) error {
	switch {
	case hash != "" && bytecode != "":
		return ErrAmbiguousTarget
	case hash == "" && bytecode == "":
		return ErrNoArtifactHash
	case bytecode != "":
		var err error
		hash, err = registry.BytecodeHash(bytecode)
		if err != nil {
			return err
		}
	}

	if err := c.Registry.DeleteArtifact(ctx, hash); err != nil {
		return fmt.Errorf("artifact deletion failed: %w", err)
	}
	c.Log.Info("artifact deleted", "hash", hash)
	return nil
}

func (c *Client) Catalog(ctx context.Context) error {
	names, err := c.Registry.GetCatalog(ctx)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	return c.print(names)
}

func (c *Client) Tags(ctx context.Context, name string) error {
	tags, err := c.Registry.GetTags(ctx, name)
	if err != nil {
		return fmt.Errorf("tags request failed: %w", err)
	}
	return c.print(tags)
}

func (c *Client) Get(ctx context.Context, kind FetchKind, id Identity) error {
	tag := id.Tag
	if id.Latest {
		tags, err := c.Registry.GetTags(ctx, id.Name)
		if err != nil {
			return fmt.Errorf("tags request failed: %w", err)
		}
		latest, ok := registry.LatestTag(tags)
		if !ok {
			return fmt.Errorf("%s: %w", id.Name, ErrNoSemverTag)
		}
		c.Log.Debug("resolved latest tag", "name", id.Name, "tag", latest)
		tag = latest
	}

	var (
		result any
		err    error
	)
	switch kind {
	case FetchContract:
		result, err = c.Registry.Get(ctx, id.Name, tag)
	case FetchABI:
		result, err = c.Registry.GetABI(ctx, id.Name, tag)
	case FetchBytecode:
		result, err = c.Registry.GetBytecode(ctx, id.Name, tag)
	case FetchDeployedBytecode:
		result, err = c.Registry.GetDeployedBytecode(ctx, id.Name, tag)
	default:
		return fmt.Errorf("unknown fetch kind %d", kind)
	}
	if err != nil {
		return fmt.Errorf("fetching %s:%s failed: %w", id.Name, tag, err)
	}
	return c.print(result)
}

func (c *Client) print(v any) error {
	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ContractSources names where register reads the contract parts from.
// Explicit ABI file and bytecode flags override the artifact fields.
type ContractSources struct {
	ArtifactPath     string
	ABIPath          string
	Bytecode         string
	DeployedBytecode string
}

// compilerArtifact is the subset of a Hardhat-style artifact file used here.
type compilerArtifact struct {
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`
}

// LoadContract assembles a contract to register from files and flag values.
func LoadContract(name, tag string, src ContractSources) (*interfaces.Contract, error) {
	id, err := interfaces.NewContractId(name, tag)
	if err != nil {
		return nil, err
	}
	contract := &interfaces.Contract{ID: id}

	if src.ArtifactPath != "" {
		data, err := os.ReadFile(src.ArtifactPath)
		if err != nil {
			return nil, fmt.Errorf("could not read artifact: %w", err)
		}
		var artifact compilerArtifact
		if err := json.Unmarshal(data, &artifact); err != nil {
			return nil, fmt.Errorf("could not parse artifact %s: %w", src.ArtifactPath, err)
		}
		contract.ABI = artifact.ABI
		contract.Bytecode = artifact.Bytecode
		contract.DeployedBytecode = artifact.DeployedBytecode
	}

	if src.ABIPath != "" {
		data, err := os.ReadFile(src.ABIPath)
		if err != nil {
			return nil, fmt.Errorf("could not read ABI: %w", err)
		}
		abi, err := registry.DecodeABI(data)
		if err != nil {
			return nil, err
		}
		contract.ABI = abi
	}
	if src.Bytecode != "" {
		contract.Bytecode = src.Bytecode
	}
	if src.DeployedBytecode != "" {
		contract.DeployedBytecode = src.DeployedBytecode
	}

	if len(contract.ABI) == 0 {
		return nil, errors.New("no ABI given, use --artifact or --abi-file")
	}
	if _, err := contract.ParsedABI(); err != nil {
		return nil, err
	}
	if contract.Bytecode == "" || contract.DeployedBytecode == "" {
		return nil, errors.New("bytecode and deployed bytecode are required")
	}
	return contract, nil
}
