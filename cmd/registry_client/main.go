package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ruteri/contract-registry-client/cmd/flags"
	"github.com/ruteri/contract-registry-client/registry"
)

var flagName *cli.StringFlag = &cli.StringFlag{
	Name:     "name",
	Required: true,
	Usage:    "contract name",
}
var flagTag *cli.StringFlag = &cli.StringFlag{
	Name:  "tag",
	Usage: "contract tag; the empty tag is a valid identity of its own",
}
var flagLatest *cli.BoolFlag = &cli.BoolFlag{
	Name:  "latest",
	Usage: "resolve the greatest semver tag of the contract instead of --tag",
}
var flagArtifact *cli.StringFlag = &cli.StringFlag{
	Name:  "artifact",
	Usage: "compiler artifact JSON file with abi, bytecode and deployedBytecode fields",
}
var flagABIFile *cli.StringFlag = &cli.StringFlag{
	Name:  "abi-file",
	Usage: "JSON ABI file, overrides the artifact ABI",
}
var flagBytecode *cli.StringFlag = &cli.StringFlag{
	Name:  "bytecode",
	Usage: "0x-prefixed hex bytecode, overrides the artifact bytecode",
}
var flagDeployedBytecode *cli.StringFlag = &cli.StringFlag{
	Name:  "deployed-bytecode",
	Usage: "0x-prefixed hex deployed bytecode, overrides the artifact deployed bytecode",
}
var flagHash *cli.StringFlag = &cli.StringFlag{
	Name:  "hash",
	Usage: "0x-prefixed hex bytecode hash of the artifact to delete",
}

const usage string = "Register, inspect and remove contracts in a remote contract registry"

func main() {
	app := &cli.App{
		Name:  "registry-client",
		Usage: usage,
		Flags: append(flags.ClientFlags, flags.CommonFlags...),
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "register a contract under name and tag",
				Flags: []cli.Flag{flagName, flagTag, flagArtifact, flagABIFile, flagBytecode, flagDeployedBytecode},
				Action: withClient(func(cCtx *cli.Context, c *Client) error {
					contract, err := LoadContract(cCtx.String(flagName.Name), cCtx.String(flagTag.Name), ContractSources{
						ArtifactPath:     cCtx.String(flagArtifact.Name),
						ABIPath:          cCtx.String(flagABIFile.Name),
						Bytecode:         cCtx.String(flagBytecode.Name),
						DeployedBytecode: cCtx.String(flagDeployedBytecode.Name),
					})
					if err != nil {
						return err
					}
					return c.Register(cCtx.Context, contract)
				}),
			},
			{
				Name:  "deregister",
				Usage: "remove the name and tag entry",
				Flags: []cli.Flag{flagName, flagTag},
				Action: withClient(func(cCtx *cli.Context, c *Client) error {
					return c.Deregister(cCtx.Context, cCtx.String(flagName.Name), cCtx.String(flagTag.Name))
				}),
			},
			{
				Name:        "delete-artifact",
				Usage:       "delete bytecode stored under its hash",
				Description: "Pass --hash, or --bytecode to delete the artifact of that bytecode by its keccak256 hash.",
				Flags:       []cli.Flag{flagHash, flagBytecode},
				Action: withClient(func(cCtx *cli.Context, c *Client) error {
					return c.DeleteArtifact(cCtx.Context, cCtx.String(flagHash.Name), cCtx.String(flagBytecode.Name))
				}),
			},
			{
				Name:  "catalog",
				Usage: "list registered contract names",
				Action: withClient(func(cCtx *cli.Context, c *Client) error {
					return c.Catalog(cCtx.Context)
				}),
			},
			{
				Name:  "tags",
				Usage: "list the tags of a contract",
				Flags: []cli.Flag{flagName},
				Action: withClient(func(cCtx *cli.Context, c *Client) error {
					return c.Tags(cCtx.Context, cCtx.String(flagName.Name))
				}),
			},
			{
				Name:  "get",
				Usage: "fetch a full contract",
				Flags: []cli.Flag{flagName, flagTag, flagLatest},
				Action: withClient(func(cCtx *cli.Context, c *Client) error {
					return c.Get(cCtx.Context, FetchContract, identity(cCtx))
				}),
			},
			{
				Name:  "abi",
				Usage: "fetch a contract ABI",
				Flags: []cli.Flag{flagName, flagTag, flagLatest},
				Action: withClient(func(cCtx *cli.Context, c *Client) error {
					return c.Get(cCtx.Context, FetchABI, identity(cCtx))
				}),
			},
			{
				Name:  "bytecode",
				Usage: "fetch a contract bytecode",
				Flags: []cli.Flag{flagName, flagTag, flagLatest},
				Action: withClient(func(cCtx *cli.Context, c *Client) error {
					return c.Get(cCtx.Context, FetchBytecode, identity(cCtx))
				}),
			},
			{
				Name:  "deployed-bytecode",
				Usage: "fetch a contract deployed bytecode",
				Flags: []cli.Flag{flagName, flagTag, flagLatest},
				Action: withClient(func(cCtx *cli.Context, c *Client) error {
					return c.Get(cCtx.Context, FetchDeployedBytecode, identity(cCtx))
				}),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func identity(cCtx *cli.Context) Identity {
	return Identity{
		Name:   cCtx.String(flagName.Name),
		Tag:    cCtx.String(flagTag.Name),
		Latest: cCtx.Bool(flagLatest.Name),
	}
}

// withClient dials the registry for the duration of one command.
func withClient(action func(cCtx *cli.Context, c *Client) error) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		logger := flags.SetupLogger(cCtx)

		endpoint, opts, err := flags.ConfigureClient(cCtx)
		if err != nil {
			return err
		}

		registryClient, err := registry.NewContractRegistryClient(endpoint, opts)
		if err != nil {
			return err
		}
		defer registryClient.Close()

		logger.Debug("connected to contract registry", "endpoint", endpoint, "command", cCtx.Command.Name)
		return action(cCtx, NewClient(registryClient, os.Stdout, logger))
	}
}
