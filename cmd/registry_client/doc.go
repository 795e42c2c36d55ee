// Package main (cmd/registry_client) implements a command-line client for a
// remote Contract Registry service.
//
// Every command dials the endpoint given by --endpoint (or the "endpoint" key
// of the --config TOML file), performs its registry calls and prints the
// result as JSON on stdout. Logs go to stderr.
//
//	register          - register ABI, bytecode and deployed bytecode under --name/--tag,
//	                    read from a compiler --artifact and/or individual flags
//	deregister        - remove the --name/--tag entry; the bytecode artifact may remain
//	delete-artifact   - delete bytecode by --hash, or by the keccak256 of --bytecode
//	catalog           - list registered contract names
//	tags              - list the tags of --name
//	get, abi,
//	bytecode,
//	deployed-bytecode - fetch a contract or one of its parts; --latest picks the
//	                    greatest semver tag instead of --tag
//
// Example config file:
//
//	endpoint = "registry.internal:50051"
//	call_timeout = "10s"
//	max_msg_bytes = 16777216
package main
