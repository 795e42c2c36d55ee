package registry_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteri/contract-registry-client/interfaces"
	"github.com/ruteri/contract-registry-client/registry"
	"github.com/ruteri/contract-registry-client/registry/registrytest"
	"github.com/ruteri/contract-registry-client/transport"
)

func setupRegistry(t *testing.T) (*registry.ContractRegistryClient, *registrytest.Server, *registrytest.MemoryRegistry) {
	t.Helper()
	backend := registrytest.NewMemoryRegistry()
	srv := registrytest.NewServer(backend)
	t.Cleanup(srv.Close)

	client, err := srv.Client()
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, srv, backend
}

func testContract(name, tag string) *interfaces.Contract {
	return &interfaces.Contract{
		ID:               interfaces.ContractId{Name: name, Tag: tag},
		ABI:              []byte(`[{"type":"function","name":"name","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"}]`),
		Bytecode:         "0xfefe",
		DeployedBytecode: "0xdede",
	}
}

func TestRegistry_RegisterThenGet(t *testing.T) {
	client, srv, _ := setupRegistry(t)
	ctx := context.Background()

	for _, id := range []interfaces.ContractId{
		{Name: "myContract", Tag: "1"},
		{Name: "myContract", Tag: ""},
		{Name: "Token", Tag: "v2.0.0"},
	} {
		registered := testContract(id.Name, id.Tag)
		require.NoError(t, client.Register(ctx, registered))

		contract, err := client.Get(ctx, id.Name, id.Tag)
		require.NoError(t, err)
		assert.True(t, contract.ID.Equal(id))
		assert.JSONEq(t, string(registered.ABI), string(contract.ABI))
		assert.Equal(t, registered.Bytecode, contract.Bytecode)
		assert.Equal(t, registered.DeployedBytecode, contract.DeployedBytecode)

		abi, err := client.GetABI(ctx, id.Name, id.Tag)
		require.NoError(t, err)
		assert.JSONEq(t, string(registered.ABI), string(abi))

		bytecode, err := client.GetBytecode(ctx, id.Name, id.Tag)
		require.NoError(t, err)
		assert.Equal(t, "0xfefe", bytecode)

		deployed, err := client.GetDeployedBytecode(ctx, id.Name, id.Tag)
		require.NoError(t, err)
		assert.Equal(t, "0xdede", deployed)
	}

	// one remote call per operation
	assert.EqualValues(t, 3, srv.Calls("RegisterContract"))
	assert.EqualValues(t, 3, srv.Calls("GetContract"))
	assert.EqualValues(t, 3, srv.Calls("GetContractABI"))
	assert.EqualValues(t, 3, srv.Calls("GetContractBytecode"))
	assert.EqualValues(t, 3, srv.Calls("GetContractDeployedBytecode"))

	parsed, err := (&interfaces.Contract{ABI: testContract("x", "").ABI}).ParsedABI()
	require.NoError(t, err)
	assert.Contains(t, parsed.Methods, "name")
}

func TestRegistry_Catalog(t *testing.T) {
	client, _, _ := setupRegistry(t)
	ctx := context.Background()

	catalog, err := client.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, catalog)

	names := []string{"alpha", "beta", "gamma"}
	for _, name := range names {
		require.NoError(t, client.Register(ctx, testContract(name, "1")))
	}

	catalog, err = client.GetCatalog(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, names, catalog)
}

func TestRegistry_Tags(t *testing.T) {
	client, _, _ := setupRegistry(t)
	ctx := context.Background()

	for _, tag := range []string{"1.0.0", "1.2.0", "latest"} {
		require.NoError(t, client.Register(ctx, testContract("contract1", tag)))
	}
	require.NoError(t, client.Register(ctx, testContract("contract2", "9.9.9")))

	tags, err := client.GetTags(ctx, "contract1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0.0", "1.2.0", "latest"}, tags)

	latest, ok := registry.LatestTag(tags)
	require.True(t, ok)
	assert.Equal(t, "1.2.0", latest)

	tags, err = client.GetTags(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestRegistry_ServiceFailures(t *testing.T) {
	client, _, _ := setupRegistry(t)
	ctx := context.Background()

	require.NoError(t, client.Register(ctx, testContract("dup", "1")))

	err := client.Register(ctx, testContract("dup", "1"))
	require.Error(t, err)
	assert.True(t, transport.IsTransportError(err))
	assert.True(t, transport.IsAlreadyExists(err))

	err = client.Deregister(ctx, "missing", "1")
	assert.True(t, transport.IsNotFound(err))

	_, err = client.Get(ctx, "dup", "2")
	assert.True(t, transport.IsNotFound(err))

	_, err = client.GetABI(ctx, "dup", "")
	assert.True(t, transport.IsNotFound(err))
}

func TestRegistry_DeregisterKeepsArtifact(t *testing.T) {
	client, _, backend := setupRegistry(t)
	ctx := context.Background()

	contract := testContract("myContract", "1")
	require.NoError(t, client.Register(ctx, contract))

	hash, err := registry.BytecodeHash(contract.Bytecode)
	require.NoError(t, err)

	require.NoError(t, client.Deregister(ctx, "myContract", "1"))

	_, err = client.Get(ctx, "myContract", "1")
	assert.True(t, transport.IsNotFound(err))

	code, err := backend.Artifact(hash)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xfe, 0xfe}, code)

	require.NoError(t, client.DeleteArtifact(ctx, hash))
	_, err = backend.Artifact(hash)
	assert.ErrorIs(t, err, registrytest.ErrArtifactNotFound)

	catalog, err := client.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, catalog)
}

func TestRegistry_ConcurrentCalls(t *testing.T) {
	client, srv, _ := setupRegistry(t)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- client.Register(ctx, testContract(fmt.Sprintf("contract-%d", i), "1"))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	catalog, err := client.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, n)
	assert.EqualValues(t, n, srv.Calls("RegisterContract"))
}

func TestRegistry_CanceledContext(t *testing.T) {
	client, srv, _ := setupRegistry(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetCatalog(ctx)
	require.Error(t, err)
	assert.True(t, transport.IsTransportError(err))
	assert.EqualValues(t, 0, srv.Calls("GetCatalog"))
}
