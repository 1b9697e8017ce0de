package dispatcher

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/warrenchain/pkg/chainnode"
	"github.com/cuemby/warrenchain/pkg/mempool"
	"github.com/cuemby/warrenchain/pkg/storage"
	"github.com/cuemby/warrenchain/pkg/types"
)

func newTestService(t *testing.T) Service[Command, Response] {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chain.db")
	store, err := storage.CreateOrOpen(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	node, err := chainnode.Genesis(store, mempool.New(100), 100, [types.ExtraDataLen]byte{})
	require.NoError(t, err)

	return Build(node, Config{Timeout: time.Second}, zerolog.Nop())
}

func addr(id byte) types.Address {
	var a types.Address
	for i := range a {
		a[i] = id
	}
	return a
}

func TestGetBalanceThenSubmitTx(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, b := addr(1), addr(2)

	_, err := svc.Call(ctx, GetBalance{Addr: a})
	require.NoError(t, err)

	resp, err := svc.Call(ctx, SubmitTx{Tx: types.NewTransaction(a, b, types.Uint256FromUint64(1), nil)})
	require.NoError(t, err)
	assert.Equal(t, OKResponse(), resp)
}

func TestGetBalanceDefaultsToZero(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.Call(context.Background(), GetBalance{Addr: addr(5)})
	require.NoError(t, err)
	assert.True(t, resp.Balance.IsZero())
}

func TestGetNonceDefaultsToZero(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.Call(context.Background(), GetNonce{Addr: addr(5)})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), resp.Nonce)
}

func TestMineBlockReturnsOK(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Call(ctx, MineBlock{ExtraData: [types.ExtraDataLen]byte{1}})
	require.NoError(t, err)
	assert.Equal(t, OKResponse(), resp)
}

func TestTimeoutLayerBoundsSlowCalls(t *testing.T) {
	slow := ServiceFunc[Command, Response](func(ctx context.Context, req Command) (Response, error) {
		select {
		case <-time.After(50 * time.Millisecond):
			return OKResponse(), nil
		case <-ctx.Done():
			return Response{}, ctx.Err()
		}
	})

	bounded := WithTimeout[Command, Response](slow, 5*time.Millisecond)
	_, err := bounded.Call(context.Background(), MineBlock{})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestTimeoutLayerPassesThroughFastCalls(t *testing.T) {
	fast := ServiceFunc[Command, Response](func(ctx context.Context, req Command) (Response, error) {
		return OKResponse(), nil
	})

	bounded := WithTimeout[Command, Response](fast, time.Second)
	resp, err := bounded.Call(context.Background(), MineBlock{})
	require.NoError(t, err)
	assert.Equal(t, OKResponse(), resp)
}

func TestUnknownCommandErrors(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Call(context.Background(), unknownCommand{})
	assert.Error(t, err)
}

type unknownCommand struct{}

func (unknownCommand) Name() string    { return "unknown" }
func (unknownCommand) Summary() string { return "unknown" }
