package application_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenledger/tokend/internal/core/application"
	"github.com/tokenledger/tokend/internal/core/domain"
	inmemorysink "github.com/tokenledger/tokend/internal/infrastructure/event-sink/inmemory"
	ledgererrors "github.com/tokenledger/tokend/pkg/errors"
)

const (
	alice = domain.AccountId("alice")
	bob   = domain.AccountId("bob")
	carol = domain.AccountId("carol")
	dave  = domain.AccountId("dave")
)

var ctx = context.Background()

func TestAssetLifecycle(t *testing.T) {
	repo := newMockRepoManager()
	sink := inmemorysink.NewEventSink()
	svc := application.NewAssetService(repo, sink)

	assetId, err := svc.Create(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, domain.AssetId(0), assetId)

	require.NoError(t, svc.SetMetadata(ctx, alice, assetId, []byte("Gold"), []byte("GLD")))

	metadata, err := svc.GetMetadata(ctx, assetId)
	require.NoError(t, err)
	require.NotNil(t, metadata)
	assert.Equal(t, []byte("Gold"), metadata.Name)
	assert.Equal(t, []byte("GLD"), metadata.Symbol)

	require.NoError(t, svc.Mint(ctx, alice, assetId, domain.NewAmount(100), alice))
	requireSupplyMatchesBalances(t, repo, assetId)

	balance, err := svc.GetBalance(ctx, assetId, alice)
	require.NoError(t, err)
	require.True(t, balance.Equals(domain.NewAmount(100)))

	moved, err := svc.Transfer(ctx, alice, assetId, domain.NewAmount(40), bob)
	require.NoError(t, err)
	require.True(t, moved.Equals(domain.NewAmount(40)))
	requireSupplyMatchesBalances(t, repo, assetId)

	require.NoError(t, svc.Burn(ctx, alice, assetId, domain.NewAmount(30)))
	requireSupplyMatchesBalances(t, repo, assetId)

	details, err := svc.GetAsset(ctx, assetId)
	require.NoError(t, err)
	require.True(t, details.Supply.Equals(domain.NewAmount(70)))

	aliceBalance, err := svc.GetBalance(ctx, assetId, alice)
	require.NoError(t, err)
	require.True(t, aliceBalance.Equals(domain.NewAmount(30)))

	bobBalance, err := svc.GetBalance(ctx, assetId, bob)
	require.NoError(t, err)
	require.True(t, bobBalance.Equals(domain.NewAmount(40)))

	events := sink.Events(domain.AssetTopic)
	require.Len(t, events, 5)
	assert.Equal(t, domain.EventTypeAssetCreated, events[0].GetType())
	assert.Equal(t, domain.EventTypeAssetMetadataSet, events[1].GetType())
	assert.Equal(t, domain.EventTypeAssetMinted, events[2].GetType())
	assert.Equal(t, domain.EventTypeAssetTransferred, events[3].GetType())
	assert.Equal(t, domain.EventTypeAssetBurned, events[4].GetType())
}

func TestAssetIdsStrictlyIncreasing(t *testing.T) {
	repo := newMockRepoManager()
	svc := application.NewAssetService(repo, inmemorysink.NewEventSink())

	for i := 0; i < 3; i++ {
		assetId, err := svc.Create(ctx, alice)
		require.NoError(t, err)
		require.Equal(t, domain.AssetId(i), assetId)
	}
}

func TestAssetIdAllocationSaturates(t *testing.T) {
	repo := newMockRepoManager()
	svc := application.NewAssetService(repo, inmemorysink.NewEventSink())

	repo.assetRepo.nonce = math.MaxUint64

	// at the top of the id space the allocator keeps handing out the
	// same id: creation starves silently instead of failing
	first, err := svc.Create(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, domain.AssetId(math.MaxUint64), first)

	second, err := svc.Create(ctx, bob)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// the later create overwrote the record
	details, err := svc.GetAsset(ctx, first)
	require.NoError(t, err)
	require.Equal(t, bob, details.Owner)
}

func TestAssetPermissions(t *testing.T) {
	t.Run("mint_requires_ownership", func(t *testing.T) {
		repo := newMockRepoManager()
		sink := inmemorysink.NewEventSink()
		svc := application.NewAssetService(repo, sink)

		assetId, err := svc.Create(ctx, alice)
		require.NoError(t, err)
		eventsBefore := len(sink.Events(domain.AssetTopic))

		err = svc.Mint(ctx, bob, assetId, domain.NewAmount(100), bob)
		require.Error(t, err)
		require.True(t, ledgererrors.NO_PERMISSION.Is(err))

		// nothing changed, nothing published
		details, err := svc.GetAsset(ctx, assetId)
		require.NoError(t, err)
		require.True(t, details.Supply.IsZero())
		require.Len(t, sink.Events(domain.AssetTopic), eventsBefore)
	})

	t.Run("set_metadata_requires_ownership", func(t *testing.T) {
		repo := newMockRepoManager()
		svc := application.NewAssetService(repo, inmemorysink.NewEventSink())

		assetId, err := svc.Create(ctx, alice)
		require.NoError(t, err)

		err = svc.SetMetadata(ctx, bob, assetId, []byte("x"), []byte("y"))
		require.Error(t, err)
		require.True(t, ledgererrors.NO_PERMISSION.Is(err))
	})

	t.Run("unknown_asset", func(t *testing.T) {
		repo := newMockRepoManager()
		svc := application.NewAssetService(repo, inmemorysink.NewEventSink())

		err := svc.Mint(ctx, alice, 42, domain.NewAmount(1), alice)
		require.True(t, ledgererrors.ASSET_UNKNOWN.Is(err))

		err = svc.Burn(ctx, alice, 42, domain.NewAmount(1))
		require.True(t, ledgererrors.ASSET_UNKNOWN.Is(err))

		_, err = svc.Transfer(ctx, alice, 42, domain.NewAmount(1), bob)
		require.True(t, ledgererrors.ASSET_UNKNOWN.Is(err))

		err = svc.SetMetadata(ctx, alice, 42, []byte("x"), []byte("y"))
		require.True(t, ledgererrors.ASSET_UNKNOWN.Is(err))
	})
}

func TestAssetClamping(t *testing.T) {
	t.Run("transfer_clamps_to_sender_balance", func(t *testing.T) {
		repo := newMockRepoManager()
		sink := inmemorysink.NewEventSink()
		svc := application.NewAssetService(repo, sink)

		assetId, err := svc.Create(ctx, alice)
		require.NoError(t, err)
		require.NoError(t, svc.Mint(ctx, alice, assetId, domain.NewAmount(50), alice))

		moved, err := svc.Transfer(ctx, alice, assetId, domain.NewAmount(1000), bob)
		require.NoError(t, err)
		require.True(t, moved.Equals(domain.NewAmount(50)))

		events := sink.Events(domain.AssetTopic)
		transferred := events[len(events)-1].(domain.AssetTransferred)
		require.True(t, transferred.Amount.Equals(domain.NewAmount(50)))

		requireSupplyMatchesBalances(t, repo, assetId)
	})

	t.Run("burn_clamps_to_balance", func(t *testing.T) {
		repo := newMockRepoManager()
		svc := application.NewAssetService(repo, inmemorysink.NewEventSink())

		assetId, err := svc.Create(ctx, alice)
		require.NoError(t, err)
		require.NoError(t, svc.Mint(ctx, alice, assetId, domain.NewAmount(5), alice))

		require.NoError(t, svc.Burn(ctx, alice, assetId, domain.NewAmount(100)))

		details, err := svc.GetAsset(ctx, assetId)
		require.NoError(t, err)
		require.True(t, details.Supply.IsZero())

		balance, err := svc.GetBalance(ctx, assetId, alice)
		require.NoError(t, err)
		require.True(t, balance.IsZero())
	})

	t.Run("mint_saturates_at_max_supply", func(t *testing.T) {
		repo := newMockRepoManager()
		svc := application.NewAssetService(repo, inmemorysink.NewEventSink())

		assetId, err := svc.Create(ctx, alice)
		require.NoError(t, err)

		nearMax := domain.MaxAmount.Sub64(5)
		repo.assetRepo.assets[assetId] = domain.AssetDetails{Owner: alice, Supply: nearMax}
		repo.assetRepo.balances[balanceKey{assetId, alice}] = nearMax

		// only the 5 units that fit get minted and credited
		require.NoError(t, svc.Mint(ctx, alice, assetId, domain.NewAmount(100), bob))

		details, err := svc.GetAsset(ctx, assetId)
		require.NoError(t, err)
		require.True(t, details.Supply.Equals(domain.MaxAmount))

		balance, err := svc.GetBalance(ctx, assetId, bob)
		require.NoError(t, err)
		require.True(t, balance.Equals(domain.NewAmount(5)))

		requireSupplyMatchesBalances(t, repo, assetId)
	})
}

func TestAssetBurnWithCorruptedSupply(t *testing.T) {
	repo := newMockRepoManager()
	sink := inmemorysink.NewEventSink()
	svc := application.NewAssetService(repo, sink)

	assetId, err := svc.Create(ctx, alice)
	require.NoError(t, err)

	// seed a record where the balance exceeds the supply, a state no
	// command sequence produces. An unchecked subtraction would wrap
	// the supply close to MaxAmount here; the clamp pins it to zero.
	repo.assetRepo.assets[assetId] = domain.AssetDetails{
		Owner:  alice,
		Supply: domain.NewAmount(5),
	}
	repo.assetRepo.balances[balanceKey{assetId, alice}] = domain.NewAmount(10)

	require.NoError(t, svc.Burn(ctx, alice, assetId, domain.NewAmount(10)))

	details, err := svc.GetAsset(ctx, assetId)
	require.NoError(t, err)
	require.True(t, details.Supply.IsZero())

	balance, err := svc.GetBalance(ctx, assetId, alice)
	require.NoError(t, err)
	require.True(t, balance.IsZero())

	events := sink.Events(domain.AssetTopic)
	burned := events[len(events)-1].(domain.AssetBurned)
	require.True(t, burned.TotalSupply.IsZero())
}

func TestAssetCommandRollback(t *testing.T) {
	repo := newMockRepoManager()
	sink := inmemorysink.NewEventSink()
	svc := application.NewAssetService(repo, sink)

	assetId, err := svc.Create(ctx, alice)
	require.NoError(t, err)
	eventsBefore := len(sink.Events(domain.AssetTopic))

	repo.assetRepo.upsertBalanceErr = fmt.Errorf("disk full")
	err = svc.Mint(ctx, alice, assetId, domain.NewAmount(100), alice)
	require.Error(t, err)

	// the supply update made before the failing balance write must
	// have been rolled back
	details, err := svc.GetAsset(ctx, assetId)
	require.NoError(t, err)
	require.True(t, details.Supply.IsZero())
	require.Len(t, sink.Events(domain.AssetTopic), eventsBefore)
}

func requireSupplyMatchesBalances(t *testing.T, repo *mockRepoManager, assetId domain.AssetId) {
	t.Helper()

	details, err := repo.assetRepo.GetAsset(ctx, assetId)
	require.NoError(t, err)
	require.NotNil(t, details)

	balances, err := repo.assetRepo.GetBalancesByAsset(ctx, assetId)
	require.NoError(t, err)

	sum := domain.ZeroAmount
	for _, balance := range balances {
		sum = domain.SaturatingAdd(sum, balance)
	}
	require.True(t, details.Supply.Equals(sum),
		"supply %s != sum of balances %s", details.Supply, sum)
}
