package application_test

import (
	"context"
	"math"

	"github.com/tokenledger/tokend/internal/core/domain"
	ledgererrors "github.com/tokenledger/tokend/pkg/errors"
)

// Minimal in-memory repositories for exercising the services. The
// Transactional implementations snapshot the maps and restore them when
// txFn fails, mimicking the rollback of the real stores.

type mockRepoManager struct {
	assetRepo       *mockAssetRepository
	uniqueAssetRepo *mockUniqueAssetRepository
}

func newMockRepoManager() *mockRepoManager {
	return &mockRepoManager{
		assetRepo:       newMockAssetRepository(),
		uniqueAssetRepo: newMockUniqueAssetRepository(),
	}
}

func (m *mockRepoManager) Assets() domain.AssetRepository {
	return m.assetRepo
}

func (m *mockRepoManager) UniqueAssets() domain.UniqueAssetRepository {
	return m.uniqueAssetRepo
}

func (m *mockRepoManager) Close() {}

type balanceKey struct {
	assetId domain.AssetId
	account domain.AccountId
}

type mockAssetRepository struct {
	nonce    uint64
	assets   map[domain.AssetId]domain.AssetDetails
	metadata map[domain.AssetId]domain.AssetMetadata
	balances map[balanceKey]domain.Amount

	// when set, UpsertBalance fails with this error
	upsertBalanceErr error
}

func newMockAssetRepository() *mockAssetRepository {
	return &mockAssetRepository{
		assets:   make(map[domain.AssetId]domain.AssetDetails),
		metadata: make(map[domain.AssetId]domain.AssetMetadata),
		balances: make(map[balanceKey]domain.Amount),
	}
}

func (m *mockAssetRepository) NextAssetId(_ context.Context) (domain.AssetId, error) {
	id := m.nonce
	if m.nonce < math.MaxUint64 {
		m.nonce++
	}
	return domain.AssetId(id), nil
}

func (m *mockAssetRepository) GetAsset(
	_ context.Context, id domain.AssetId,
) (*domain.AssetDetails, error) {
	details, ok := m.assets[id]
	if !ok {
		return nil, nil
	}
	return &details, nil
}

func (m *mockAssetRepository) UpsertAsset(
	_ context.Context, id domain.AssetId, details domain.AssetDetails,
) error {
	m.assets[id] = details
	return nil
}

func (m *mockAssetRepository) GetMetadata(
	_ context.Context, id domain.AssetId,
) (*domain.AssetMetadata, error) {
	metadata, ok := m.metadata[id]
	if !ok {
		return nil, nil
	}
	return &metadata, nil
}

func (m *mockAssetRepository) UpsertMetadata(
	_ context.Context, id domain.AssetId, metadata domain.AssetMetadata,
) error {
	m.metadata[id] = metadata
	return nil
}

func (m *mockAssetRepository) GetBalance(
	_ context.Context, id domain.AssetId, account domain.AccountId,
) (domain.Amount, error) {
	return m.balances[balanceKey{id, account}], nil
}

func (m *mockAssetRepository) UpsertBalance(
	_ context.Context, id domain.AssetId, account domain.AccountId, balance domain.Amount,
) error {
	if m.upsertBalanceErr != nil {
		return m.upsertBalanceErr
	}
	m.balances[balanceKey{id, account}] = balance
	return nil
}

func (m *mockAssetRepository) GetBalancesByAsset(
	_ context.Context, id domain.AssetId,
) (map[domain.AccountId]domain.Amount, error) {
	balances := make(map[domain.AccountId]domain.Amount)
	for key, balance := range m.balances {
		if key.assetId == id {
			balances[key.account] = balance
		}
	}
	return balances, nil
}

func (m *mockAssetRepository) Transactional(
	ctx context.Context, txFn func(ctx context.Context) error,
) error {
	nonce := m.nonce
	assets := cloneMap(m.assets)
	metadata := cloneMap(m.metadata)
	balances := cloneMap(m.balances)

	if err := txFn(ctx); err != nil {
		m.nonce = nonce
		m.assets = assets
		m.metadata = metadata
		m.balances = balances
		return err
	}
	return nil
}

func (m *mockAssetRepository) Close() {}

type mockUniqueAssetRepository struct {
	nonce    uint64
	assets   map[domain.AssetId]domain.UniqueAssetDetails
	balances map[balanceKey]domain.Amount
}

func newMockUniqueAssetRepository() *mockUniqueAssetRepository {
	return &mockUniqueAssetRepository{
		assets:   make(map[domain.AssetId]domain.UniqueAssetDetails),
		balances: make(map[balanceKey]domain.Amount),
	}
}

func (m *mockUniqueAssetRepository) NextAssetId(_ context.Context) (domain.AssetId, error) {
	if m.nonce == math.MaxUint64 {
		return 0, ledgererrors.TYPE_OVERFLOW.New("unique asset id space exhausted").
			WithMetadata(ledgererrors.NonceMetadata{Nonce: m.nonce})
	}
	id := m.nonce
	m.nonce++
	return domain.AssetId(id), nil
}

func (m *mockUniqueAssetRepository) GetUniqueAsset(
	_ context.Context, id domain.AssetId,
) (*domain.UniqueAssetDetails, error) {
	details, ok := m.assets[id]
	if !ok {
		return nil, nil
	}
	return &details, nil
}

func (m *mockUniqueAssetRepository) UpsertUniqueAsset(
	_ context.Context, id domain.AssetId, details domain.UniqueAssetDetails,
) error {
	m.assets[id] = details
	return nil
}

func (m *mockUniqueAssetRepository) GetBalance(
	_ context.Context, id domain.AssetId, account domain.AccountId,
) (domain.Amount, error) {
	return m.balances[balanceKey{id, account}], nil
}

func (m *mockUniqueAssetRepository) UpsertBalance(
	_ context.Context, id domain.AssetId, account domain.AccountId, balance domain.Amount,
) error {
	m.balances[balanceKey{id, account}] = balance
	return nil
}

func (m *mockUniqueAssetRepository) GetBalancesByAsset(
	_ context.Context, id domain.AssetId,
) (map[domain.AccountId]domain.Amount, error) {
	balances := make(map[domain.AccountId]domain.Amount)
	for key, balance := range m.balances {
		if key.assetId == id {
			balances[key.account] = balance
		}
	}
	return balances, nil
}

func (m *mockUniqueAssetRepository) Transactional(
	ctx context.Context, txFn func(ctx context.Context) error,
) error {
	nonce := m.nonce
	assets := cloneMap(m.assets)
	balances := cloneMap(m.balances)

	if err := txFn(ctx); err != nil {
		m.nonce = nonce
		m.assets = assets
		m.balances = balances
		return err
	}
	return nil
}

func (m *mockUniqueAssetRepository) Close() {}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
