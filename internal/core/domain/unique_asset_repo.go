package domain

import (
	"context"
)

// UniqueAssetRepository persists the unique registry: asset details
// keyed by id, the (asset, account) balance book, and the id allocation
// nonce.
type UniqueAssetRepository interface {
	// NextAssetId returns the current nonce and advances it with a
	// checked increment. When the nonce cannot advance it returns a
	// TYPE_OVERFLOW error and leaves the nonce untouched, so no
	// identifier is consumed by the failed allocation.
	NextAssetId(ctx context.Context) (AssetId, error)

	// GetUniqueAsset returns nil when no asset is recorded under id.
	GetUniqueAsset(ctx context.Context, id AssetId) (*UniqueAssetDetails, error)
	UpsertUniqueAsset(ctx context.Context, id AssetId, details UniqueAssetDetails) error

	// GetBalance reads the holding of account for asset id. Absent
	// entries read as zero.
	GetBalance(ctx context.Context, id AssetId, account AccountId) (Amount, error)
	UpsertBalance(ctx context.Context, id AssetId, account AccountId, balance Amount) error
	GetBalancesByAsset(ctx context.Context, id AssetId) (map[AccountId]Amount, error)

	// Transactional runs txFn with every read and write bound to a
	// single storage transaction. When txFn returns an error none of
	// its writes are persisted.
	Transactional(ctx context.Context, txFn func(ctx context.Context) error) error

	Close()
}
