package domain

import (
	"context"
)

// AssetRepository persists the fungible registry: asset details and
// optional metadata keyed by id, the (asset, account) balance book, and
// the id allocation nonce.
type AssetRepository interface {
	// NextAssetId returns the current nonce and advances it with a
	// saturating increment. At the top of the id space it keeps
	// handing out the same id; allocation starves silently. This is a
	// deliberate design limit of the fungible registry.
	NextAssetId(ctx context.Context) (AssetId, error)

	// GetAsset returns nil when no asset is recorded under id.
	GetAsset(ctx context.Context, id AssetId) (*AssetDetails, error)
	UpsertAsset(ctx context.Context, id AssetId, details AssetDetails) error

	// GetMetadata returns nil when the asset has no metadata record.
	GetMetadata(ctx context.Context, id AssetId) (*AssetMetadata, error)
	UpsertMetadata(ctx context.Context, id AssetId, metadata AssetMetadata) error

	// GetBalance reads the holding of account for asset id. Absent
	// entries read as zero.
	GetBalance(ctx context.Context, id AssetId, account AccountId) (Amount, error)
	// UpsertBalance creates the balance entry on first write. Entries
	// are never removed, even when the balance returns to zero.
	UpsertBalance(ctx context.Context, id AssetId, account AccountId, balance Amount) error
	GetBalancesByAsset(ctx context.Context, id AssetId) (map[AccountId]Amount, error)

	// Transactional runs txFn with every read and write bound to a
	// single storage transaction. When txFn returns an error none of
	// its writes are persisted.
	Transactional(ctx context.Context, txFn func(ctx context.Context) error) error

	Close()
}
