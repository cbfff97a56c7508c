package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/tokenledger/tokend/internal/core/domain"
	"github.com/tokenledger/tokend/internal/infrastructure/db/sqlite/sqlc/queries"
)

const assetRegistry = "asset"

type assetRepository struct {
	db      *sql.DB
	querier *queries.Queries
}

func NewAssetRepository(config ...interface{}) (domain.AssetRepository, error) {
	if len(config) != 1 {
		return nil, fmt.Errorf("invalid config: expected 1 argument, got %d", len(config))
	}
	db, ok := config[0].(*sql.DB)
	if !ok {
		return nil, fmt.Errorf(
			"cannot open asset repository: expected *sql.DB but got %T", config[0],
		)
	}

	return &assetRepository{
		db:      db,
		querier: queries.New(db),
	}, nil
}

func (r *assetRepository) NextAssetId(ctx context.Context) (domain.AssetId, error) {
	querier := r.querierFromCtx(ctx)

	nonce, err := querier.GetNonce(ctx, assetRegistry)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to get asset nonce: %w", err)
	}

	// The nonce is a uint64 stored as its signed bit pattern.
	id := uint64(nonce)
	next := id
	if id < math.MaxUint64 {
		next = id + 1
	}

	if err := querier.UpsertNonce(ctx, queries.UpsertNonceParams{
		Registry: assetRegistry,
		Nonce:    int64(next),
	}); err != nil {
		return 0, fmt.Errorf("failed to advance asset nonce: %w", err)
	}

	return domain.AssetId(id), nil
}

func (r *assetRepository) GetAsset(
	ctx context.Context, id domain.AssetId,
) (*domain.AssetDetails, error) {
	row, err := r.querierFromCtx(ctx).GetAsset(ctx, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	supply, err := domain.ParseAmount(row.Supply)
	if err != nil {
		return nil, fmt.Errorf("failed to parse asset supply: %w", err)
	}

	return &domain.AssetDetails{
		Owner:  domain.AccountId(row.Owner),
		Supply: supply,
	}, nil
}

func (r *assetRepository) UpsertAsset(
	ctx context.Context, id domain.AssetId, details domain.AssetDetails,
) error {
	if err := r.querierFromCtx(ctx).UpsertAsset(ctx, queries.UpsertAssetParams{
		ID:     int64(id),
		Owner:  string(details.Owner),
		Supply: details.Supply.String(),
	}); err != nil {
		return fmt.Errorf("failed to upsert asset: %w", err)
	}
	return nil
}

func (r *assetRepository) GetMetadata(
	ctx context.Context, id domain.AssetId,
) (*domain.AssetMetadata, error) {
	row, err := r.querierFromCtx(ctx).GetAssetMetadata(ctx, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset metadata: %w", err)
	}

	return &domain.AssetMetadata{
		Name:   row.Name,
		Symbol: row.Symbol,
	}, nil
}

func (r *assetRepository) UpsertMetadata(
	ctx context.Context, id domain.AssetId, metadata domain.AssetMetadata,
) error {
	if err := r.querierFromCtx(ctx).UpsertAssetMetadata(ctx, queries.UpsertAssetMetadataParams{
		AssetID: int64(id),
		Name:    metadata.Name,
		Symbol:  metadata.Symbol,
	}); err != nil {
		return fmt.Errorf("failed to upsert asset metadata: %w", err)
	}
	return nil
}

func (r *assetRepository) GetBalance(
	ctx context.Context, id domain.AssetId, account domain.AccountId,
) (domain.Amount, error) {
	balance, err := r.querierFromCtx(ctx).GetAssetBalance(ctx, queries.GetAssetBalanceParams{
		AssetID: int64(id),
		Account: string(account),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ZeroAmount, nil
	}
	if err != nil {
		return domain.ZeroAmount, fmt.Errorf("failed to get balance: %w", err)
	}

	return domain.ParseAmount(balance)
}

func (r *assetRepository) UpsertBalance(
	ctx context.Context, id domain.AssetId, account domain.AccountId, balance domain.Amount,
) error {
	if err := r.querierFromCtx(ctx).UpsertAssetBalance(ctx, queries.UpsertAssetBalanceParams{
		AssetID: int64(id),
		Account: string(account),
		Balance: balance.String(),
	}); err != nil {
		return fmt.Errorf("failed to upsert balance: %w", err)
	}
	return nil
}

func (r *assetRepository) GetBalancesByAsset(
	ctx context.Context, id domain.AssetId,
) (map[domain.AccountId]domain.Amount, error) {
	rows, err := r.querierFromCtx(ctx).ListAssetBalances(ctx, int64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}

	balances := make(map[domain.AccountId]domain.Amount, len(rows))
	for _, row := range rows {
		balance, err := domain.ParseAmount(row.Balance)
		if err != nil {
			return nil, fmt.Errorf("failed to parse balance: %w", err)
		}
		balances[domain.AccountId(row.Account)] = balance
	}
	return balances, nil
}

func (r *assetRepository) Transactional(
	ctx context.Context, txFn func(ctx context.Context) error,
) error {
	return execTx(ctx, r.db, txFn)
}

func (r *assetRepository) Close() {
	// nolint:errcheck
	r.db.Close()
}

func (r *assetRepository) querierFromCtx(ctx context.Context) *queries.Queries {
	if tx, ok := ctx.Value("tx").(*sql.Tx); ok {
		return r.querier.WithTx(tx)
	}
	return r.querier
}
