package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/tokenledger/tokend/internal/core/domain"
	"github.com/tokenledger/tokend/internal/infrastructure/db/sqlite/sqlc/queries"
	ledgererrors "github.com/tokenledger/tokend/pkg/errors"
)

const uniqueAssetRegistry = "unique_asset"

type uniqueAssetRepository struct {
	db      *sql.DB
	querier *queries.Queries
}

func NewUniqueAssetRepository(config ...interface{}) (domain.UniqueAssetRepository, error) {
	if len(config) != 1 {
		return nil, fmt.Errorf("invalid config: expected 1 argument, got %d", len(config))
	}
	db, ok := config[0].(*sql.DB)
	if !ok {
		return nil, fmt.Errorf(
			"cannot open unique asset repository: expected *sql.DB but got %T", config[0],
		)
	}

	return &uniqueAssetRepository{
		db:      db,
		querier: queries.New(db),
	}, nil
}

func (r *uniqueAssetRepository) NextAssetId(ctx context.Context) (domain.AssetId, error) {
	querier := r.querierFromCtx(ctx)

	nonce, err := querier.GetNonce(ctx, uniqueAssetRegistry)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to get unique asset nonce: %w", err)
	}

	// The nonce is a uint64 stored as its signed bit pattern.
	id := uint64(nonce)
	if id == math.MaxUint64 {
		return 0, ledgererrors.TYPE_OVERFLOW.New(
			"unique asset id space exhausted",
		).WithMetadata(ledgererrors.NonceMetadata{Nonce: id})
	}

	if err := querier.UpsertNonce(ctx, queries.UpsertNonceParams{
		Registry: uniqueAssetRegistry,
		Nonce:    int64(id + 1),
	}); err != nil {
		return 0, fmt.Errorf("failed to advance unique asset nonce: %w", err)
	}

	return domain.AssetId(id), nil
}

func (r *uniqueAssetRepository) GetUniqueAsset(
	ctx context.Context, id domain.AssetId,
) (*domain.UniqueAssetDetails, error) {
	row, err := r.querierFromCtx(ctx).GetUniqueAsset(ctx, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unique asset: %w", err)
	}

	supply, err := domain.ParseAmount(row.Supply)
	if err != nil {
		return nil, fmt.Errorf("failed to parse unique asset supply: %w", err)
	}

	return &domain.UniqueAssetDetails{
		Creator:  domain.AccountId(row.Creator),
		Metadata: row.Metadata,
		Supply:   supply,
	}, nil
}

func (r *uniqueAssetRepository) UpsertUniqueAsset(
	ctx context.Context, id domain.AssetId, details domain.UniqueAssetDetails,
) error {
	if err := r.querierFromCtx(ctx).UpsertUniqueAsset(ctx, queries.UpsertUniqueAssetParams{
		ID:       int64(id),
		Creator:  string(details.Creator),
		Metadata: details.Metadata,
		Supply:   details.Supply.String(),
	}); err != nil {
		return fmt.Errorf("failed to upsert unique asset: %w", err)
	}
	return nil
}

func (r *uniqueAssetRepository) GetBalance(
	ctx context.Context, id domain.AssetId, account domain.AccountId,
) (domain.Amount, error) {
	balance, err := r.querierFromCtx(ctx).GetUniqueAssetBalance(
		ctx, queries.GetUniqueAssetBalanceParams{
			AssetID: int64(id),
			Account: string(account),
		},
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ZeroAmount, nil
	}
	if err != nil {
		return domain.ZeroAmount, fmt.Errorf("failed to get balance: %w", err)
	}

	return domain.ParseAmount(balance)
}

func (r *uniqueAssetRepository) UpsertBalance(
	ctx context.Context, id domain.AssetId, account domain.AccountId, balance domain.Amount,
) error {
	if err := r.querierFromCtx(ctx).UpsertUniqueAssetBalance(
		ctx, queries.UpsertUniqueAssetBalanceParams{
			AssetID: int64(id),
			Account: string(account),
			Balance: balance.String(),
		},
	); err != nil {
		return fmt.Errorf("failed to upsert balance: %w", err)
	}
	return nil
}

func (r *uniqueAssetRepository) GetBalancesByAsset(
	ctx context.Context, id domain.AssetId,
) (map[domain.AccountId]domain.Amount, error) {
	rows, err := r.querierFromCtx(ctx).ListUniqueAssetBalances(ctx, int64(id))
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

func (r *uniqueAssetRepository) Transactional(
	ctx context.Context, txFn func(ctx context.Context) error,
) error {
	return execTx(ctx, r.db, txFn)
}

func (r *uniqueAssetRepository) Close() {
	// nolint:errcheck
	r.db.Close()
}

func (r *uniqueAssetRepository) querierFromCtx(ctx context.Context) *queries.Queries {
	if tx, ok := ctx.Value("tx").(*sql.Tx); ok {
		return r.querier.WithTx(tx)
	}
	return r.querier
}
