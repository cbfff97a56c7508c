package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"
	"github.com/tokenledger/tokend/internal/core/domain"
)

const assetStoreDir = "assets"

type assetRepository struct {
	store *badgerhold.Store
}

type assetDTO struct {
	Owner  string
	Supply domain.Amount
}

type assetMetadataDTO struct {
	Name   []byte
	Symbol []byte
}

type balanceDTO struct {
	AssetId uint64
	Account string
	Balance domain.Amount
}

type nonceDTO struct {
	Nonce uint64
}

const nonceKey = "nonce"

func NewAssetRepository(config ...interface{}) (domain.AssetRepository, error) {
	if len(config) != 2 {
		return nil, fmt.Errorf("invalid config")
	}
	baseDir, ok := config[0].(string)
	if !ok {
		return nil, fmt.Errorf("invalid base directory")
	}
	var logger badger.Logger
	if config[1] != nil {
		logger, ok = config[1].(badger.Logger)
		if !ok {
			return nil, fmt.Errorf("invalid logger")
		}
	}

	var dir string
	if len(baseDir) > 0 {
		dir = filepath.Join(baseDir, assetStoreDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset store: %s", err)
	}

	return &assetRepository{store}, nil
}

func (r *assetRepository) NextAssetId(ctx context.Context) (domain.AssetId, error) {
	nonce, err := r.getNonce(ctx)
	if err != nil {
		return 0, err
	}

	// saturating increment: at the top of the id space the registry
	// keeps handing out the same id and allocation starves silently
	next := nonce
	if nonce < math.MaxUint64 {
		next = nonce + 1
	}
	if err := r.setNonce(ctx, next); err != nil {
		return 0, err
	}
	return domain.AssetId(nonce), nil
}

func (r *assetRepository) GetAsset(
	ctx context.Context, id domain.AssetId,
) (*domain.AssetDetails, error) {
	var dto assetDTO
	if err := r.get(ctx, uint64(id), &dto); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.AssetDetails{
		Owner:  domain.AccountId(dto.Owner),
		Supply: dto.Supply,
	}, nil
}

func (r *assetRepository) UpsertAsset(
	ctx context.Context, id domain.AssetId, details domain.AssetDetails,
) error {
	dto := assetDTO{
		Owner:  string(details.Owner),
		Supply: details.Supply,
	}
	return r.upsert(ctx, uint64(id), dto)
}

func (r *assetRepository) GetMetadata(
	ctx context.Context, id domain.AssetId,
) (*domain.AssetMetadata, error) {
	var dto assetMetadataDTO
	if err := r.get(ctx, uint64(id), &dto); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.AssetMetadata{Name: dto.Name, Symbol: dto.Symbol}, nil
}

func (r *assetRepository) UpsertMetadata(
	ctx context.Context, id domain.AssetId, metadata domain.AssetMetadata,
) error {
	dto := assetMetadataDTO{Name: metadata.Name, Symbol: metadata.Symbol}
	return r.upsert(ctx, uint64(id), dto)
}

func (r *assetRepository) GetBalance(
	ctx context.Context, id domain.AssetId, account domain.AccountId,
) (domain.Amount, error) {
	var dto balanceDTO
	if err := r.get(ctx, balanceKey(id, account), &dto); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return domain.ZeroAmount, nil
		}
		return domain.ZeroAmount, err
	}
	return dto.Balance, nil
}

func (r *assetRepository) UpsertBalance(
	ctx context.Context, id domain.AssetId, account domain.AccountId,
	balance domain.Amount,
) error {
	dto := balanceDTO{
		AssetId: uint64(id),
		Account: string(account),
		Balance: balance,
	}
	return r.upsert(ctx, balanceKey(id, account), dto)
}

func (r *assetRepository) GetBalancesByAsset(
	ctx context.Context, id domain.AssetId,
) (map[domain.AccountId]domain.Amount, error) {
	query := badgerhold.Where("AssetId").Eq(uint64(id))

	dtos := make([]balanceDTO, 0)
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.store.TxFind(tx, &dtos, query)
	} else {
		err = r.store.Find(&dtos, query)
	}
	if err != nil {
		return nil, err
	}

	balances := make(map[domain.AccountId]domain.Amount, len(dtos))
	for _, dto := range dtos {
		balances[domain.AccountId(dto.Account)] = dto.Balance
	}
	return balances, nil
}

func (r *assetRepository) Transactional(
	ctx context.Context, txFn func(ctx context.Context) error,
) error {
	return runInTransaction(ctx, r.store, txFn)
}

func (r *assetRepository) Close() {
	// nolint:all
	r.store.Close()
}

func (r *assetRepository) getNonce(ctx context.Context) (uint64, error) {
	var dto nonceDTO
	if err := r.get(ctx, nonceKey, &dto); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return dto.Nonce, nil
}

func (r *assetRepository) setNonce(ctx context.Context, nonce uint64) error {
	return r.upsert(ctx, nonceKey, nonceDTO{Nonce: nonce})
}

func (r *assetRepository) get(ctx context.Context, key, result interface{}) error {
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return r.store.TxGet(tx, key, result)
	}
	return r.store.Get(key, result)
}

func (r *assetRepository) upsert(ctx context.Context, key, data interface{}) error {
	var upsertFn func() error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		upsertFn = func() error {
			return r.store.TxUpsert(tx, key, data)
		}
	} else {
		upsertFn = func() error {
			return r.store.Upsert(key, data)
		}
	}
	if err := upsertFn(); err != nil {
		if errors.Is(err, badger.ErrConflict) {
			attempts := 1
			for errors.Is(err, badger.ErrConflict) && attempts <= maxRetries {
				time.Sleep(100 * time.Millisecond)
				err = upsertFn()
				attempts++
			}
		}
		return err
	}
	return nil
}

func balanceKey(id domain.AssetId, account domain.AccountId) string {
	return fmt.Sprintf("%d:%s", id, account)
}

// runInTransaction seals txFn inside one badger transaction, passed to
// the repository methods through the context. An error from txFn
// discards every write of the transaction.
func runInTransaction(
	ctx context.Context, store *badgerhold.Store,
	txFn func(ctx context.Context) error,
) error {
	var err error
	for range maxRetries {
		tx := store.Badger().NewTransaction(true)
		if err = txFn(context.WithValue(ctx, "tx", tx)); err != nil {
			tx.Discard()
			return err
		}
		if err = tx.Commit(); err == nil {
			return nil
		}
		if errors.Is(err, badger.ErrConflict) {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		return err
	}
	return err
}
