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
	ledgererrors "github.com/tokenledger/tokend/pkg/errors"
)

const uniqueAssetStoreDir = "uniqueassets"

type uniqueAssetRepository struct {
	store *badgerhold.Store
}

type uniqueAssetDTO struct {
	Creator  string
	Metadata []byte
	Supply   domain.Amount
}

func NewUniqueAssetRepository(config ...interface{}) (domain.UniqueAssetRepository, error) {
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
		dir = filepath.Join(baseDir, uniqueAssetStoreDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open unique asset store: %s", err)
	}

	return &uniqueAssetRepository{store}, nil
}

func (r *uniqueAssetRepository) NextAssetId(ctx context.Context) (domain.AssetId, error) {
	nonce, err := r.getNonce(ctx)
	if err != nil {
		return 0, err
	}

	// checked increment: exhaustion fails the allocation and leaves
	// the nonce untouched
	if nonce == math.MaxUint64 {
		return 0, ledgererrors.TYPE_OVERFLOW.New("unique asset id space exhausted").
			WithMetadata(ledgererrors.NonceMetadata{Nonce: nonce})
	}
	if err := r.setNonce(ctx, nonce+1); err != nil {
		return 0, err
	}
	return domain.AssetId(nonce), nil
}

func (r *uniqueAssetRepository) GetUniqueAsset(
	ctx context.Context, id domain.AssetId,
) (*domain.UniqueAssetDetails, error) {
	var dto uniqueAssetDTO
	if err := r.get(ctx, uint64(id), &dto); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.UniqueAssetDetails{
		Creator:  domain.AccountId(dto.Creator),
		Metadata: dto.Metadata,
		Supply:   dto.Supply,
	}, nil
}

func (r *uniqueAssetRepository) UpsertUniqueAsset(
	ctx context.Context, id domain.AssetId, details domain.UniqueAssetDetails,
) error {
	dto := uniqueAssetDTO{
		Creator:  string(details.Creator),
		Metadata: details.Metadata,
		Supply:   details.Supply,
	}
	return r.upsert(ctx, uint64(id), dto)
}

func (r *uniqueAssetRepository) GetBalance(
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

func (r *uniqueAssetRepository) UpsertBalance(
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

func (r *uniqueAssetRepository) GetBalancesByAsset(
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

func (r *uniqueAssetRepository) Transactional(
	ctx context.Context, txFn func(ctx context.Context) error,
) error {
	return runInTransaction(ctx, r.store, txFn)
}

func (r *uniqueAssetRepository) Close() {
	// nolint:all
	r.store.Close()
}

func (r *uniqueAssetRepository) getNonce(ctx context.Context) (uint64, error) {
	var dto nonceDTO
	if err := r.get(ctx, nonceKey, &dto); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return dto.Nonce, nil
}

func (r *uniqueAssetRepository) setNonce(ctx context.Context, nonce uint64) error {
	return r.upsert(ctx, nonceKey, nonceDTO{Nonce: nonce})
}

func (r *uniqueAssetRepository) get(ctx context.Context, key, result interface{}) error {
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return r.store.TxGet(tx, key, result)
	}
	return r.store.Get(key, result)
}

func (r *uniqueAssetRepository) upsert(ctx context.Context, key, data interface{}) error {
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
