package application

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tokenledger/tokend/internal/core/domain"
	"github.com/tokenledger/tokend/internal/core/ports"
	"github.com/tokenledger/tokend/pkg/errors"
)

// UniqueAssetService executes the unique registry commands. It also
// implements domain.Sellable so a marketplace can settle transfers
// against the registry.
type UniqueAssetService struct {
	repoManager ports.RepoManager
	eventSink   ports.EventSink
}

var _ domain.Sellable = (*UniqueAssetService)(nil)

func NewUniqueAssetService(
	repoManager ports.RepoManager, eventSink ports.EventSink,
) *UniqueAssetService {
	return &UniqueAssetService{repoManager, eventSink}
}

// Mint registers a new unique asset and credits its whole initial
// supply to the caller. The id allocation is checked: when the id space
// is exhausted the command fails with TYPE_OVERFLOW and nothing is
// persisted, not even the nonce advance.
func (s *UniqueAssetService) Mint(
	ctx context.Context, caller domain.AccountId,
	metadata []byte, supply domain.Amount,
) (domain.AssetId, error) {
	if supply.IsZero() {
		return 0, errors.NO_SUPPLY.New("initial supply must be positive").
			WithMetadata(errors.SupplyMetadata{Supply: supply.String()})
	}

	repo := s.repoManager.UniqueAssets()

	var assetId domain.AssetId
	if err := repo.Transactional(ctx, func(ctx context.Context) error {
		id, err := repo.NextAssetId(ctx)
		if err != nil {
			return err
		}
		details := domain.NewUniqueAssetDetails(caller, metadata, supply)
		if err := repo.UpsertUniqueAsset(ctx, id, details); err != nil {
			return err
		}
		if err := repo.UpsertBalance(ctx, id, caller, supply); err != nil {
			return err
		}
		assetId = id
		return nil
	}); err != nil {
		return 0, err
	}

	log.Debugf("minted unique asset %d with supply %s for %s", assetId, supply, caller)
	s.eventSink.Publish(domain.UniqueAssetTopic, domain.UniqueAssetCreated{
		Id:      uuid.NewString(),
		AssetId: assetId,
		Creator: caller,
	})
	return assetId, nil
}

// Burn destroys part of the caller's holding of a unique asset. The
// caller must hold a positive balance; requests exceeding it are
// clamped, never rejected.
func (s *UniqueAssetService) Burn(
	ctx context.Context, caller domain.AccountId,
	assetId domain.AssetId, amount domain.Amount,
) error {
	repo := s.repoManager.UniqueAssets()

	var totalSupply domain.Amount
	if err := repo.Transactional(ctx, func(ctx context.Context) error {
		details, err := repo.GetUniqueAsset(ctx, assetId)
		if err != nil {
			return err
		}
		if details == nil {
			return errors.ASSET_UNKNOWN.New("unique asset %d does not exist", assetId).
				WithMetadata(errors.AssetMetadata{AssetId: uint64(assetId)})
		}

		balance, err := repo.GetBalance(ctx, assetId, caller)
		if err != nil {
			return err
		}
		if balance.IsZero() {
			return errors.NOT_OWNED.New(
				"account %s holds none of unique asset %d", caller, assetId,
			).WithMetadata(errors.HoldingMetadata{
				AssetId: uint64(assetId),
				Account: string(caller),
			})
		}

		newBalance := domain.SaturatingSub(balance, amount)
		burned := balance.Sub(newBalance)
		if err := repo.UpsertBalance(ctx, assetId, caller, newBalance); err != nil {
			return err
		}

		details.Supply = domain.SaturatingSub(details.Supply, burned)
		if err := repo.UpsertUniqueAsset(ctx, assetId, *details); err != nil {
			return err
		}

		totalSupply = details.Supply
		return nil
	}); err != nil {
		return err
	}

	s.eventSink.Publish(domain.UniqueAssetTopic, domain.UniqueAssetBurned{
		Id:          uuid.NewString(),
		AssetId:     assetId,
		Owner:       caller,
		TotalSupply: totalSupply,
	})
	return nil
}

// Transfer moves part of the caller's holding of a unique asset to the
// recipient. Balance lookups key on the requested asset id, so every
// asset keeps its own balance line per account. The moved amount is
// clamped to the caller's balance and returned.
func (s *UniqueAssetService) Transfer(
	ctx context.Context, caller domain.AccountId,
	assetId domain.AssetId, amount domain.Amount, to domain.AccountId,
) (domain.Amount, error) {
	repo := s.repoManager.UniqueAssets()

	var moved domain.Amount
	if err := repo.Transactional(ctx, func(ctx context.Context) error {
		details, err := repo.GetUniqueAsset(ctx, assetId)
		if err != nil {
			return err
		}
		if details == nil {
			return errors.ASSET_UNKNOWN.New("unique asset %d does not exist", assetId).
				WithMetadata(errors.AssetMetadata{AssetId: uint64(assetId)})
		}

		fromBalance, err := repo.GetBalance(ctx, assetId, caller)
		if err != nil {
			return err
		}
		if fromBalance.IsZero() {
			return errors.NOT_OWNED.New(
				"account %s holds none of unique asset %d", caller, assetId,
			).WithMetadata(errors.HoldingMetadata{
				AssetId: uint64(assetId),
				Account: string(caller),
			})
		}

		newFromBalance := domain.SaturatingSub(fromBalance, amount)
		moved = fromBalance.Sub(newFromBalance)
		if err := repo.UpsertBalance(ctx, assetId, caller, newFromBalance); err != nil {
			return err
		}

		toBalance, err := repo.GetBalance(ctx, assetId, to)
		if err != nil {
			return err
		}
		return repo.UpsertBalance(ctx, assetId, to, domain.SaturatingAdd(toBalance, moved))
	}); err != nil {
		return domain.ZeroAmount, err
	}

	s.eventSink.Publish(domain.UniqueAssetTopic, domain.UniqueAssetTransferred{
		Id:      uuid.NewString(),
		AssetId: assetId,
		From:    caller,
		To:      to,
		Amount:  moved,
	})
	return moved, nil
}

// AmountOwned implements domain.Sellable. Absent holdings read as zero.
func (s *UniqueAssetService) AmountOwned(
	ctx context.Context, assetId domain.AssetId, account domain.AccountId,
) (domain.Amount, error) {
	return s.repoManager.UniqueAssets().GetBalance(ctx, assetId, account)
}

// GetUniqueAsset exposes the details record for read-only callers.
func (s *UniqueAssetService) GetUniqueAsset(
	ctx context.Context, assetId domain.AssetId,
) (*domain.UniqueAssetDetails, error) {
	return s.repoManager.UniqueAssets().GetUniqueAsset(ctx, assetId)
}
