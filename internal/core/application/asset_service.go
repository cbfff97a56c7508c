package application

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tokenledger/tokend/internal/core/domain"
	"github.com/tokenledger/tokend/internal/core/ports"
	"github.com/tokenledger/tokend/pkg/errors"
)

// AssetService executes the fungible registry commands. Every command
// runs inside a single storage transaction: a failed precondition
// discards all of the command's writes. Events are published only after
// the transaction committed.
type AssetService struct {
	repoManager ports.RepoManager
	eventSink   ports.EventSink
}

func NewAssetService(repoManager ports.RepoManager, eventSink ports.EventSink) *AssetService {
	return &AssetService{repoManager, eventSink}
}

// Create registers a new empty asset owned by the caller. There are no
// preconditions beyond an authenticated caller.
func (s *AssetService) Create(
	ctx context.Context, caller domain.AccountId,
) (domain.AssetId, error) {
	repo := s.repoManager.Assets()

	var assetId domain.AssetId
	if err := repo.Transactional(ctx, func(ctx context.Context) error {
		id, err := repo.NextAssetId(ctx)
		if err != nil {
			return err
		}
		if err := repo.UpsertAsset(ctx, id, domain.NewAssetDetails(caller)); err != nil {
			return err
		}
		assetId = id
		return nil
	}); err != nil {
		return 0, err
	}

	log.Debugf("created asset %d owned by %s", assetId, caller)
	s.eventSink.Publish(domain.AssetTopic, domain.AssetCreated{
		Id:      uuid.NewString(),
		AssetId: assetId,
		Owner:   caller,
	})
	return assetId, nil
}

// SetMetadata overwrites (or creates) the metadata record of an asset.
// Only the recorded owner may call it.
func (s *AssetService) SetMetadata(
	ctx context.Context, caller domain.AccountId,
	assetId domain.AssetId, name, symbol []byte,
) error {
	repo := s.repoManager.Assets()

	if err := repo.Transactional(ctx, func(ctx context.Context) error {
		if err := s.ensureIsOwner(ctx, assetId, caller); err != nil {
			return err
		}
		return repo.UpsertMetadata(ctx, assetId, domain.NewAssetMetadata(name, symbol))
	}); err != nil {
		return err
	}

	s.eventSink.Publish(domain.AssetTopic, domain.AssetMetadataSet{
		Id:      uuid.NewString(),
		AssetId: assetId,
		Name:    name,
		Symbol:  symbol,
	})
	return nil
}

// Mint grows the supply of an asset and credits the minted quantity to
// the given recipient. The supply addition saturates; the delta that
// actually landed on the supply, not the requested amount, is what gets
// credited to the recipient. Crediting the same delta on both sides is
// what keeps supply equal to the sum of balances.
func (s *AssetService) Mint(
	ctx context.Context, caller domain.AccountId,
	assetId domain.AssetId, amount domain.Amount, to domain.AccountId,
) error {
	repo := s.repoManager.Assets()

	var totalSupply domain.Amount
	if err := repo.Transactional(ctx, func(ctx context.Context) error {
		if err := s.ensureIsOwner(ctx, assetId, caller); err != nil {
			return err
		}
		details, err := repo.GetAsset(ctx, assetId)
		if err != nil {
			return err
		}

		oldSupply := details.Supply
		details.Supply = domain.SaturatingAdd(details.Supply, amount)
		minted := details.Supply.Sub(oldSupply)
		if err := repo.UpsertAsset(ctx, assetId, *details); err != nil {
			return err
		}

		balance, err := repo.GetBalance(ctx, assetId, to)
		if err != nil {
			return err
		}
		if err := repo.UpsertBalance(
			ctx, assetId, to, domain.SaturatingAdd(balance, minted),
		); err != nil {
			return err
		}

		totalSupply = details.Supply
		return nil
	}); err != nil {
		return err
	}

	s.eventSink.Publish(domain.AssetTopic, domain.AssetMinted{
		Id:          uuid.NewString(),
		AssetId:     assetId,
		Owner:       to,
		TotalSupply: totalSupply,
	})
	return nil
}

// Burn destroys part of the caller's own holding. There is no ownership
// gate: any account may burn what it holds. Requests exceeding the
// holding are clamped, never rejected.
func (s *AssetService) Burn(
	ctx context.Context, caller domain.AccountId,
	assetId domain.AssetId, amount domain.Amount,
) error {
	repo := s.repoManager.Assets()

	var totalSupply domain.Amount
	if err := repo.Transactional(ctx, func(ctx context.Context) error {
		details, err := repo.GetAsset(ctx, assetId)
		if err != nil {
			return err
		}
		if details == nil {
			return errors.ASSET_UNKNOWN.New("asset %d does not exist", assetId).
				WithMetadata(errors.AssetMetadata{AssetId: uint64(assetId)})
		}

		balance, err := repo.GetBalance(ctx, assetId, caller)
		if err != nil {
			return err
		}
		newBalance := domain.SaturatingSub(balance, amount)
		burned := balance.Sub(newBalance)
		if err := repo.UpsertBalance(ctx, assetId, caller, newBalance); err != nil {
			return err
		}

		// Saturating where the burned delta would otherwise underflow
		// the supply. With supply == sum of balances the two never
		// differ; saturating keeps a corrupted store from trapping.
		details.Supply = domain.SaturatingSub(details.Supply, burned)
		if err := repo.UpsertAsset(ctx, assetId, *details); err != nil {
			return err
		}

		totalSupply = details.Supply
		return nil
	}); err != nil {
		return err
	}

	s.eventSink.Publish(domain.AssetTopic, domain.AssetBurned{
		Id:          uuid.NewString(),
		AssetId:     assetId,
		Owner:       caller,
		TotalSupply: totalSupply,
	})
	return nil
}

// Transfer moves part of the caller's holding to the recipient. The
// moved amount is clamped to the caller's balance and returned; the
// emitted event reports the clamped amount as well.
func (s *AssetService) Transfer(
	ctx context.Context, caller domain.AccountId,
	assetId domain.AssetId, amount domain.Amount, to domain.AccountId,
) (domain.Amount, error) {
	repo := s.repoManager.Assets()

	var moved domain.Amount
	if err := repo.Transactional(ctx, func(ctx context.Context) error {
		details, err := repo.GetAsset(ctx, assetId)
		if err != nil {
			return err
		}
		if details == nil {
			return errors.ASSET_UNKNOWN.New("asset %d does not exist", assetId).
				WithMetadata(errors.AssetMetadata{AssetId: uint64(assetId)})
		}

		fromBalance, err := repo.GetBalance(ctx, assetId, caller)
		if err != nil {
			return err
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

	s.eventSink.Publish(domain.AssetTopic, domain.AssetTransferred{
		Id:      uuid.NewString(),
		AssetId: assetId,
		From:    caller,
		To:      to,
		Amount:  moved,
	})
	return moved, nil
}

// GetAsset exposes the details record for read-only callers.
func (s *AssetService) GetAsset(
	ctx context.Context, assetId domain.AssetId,
) (*domain.AssetDetails, error) {
	return s.repoManager.Assets().GetAsset(ctx, assetId)
}

// GetMetadata exposes the metadata record for read-only callers.
func (s *AssetService) GetMetadata(
	ctx context.Context, assetId domain.AssetId,
) (*domain.AssetMetadata, error) {
	return s.repoManager.Assets().GetMetadata(ctx, assetId)
}

// GetBalance exposes the holding of one account for read-only callers.
func (s *AssetService) GetBalance(
	ctx context.Context, assetId domain.AssetId, account domain.AccountId,
) (domain.Amount, error) {
	return s.repoManager.Assets().GetBalance(ctx, assetId, account)
}

func (s *AssetService) ensureIsOwner(
	ctx context.Context, assetId domain.AssetId, account domain.AccountId,
) error {
	details, err := s.repoManager.Assets().GetAsset(ctx, assetId)
	if err != nil {
		return err
	}
	if details == nil {
		return errors.ASSET_UNKNOWN.New("asset %d does not exist", assetId).
			WithMetadata(errors.AssetMetadata{AssetId: uint64(assetId)})
	}
	if details.Owner != account {
		return errors.NO_PERMISSION.New(
			"account %s is not the owner of asset %d", account, assetId,
		).WithMetadata(errors.PermissionMetadata{
			AssetId: uint64(assetId),
			Caller:  string(account),
			Owner:   string(details.Owner),
		})
	}
	return nil
}
