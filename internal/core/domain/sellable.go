package domain

import (
	"context"
)

// Sellable is the hook a marketplace settles against. Transfer returns
// the amount actually moved, which may be smaller than requested when
// the seller balance clamped it; a marketplace must price the returned
// amount, not the requested one.
type Sellable interface {
	AmountOwned(ctx context.Context, id AssetId, account AccountId) (Amount, error)
	Transfer(
		ctx context.Context,
		caller AccountId, id AssetId, amount Amount, to AccountId,
	) (Amount, error)
}
