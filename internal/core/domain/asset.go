package domain

// AssetId identifies an asset within one registry. Ids are allocated
// sequentially from the registry nonce and are never reused.
type AssetId uint64

// AccountId is the opaque identity of a ledger participant, supplied
// already authenticated by the caller. The engine only ever compares it
// for equality.
type AccountId string

// AssetDetails is the ownership and supply record of a fungible asset.
// The supply must equal the sum of all balances recorded for the asset.
type AssetDetails struct {
	Owner  AccountId
	Supply Amount
}

func NewAssetDetails(owner AccountId) AssetDetails {
	return AssetDetails{Owner: owner, Supply: ZeroAmount}
}

// AssetMetadata is the optional display metadata of a fungible asset.
// Its lifecycle is independent from AssetDetails: an asset may exist
// without metadata, and metadata survives until overwritten.
type AssetMetadata struct {
	Name   []byte
	Symbol []byte
}

func NewAssetMetadata(name, symbol []byte) AssetMetadata {
	return AssetMetadata{Name: name, Symbol: symbol}
}
