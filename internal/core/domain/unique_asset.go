package domain

// UniqueAssetDetails is the record of a creator-minted resource. The
// whole initial supply is credited to the creator on mint; the supply
// only shrinks afterwards, through burns.
type UniqueAssetDetails struct {
	Creator  AccountId
	Metadata []byte
	Supply   Amount
}

func NewUniqueAssetDetails(creator AccountId, metadata []byte, supply Amount) UniqueAssetDetails {
	return UniqueAssetDetails{Creator: creator, Metadata: metadata, Supply: supply}
}
