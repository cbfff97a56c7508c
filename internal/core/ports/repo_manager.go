package ports

import (
	"github.com/tokenledger/tokend/internal/core/domain"
)

// RepoManager gives access to the storage-backed repositories of the
// two registries. Each registry owns its own store, balances and nonce;
// no command ever spans both.
type RepoManager interface {
	Assets() domain.AssetRepository
	UniqueAssets() domain.UniqueAssetRepository
	Close()
}
