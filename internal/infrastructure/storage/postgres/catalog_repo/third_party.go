package catalog_repo

import (
	"stockroom/internal/domain/catalogs/thirdparty"
	"stockroom/internal/infrastructure/storage/postgres"
)

const thirdPartyTable = "cat_third_parties"

// Compile-time check.
var _ thirdparty.Repository = (*ThirdPartyRepo)(nil)

// ThirdPartyRepo implements thirdparty.Repository.
type ThirdPartyRepo struct {
	*BaseCatalogRepo[*thirdparty.ThirdParty]
}

// NewThirdPartyRepo creates a new third-party repository.
func NewThirdPartyRepo(txManager *postgres.TxManager) *ThirdPartyRepo {
	return &ThirdPartyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			thirdPartyTable,
			"third_party",
			postgres.ExtractDBColumns[thirdparty.ThirdParty](),
			func() *thirdparty.ThirdParty { return &thirdparty.ThirdParty{} },
		),
	}
}
