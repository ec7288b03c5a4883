package catalog_repo

import (
	"stockroom/internal/domain/catalogs/category"
	"stockroom/internal/infrastructure/storage/postgres"
)

const categoryTable = "cat_categories"

// Compile-time check.
var _ category.Repository = (*CategoryRepo)(nil)

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txManager *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			categoryTable,
			"category",
			postgres.ExtractDBColumns[category.Category](),
			func() *category.Category { return &category.Category{} },
		),
	}
}
