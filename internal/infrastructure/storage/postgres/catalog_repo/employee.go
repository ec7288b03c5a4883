package catalog_repo

import (
	"stockroom/internal/domain/catalogs/employee"
	"stockroom/internal/infrastructure/storage/postgres"
)

const employeeTable = "cat_employees"

// Compile-time check.
var _ employee.Repository = (*EmployeeRepo)(nil)

// EmployeeRepo implements employee.Repository.
type EmployeeRepo struct {
	*BaseCatalogRepo[*employee.Employee]
}

// NewEmployeeRepo creates a new employee repository.
func NewEmployeeRepo(txManager *postgres.TxManager) *EmployeeRepo {
	return &EmployeeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			employeeTable,
			"employee",
			postgres.ExtractDBColumns[employee.Employee](),
			func() *employee.Employee { return &employee.Employee{} },
		),
	}
}
