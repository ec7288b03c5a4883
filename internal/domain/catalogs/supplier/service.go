package supplier

import (
	"context"
	"regexp"

	"stockroom/internal/core/tx"
	"stockroom/internal/domain"
)

var cnpjFormatRE = regexp.MustCompile(`\D`)

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
	repo Repository
}

// NewService creates a new Supplier service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "supplier",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.normalizeCNPJ)
	base.Hooks().OnBeforeUpdate(svc.normalizeCNPJ)

	return svc
}

// normalizeCNPJ strips formatting so the stored value is digits only.
func (s *Service) normalizeCNPJ(ctx context.Context, sup *Supplier) error {
	if sup.CNPJ != nil && *sup.CNPJ != "" {
		cleaned := cnpjFormatRE.ReplaceAllString(*sup.CNPJ, "")
		sup.CNPJ = &cleaned
	}
	return nil
}
