// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/ledger"
	"stockroom/internal/infrastructure/numerator"
	"stockroom/internal/infrastructure/storage/postgres"
	"stockroom/internal/infrastructure/storage/postgres/catalog_repo"
	"stockroom/internal/infrastructure/storage/postgres/ledger_repo"
	"stockroom/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to database
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	tenantID, err := resolveTenantID()
	if err != nil {
		log.Fatalw("invalid TENANT_ID", "error", err)
	}
	log.Infow("seeding tenant", "tenant_id", tenantID)

	if err := seedAdminUser(ctx, pool, log, tenantID); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	// Seed demo data if requested
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log, tenantID); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// resolveTenantID reads TENANT_ID or generates a fresh one.
func resolveTenantID() (tenant.ID, error) {
	if raw := os.Getenv("TENANT_ID"); raw != "" {
		return id.Parse(raw)
	}
	return id.New(), nil
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger, tenantID tenant.ID) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@stockroom.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	// Check if admin already exists in this tenant
	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM sys_users WHERE tenant_id = $1 AND email = $2`,
		tenantID, adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now().UTC()

	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO sys_users (
			id, tenant_id, email, password_hash, name, role,
			is_active, failed_login_attempts, created_at, updated_at, version
		)
		VALUES ($1, $2, $3, $4, 'System Admin', 'admin', true, 0, $5, $5, 1)
	`, userID, tenantID, adminEmail, string(passwordHash), now)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created",
		"email", adminEmail,
		"user_id", userID,
	)

	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger, tenantID tenant.ID) error {
	log.Info("seeding demo data...")

	// 1. Seed Categories
	categories := []string{
		"Material de Escritório",
		"Limpeza",
		"EPI",
		"Ferramentas",
	}

	categoryIDs := make(map[string]id.ID)

	for _, name := range categories {
		catID := id.New()
		commandTag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_categories (id, tenant_id, name, created_at, updated_at, version)
			VALUES ($1, $2, $3, now(), now(), 1)
			ON CONFLICT (tenant_id, name) DO NOTHING
		`, catID, tenantID, name)
		if err != nil {
			log.Warnw("failed to seed category", "name", name, "error", err)
			continue
		}

		// If inserted, use the new ID; on conflict fetch the existing one.
		if commandTag.RowsAffected() == 0 {
			err = pool.Pool.QueryRow(ctx, `
				SELECT id FROM cat_categories WHERE tenant_id = $1 AND name = $2
			`, tenantID, name).Scan(&catID)
			if err != nil {
				log.Warnw("failed to fetch existing category id", "name", name, "error", err)
				continue
			}
		}

		categoryIDs[name] = catID
	}

	// 2. Seed Suppliers
	suppliers := []struct {
		name string
		cnpj string
	}{
		{"Papelaria Central Ltda", "11222333000181"},
		{"Distribuidora Limpa Tudo", "44555666000172"},
		{"EPI Brasil Equipamentos", "77888999000163"},
	}

	var supplierID id.ID
	for i, s := range suppliers {
		sid := id.New()
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_suppliers (id, tenant_id, name, cnpj, created_at, updated_at, version)
			VALUES ($1, $2, $3, $4, now(), now(), 1)
			ON CONFLICT (tenant_id, name) DO NOTHING
		`, sid, tenantID, s.name, s.cnpj)
		if err != nil {
			log.Warnw("failed to seed supplier", "name", s.name, "error", err)
			continue
		}
		if i == 0 {
			supplierID = sid
		}
	}

	// 3. Seed Employees
	employees := []struct {
		name       string
		department string
	}{
		{"Maria Souza", "Administrativo"},
		{"João Pereira", "Manutenção"},
		{"Ana Lima", "Almoxarifado"},
	}

	for _, e := range employees {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_employees (id, tenant_id, name, department, active, created_at, updated_at, version)
			VALUES ($1, $2, $3, $4, true, now(), now(), 1)
			ON CONFLICT (tenant_id, name) DO NOTHING
		`, id.New(), tenantID, e.name, e.department)
		if err != nil {
			log.Warnw("failed to seed employee", "name", e.name, "error", err)
		}
	}

	// 4. Seed Third Parties
	thirdParties := []string{
		"Construtora Horizonte",
		"Oficina do Bairro",
	}

	for _, name := range thirdParties {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_third_parties (id, tenant_id, name, created_at, updated_at, version)
			VALUES ($1, $2, $3, now(), now(), 1)
			ON CONFLICT (tenant_id, name) DO NOTHING
		`, id.New(), tenantID, name)
		if err != nil {
			log.Warnw("failed to seed third party", "name", name, "error", err)
		}
	}

	// 5. Seed Materials (zero stock; the opening entry loads balances)
	materials := []struct {
		name     string
		category string
		unit     string
		minimum  int64
		price    string
	}{
		{"Papel A4 (resma)", "Material de Escritório", "un", 10, "25.90"},
		{"Caneta esferográfica azul", "Material de Escritório", "un", 50, "2.50"},
		{"Detergente 5L", "Limpeza", "gl", 6, "18.00"},
		{"Luva de proteção", "EPI", "par", 20, "12.75"},
		{"Chave de fenda 6mm", "Ferramentas", "un", 5, "32.00"},
	}

	opening := make([]openingLine, 0, len(materials))

	for _, m := range materials {
		mid := id.New()
		price, err := types.MoneyFromString(m.price)
		if err != nil {
			return fmt.Errorf("parse price for %s: %w", m.name, err)
		}

		var categoryID any
		if cid, ok := categoryIDs[m.category]; ok {
			categoryID = cid
		}

		commandTag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_materials (
				id, tenant_id, name, category_id, unit,
				current_stock, minimum_stock, unit_price,
				created_at, updated_at, version
			)
			VALUES ($1, $2, $3, $4, $5, 0, $6, $7, now(), now(), 1)
			ON CONFLICT (tenant_id, name) DO NOTHING
		`, mid, tenantID, m.name, categoryID, m.unit, m.minimum, price)
		if err != nil {
			log.Warnw("failed to seed material", "name", m.name, "error", err)
			continue
		}
		if commandTag.RowsAffected() == 0 {
			continue
		}

		opening = append(opening, openingLine{
			materialID: mid,
			quantity:   m.minimum * 3,
			unitPrice:  price,
		})
	}

	// 6. Opening stock entry through the ledger, so balances, numbering
	// and the audit trail stay consistent with runtime postings.
	if len(opening) > 0 && !id.IsNil(supplierID) {
		if err := seedOpeningEntry(ctx, pool, tenantID, supplierID, opening); err != nil {
			return fmt.Errorf("seed opening entry: %w", err)
		}
		log.Infow("opening entry posted", "items", len(opening))
	}

	log.Info("demo data seeded successfully")
	return nil
}

// openingLine is one line of the opening stock entry.
type openingLine struct {
	materialID id.ID
	quantity   int64
	unitPrice  types.Money
}

func seedOpeningEntry(
	ctx context.Context,
	pool *postgres.Pool,
	tenantID tenant.ID,
	supplierID id.ID,
	lines []openingLine,
) error {
	txManager := postgres.NewTxManager(pool)

	materialRepo := catalog_repo.NewMaterialRepo(txManager)
	movementRepo := ledger_repo.NewMovementRepo(txManager)
	audit, err := postgres.NewAuditService(txManager)
	if err != nil {
		return err
	}
	counterparties := ledger.Counterparties{
		Suppliers:    catalog_repo.NewSupplierRepo(txManager),
		Employees:    catalog_repo.NewEmployeeRepo(txManager),
		ThirdParties: catalog_repo.NewThirdPartyRepo(txManager),
	}
	service := ledger.NewService(movementRepo, materialRepo, counterparties, txManager, numerator.New(txManager), audit)

	mv := ledger.NewEntry(tenantID, time.Now().UTC(), ledger.OriginSupplier)
	mv.SupplierID = &supplierID

	for _, line := range lines {
		mv.AddEntryItem(line.materialID, line.quantity, line.unitPrice)
	}

	_, err = service.Post(ctx, tenantID, mv)
	return err
}
