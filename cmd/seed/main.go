package main

import (
	"context"
	"errors"
	"log"

	"saas-manager-be/internal/config"
	"saas-manager-be/internal/dto"
	"saas-manager-be/internal/pkg/serverutils"
	"saas-manager-be/internal/repository/unitofwork"
	"saas-manager-be/pkg/admin/feature"
	"saas-manager-be/pkg/database"

	"github.com/fatih/color"
)

func floatPtr(f float64) *float64 { return &f }

// globalCatalog is the default set of features every application can use
var globalCatalog = []dto.CreateFeatureRequest{
	{
		Key: "users", Name: "Utilisateurs", Description: "Nombre d'utilisateurs inclus",
		Category: "users", Unit: "users", IsGlobal: true, SortOrder: 1,
		CustomFields: []dto.CreateCustomFieldRequest{
			{Name: "max_users", DisplayName: "Utilisateurs maximum", DataType: "number", Unit: "users", Required: true, Min: floatPtr(1)},
		},
	},
	{
		Key: "storage", Name: "Stockage", Description: "Espace de stockage",
		Category: "storage", Unit: "gb", IsGlobal: true, SortOrder: 2,
		CustomFields: []dto.CreateCustomFieldRequest{
			{Name: "quota", DisplayName: "Quota", DataType: "number", Unit: "gb", Required: true, Min: floatPtr(0)},
			{Name: "backup", DisplayName: "Sauvegarde", DataType: "boolean", DefaultValue: false, SortOrder: 1},
		},
	},
	{
		Key: "emails", Name: "Emails", Description: "Emails envoyés par mois",
		Category: "communication", Unit: "emails", IsGlobal: true, SortOrder: 3,
		CustomFields: []dto.CreateCustomFieldRequest{
			{Name: "monthly_limit", DisplayName: "Limite mensuelle", DataType: "number", Unit: "emails", Required: true, Min: floatPtr(0)},
		},
	},
	{
		Key: "api_calls", Name: "Appels API", Description: "Appels API par mois",
		Category: "usage", Unit: "api_calls", IsGlobal: true, SortOrder: 4,
		CustomFields: []dto.CreateCustomFieldRequest{
			{Name: "monthly_limit", DisplayName: "Limite mensuelle", DataType: "number", Unit: "api_calls", Required: true, Min: floatPtr(0)},
			{Name: "rate_tier", DisplayName: "Palier de débit", DataType: "enum", EnumOptions: []string{"standard", "burst"}, DefaultValue: "standard", SortOrder: 1},
		},
	},
	{
		Key: "support", Name: "Support", Description: "Niveau de support",
		Category: "other", Unit: "boolean", IsGlobal: true, SortOrder: 5,
		CustomFields: []dto.CreateCustomFieldRequest{
			{Name: "channel", DisplayName: "Canal", DataType: "enum", EnumOptions: []string{"email", "chat", "phone"}, DefaultValue: "email"},
		},
	},
}

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.LogSQL)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	manager := feature.NewManager()

	color.Cyan("Seeding global feature catalog...\n")

	created, skipped, failed := 0, 0, 0
	for _, req := range globalCatalog {
		uow := uowFactory.NewUnitOfWork(ctx)
		f, err := manager.Create(ctx, uow, req)
		switch {
		case err == nil:
			created++
			color.Green("Created feature: %s (%s, %d custom fields)", f.Name, f.Key, len(f.CustomFields))
		case errors.Is(err, serverutils.ErrConflict):
			skipped++
			color.Yellow("Feature '%s' already exists, skipping...", req.Key)
		default:
			failed++
			color.Red("Error creating feature '%s': %v", req.Key, err)
		}
	}

	color.Cyan("\nFeature seeding completed: %d created, %d skipped, %d failed", created, skipped, failed)
}
