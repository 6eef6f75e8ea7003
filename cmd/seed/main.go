package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ecommerce-api/internal/authz"
	"github.com/ecommerce-api/internal/config"
	"github.com/ecommerce-api/internal/logger"
	"github.com/ecommerce-api/internal/models"

	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

type seedProduct struct {
	Name        string
	Description string
	Sku         string
	Price       float64
	Stock       int
}

type seedCategory struct {
	Name        string
	Description string
	Products    []seedProduct
}

var sampleCatalog = []seedCategory{
	{
		Name:        "Electronics",
		Description: "Phones, audio and accessories",
		Products: []seedProduct{
			{Name: "Wireless Headphones", Description: "Over-ear, noise cancelling", Sku: "EL-HP-001", Price: 129.99, Stock: 40},
			{Name: "USB-C Charger 65W", Description: "GaN fast charger", Sku: "EL-CH-065", Price: 39.50, Stock: 120},
			{Name: "Bluetooth Speaker", Description: "Waterproof portable speaker", Sku: "EL-SP-010", Price: 59.00, Stock: 3},
		},
	},
	{
		Name:        "Books",
		Description: "Printed and digital books",
		Products: []seedProduct{
			{Name: "The Go Programming Language", Description: "Donovan & Kernighan", Sku: "BK-GO-001", Price: 44.95, Stock: 25},
			{Name: "Designing Data-Intensive Applications", Description: "Martin Kleppmann", Sku: "BK-DD-001", Price: 52.00, Stock: 18},
		},
	},
	{
		Name:        "Home",
		Description: "Kitchen and living",
		Products: []seedProduct{
			{Name: "Pour-over Coffee Set", Description: "Dripper, kettle and filters", Sku: "HM-CF-002", Price: 74.00, Stock: 12},
		},
	},
}

func main() {
	cmd := &cli.Command{
		Name:  "seed",
		Usage: "ECommerce API database tooling",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := openDatabase(); err != nil {
						return err
					}
					logger.Infow("seed_migrate_done")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Insert sample categories and products",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := openDatabase(); err != nil {
						return err
					}
					return seedCatalog(models.DB)
				},
			},
			{
				Name:  "list-policies",
				Usage: "Print every role with its casbin policies",
				Action: func(ctx context.Context, c *cli.Command) error {
					svc, err := openAuthz()
					if err != nil {
						return err
					}
					matrix, err := svc.ListRolePolicies()
					if err != nil {
						return err
					}
					for _, entry := range matrix {
						fmt.Printf("%s\n", entry.Role)
						for _, policy := range entry.Policies {
							fmt.Printf("  %-6s %s\n", policy.Action, policy.Object)
						}
					}
					return nil
				},
			},
			{
				Name:      "grant-policy",
				Usage:     "Allow a role to call an admin route",
				ArgsUsage: "<role> <path> <method>",
				Action: func(ctx context.Context, c *cli.Command) error {
					role, object, action, err := policyArgs(c)
					if err != nil {
						return err
					}
					svc, err := openAuthz()
					if err != nil {
						return err
					}
					if err := svc.GrantRolePolicy(role, object, action); err != nil {
						return err
					}
					logger.Infow("seed_policy_granted", "role", role, "object", object, "action", action)
					return nil
				},
			},
			{
				Name:      "revoke-policy",
				Usage:     "Remove a role policy",
				ArgsUsage: "<role> <path> <method>",
				Action: func(ctx context.Context, c *cli.Command) error {
					role, object, action, err := policyArgs(c)
					if err != nil {
						return err
					}
					svc, err := openAuthz()
					if err != nil {
						return err
					}
					removed, err := svc.RevokeRolePolicy(role, object, action)
					if err != nil {
						return err
					}
					if !removed {
						logger.Warnw("seed_policy_not_found", "role", role, "object", object, "action", action)
						return nil
					}
					logger.Infow("seed_policy_revoked", "role", role, "object", object, "action", action)
					return nil
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create the default admin account when no admin exists",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "admin email", Sources: cli.EnvVars("EC_DEFAULT_ADMIN_EMAIL")},
					&cli.StringFlag{Name: "password", Usage: "admin password", Sources: cli.EnvVars("EC_DEFAULT_ADMIN_PASSWORD")},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := openDatabase(); err != nil {
						return err
					}
					return models.InitDefaultAdmin(c.String("email"), c.String("password"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.StdLogger().Fatal(err)
	}
}

func openDatabase() error {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		return err
	}
	return models.AutoMigrate()
}

func openAuthz() (*authz.Service, error) {
	if err := openDatabase(); err != nil {
		return nil, err
	}
	svc, err := authz.NewService(models.DB)
	if err != nil {
		return nil, err
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		return nil, err
	}
	return svc, nil
}

func policyArgs(c *cli.Command) (string, string, string, error) {
	if c.Args().Len() != 3 {
		return "", "", "", fmt.Errorf("usage: %s <role> <path> <method>", c.Name)
	}
	return c.Args().Get(0), c.Args().Get(1), c.Args().Get(2), nil
}

// seedCatalog 按名称幂等写入示例分类与商品
func seedCatalog(db *gorm.DB) error {
	now := time.Now()
	return db.Transaction(func(tx *gorm.DB) error {
		for _, entry := range sampleCatalog {
			var category models.Category
			err := tx.Where("name = ?", entry.Name).First(&category).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				category = models.Category{Name: entry.Name, Description: entry.Description, IsActive: true}
				if err := tx.Create(&category).Error; err != nil {
					return err
				}
				logger.Infow("seed_category_created", "name", category.Name)
			} else if err != nil {
				return err
			}

			for _, item := range entry.Products {
				var count int64
				if err := tx.Model(&models.Product{}).Where("sku = ?", item.Sku).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					logger.Infow("seed_product_exists", "sku", item.Sku)
					continue
				}
				product := models.Product{
					Name:          item.Name,
					Description:   item.Description,
					Sku:           item.Sku,
					Price:         models.NewMoneyFromFloat(item.Price),
					StockQuantity: item.Stock,
					CategoryID:    category.ID,
					IsActive:      true,
				}
				if err := tx.Create(&product).Error; err != nil {
					return err
				}
				if err := tx.Create(&models.Inventory{
					ProductID:       product.ID,
					Quantity:        item.Stock,
					LastRestockedAt: &now,
				}).Error; err != nil {
					return err
				}
				logger.Infow("seed_product_created", "sku", product.Sku)
			}
		}
		return nil
	})
}
