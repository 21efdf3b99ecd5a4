package repository_test

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../../migrations/01_users.up.sql",
			"../../migrations/02_products.up.sql",
			"../../migrations/03_carts.up.sql",
			"../../migrations/04_orders.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func randomUser() domain.User {
	return domain.User{
		Email:        gofakeit.Email(),
		PasswordHash: gofakeit.UUID(),
		Name:         gofakeit.Name(),
		Role:         domain.RoleUser,
	}
}

func randomProduct(stock int32) domain.Product {
	return domain.Product{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.Sentence(8),
		Price:       randomMoney(),
		Category:    gofakeit.ProductCategory(),
		Stock:       stock,
		ImageURL:    gofakeit.URL(),
	}
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)),
		Currency: currency.USD,
	}
}
