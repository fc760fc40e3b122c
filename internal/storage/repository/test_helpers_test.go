package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/savings-accounts/internal/migrations"
	"github.com/magabrotheeeer/savings-accounts/internal/models"
)

const postgresPort = nat.Port("5432/tcp")

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{string(postgresPort)},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(postgresPort),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(3 * time.Minute),
	}

	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		_ = postgresContainer.Terminate(ctx)
	})

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)
	port, err := postgresContainer.MappedPort(ctx, postgresPort)
	require.NoError(t, err, "Failed to get port")

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")
	t.Cleanup(func() {
		_ = storage.Close()
	})

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))
	require.NoError(t, CheckDatabaseReady(ctx, storage))

	return storage
}

// newTestAccount возвращает счёт с уникальным номером и заданной датой рождения.
func newTestAccount(accountNo string, day, month, year int) models.SavingsAccount {
	return models.SavingsAccount{
		ExternalID:  uuid.New(),
		AccountNo:   accountNo,
		ClientID:    42,
		ClientName:  "Test Client",
		ClientEmail: "client@example.com",
		ProductName: "Passbook Savings",
		Status:      models.StatusActive,
		Currency:    "USD",
		Balance:     decimal.RequireFromString("1500.25"),
		BirthDay:    day,
		BirthMonth:  month,
		BirthYear:   year,
	}
}

// seedAccounts создаёт счета и возвращает их ID в порядке создания.
func seedAccounts(t *testing.T, s *Storage, accounts ...models.SavingsAccount) []int {
	ids := make([]int, 0, len(accounts))
	for _, a := range accounts {
		id, err := s.Create(context.Background(), a)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}
