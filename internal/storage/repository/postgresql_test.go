package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/savings-accounts/internal/models"
	"github.com/magabrotheeeer/savings-accounts/internal/storage"
)

func intPtr(v int) *int { return &v }

func accountIDs(accounts []*models.SavingsAccount) []int {
	res := make([]int, 0, len(accounts))
	for _, a := range accounts {
		res = append(res, a.ID)
	}
	return res
}

func TestStorage_ListByBirthday(t *testing.T) {
	s := setupTestDatabase(t)
	ids := seedAccounts(t, s,
		newTestAccount("000000001", 13, 8, 1999),
		newTestAccount("000000002", 1, 1, 1980),
		newTestAccount("000000003", 13, 8, 2003),
		newTestAccount("000000004", 8, 13, 2003),
	)

	tests := []struct {
		name   string
		filter models.BirthdayFilter
		want   []int
	}{
		{
			name:   "day and month without year",
			filter: models.BirthdayFilter{Day: 13, Month: 8},
			want:   []int{ids[0], ids[2]},
		},
		{
			name:   "exact year",
			filter: models.BirthdayFilter{Day: 13, Month: 8, Year: intPtr(2003)},
			want:   []int{ids[2]},
		},
		{
			name:   "no match for invalid day and month",
			filter: models.BirthdayFilter{Day: 32, Month: 13},
			want:   []int{},
		},
		{
			name:   "value out of integer range",
			filter: models.BirthdayFilter{Day: 1 << 40, Month: 1},
			want:   []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListByBirthday(context.Background(), tt.filter)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, accountIDs(got))
		})
	}
}

func TestStorage_CRUD(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()

	account := newTestAccount("000000010", 29, 2, 2000)
	id, err := s.Create(ctx, account)
	require.NoError(t, err)

	got, err := s.Read(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, account.ExternalID, got.ExternalID)
	assert.Equal(t, "000000010", got.AccountNo)
	assert.True(t, decimal.RequireFromString("1500.25").Equal(got.Balance))
	assert.Equal(t, 29, got.BirthDay)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = s.Create(ctx, newTestAccount("000000010", 1, 1, 1990))
	require.ErrorIs(t, err, storage.ErrAccountExists)

	account.ClientName = "Renamed Client"
	account.BirthYear = 2004
	n, err := s.Update(ctx, account, id)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err = s.Read(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Client", got.ClientName)
	assert.Equal(t, 2004, got.BirthYear)

	n, err = s.Remove(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.Read(ctx, id)
	require.ErrorIs(t, err, storage.ErrAccountNotFound)
	_, err = s.Remove(ctx, id)
	require.ErrorIs(t, err, storage.ErrAccountNotFound)
	_, err = s.Update(ctx, account, id)
	require.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestStorage_List(t *testing.T) {
	s := setupTestDatabase(t)
	ids := seedAccounts(t, s,
		newTestAccount("000000021", 1, 1, 1990),
		newTestAccount("000000022", 2, 2, 1991),
		newTestAccount("000000023", 3, 3, 1992),
	)

	got, err := s.List(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, ids[:2], accountIDs(got))

	got, err = s.List(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.Equal(t, ids[2:], accountIDs(got))
}

func TestStorage_CanceledContext(t *testing.T) {
	s := setupTestDatabase(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListByBirthday(ctx, models.BirthdayFilter{Day: 1, Month: 1})
	require.ErrorIs(t, err, context.Canceled)
}
