package savings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/savings-accounts/internal/cache"
	"github.com/magabrotheeeer/savings-accounts/internal/config"
	"github.com/magabrotheeeer/savings-accounts/internal/models"
	"github.com/magabrotheeeer/savings-accounts/internal/storage"
	"github.com/magabrotheeeer/savings-accounts/internal/storage/memory"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) Create(ctx context.Context, account models.SavingsAccount) (int, error) {
	args := m.Called(ctx, account)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) Read(ctx context.Context, id int) (*models.SavingsAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavingsAccount), args.Error(1)
}

func (m *RepoMock) Update(ctx context.Context, account models.SavingsAccount, id int) (int, error) {
	args := m.Called(ctx, account, id)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) Remove(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) List(ctx context.Context, limit, offset int) ([]*models.SavingsAccount, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SavingsAccount), args.Error(1)
}

func (m *RepoMock) ListByBirthday(ctx context.Context, filter models.BirthdayFilter) ([]*models.SavingsAccount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SavingsAccount), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(keys ...string) error {
	return m.Called(keys).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func intPtr(v int) *int { return &v }

func validRequest() models.DummyAccount {
	return models.DummyAccount{
		AccountNo:   "000000001",
		ClientID:    7,
		ClientName:  "Ada Lovelace",
		ClientEmail: "ada@example.com",
		ProductName: "Passbook Savings",
		Currency:    "usd",
		Balance:     "100.50",
		BirthDay:    13,
		BirthMonth:  8,
		BirthYear:   2003,
	}
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name       string
		req        func() models.DummyAccount
		setupMocks func(r *RepoMock, c *CacheMock)
		wantID     int
		wantErr    error
	}{
		{
			name: "success create",
			req:  validRequest,
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("Create", mock.Anything, mock.MatchedBy(func(a models.SavingsAccount) bool {
					return a.AccountNo == "000000001" &&
						a.Currency == "USD" &&
						a.Status == models.StatusActive &&
						a.Balance.String() == "100.5" &&
						a.ExternalID.String() != "00000000-0000-0000-0000-000000000000"
				})).Return(42, nil).Once()
				c.On("Set", "savings:birthday:13:8:version", mock.AnythingOfType("string"), time.Minute).Return(nil).Once()
				c.On("Set", "savings:birthday:13:8:2003:version", mock.AnythingOfType("string"), time.Minute).Return(nil).Once()
				c.On("Invalidate", []string{"savings:birthday:13:8", "savings:birthday:13:8:2003"}).Return(nil).Once()
			},
			wantID: 42,
		},
		{
			name: "cache failure does not fail create",
			req:  validRequest,
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("Create", mock.Anything, mock.Anything).Return(1, nil).Once()
				c.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down")).Twice()
				c.On("Invalidate", mock.Anything).Return(errors.New("redis down")).Once()
			},
			wantID: 1,
		},
		{
			name: "impossible birth date",
			req: func() models.DummyAccount {
				req := validRequest()
				req.BirthDay, req.BirthMonth = 31, 4
				return req
			},
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    ErrInvalidBirthDate,
		},
		{
			name: "bad balance",
			req: func() models.DummyAccount {
				req := validRequest()
				req.Balance = "1e"
				return req
			},
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    ErrInvalidBalance,
		},
		{
			name: "duplicate account",
			req:  validRequest,
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("Create", mock.Anything, mock.Anything).Return(0, storage.ErrAccountExists).Once()
			},
			wantErr: storage.ErrAccountExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			c := new(CacheMock)
			tt.setupMocks(repo, c)
			svc := NewService(repo, c, time.Minute, newNoopLogger())

			id, err := svc.Create(context.Background(), tt.req())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repo.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}

func TestService_ListByBirthday_CacheHitAndMiss(t *testing.T) {
	accounts := []*models.SavingsAccount{{ID: 1, BirthDay: 13, BirthMonth: 8, BirthYear: 1999}}
	filter := models.BirthdayFilter{Day: 13, Month: 8}

	t.Run("miss goes to repository and fills cache", func(t *testing.T) {
		repo := new(RepoMock)
		c := new(CacheMock)
		c.On("Get", "savings:birthday:13:8", mock.Anything).Return(false, nil).Once()
		c.On("Get", "savings:birthday:13:8:version", mock.Anything).Return(false, nil).Twice()
		repo.On("ListByBirthday", mock.Anything, filter).Return(accounts, nil).Once()
		c.On("Set", "savings:birthday:13:8", accounts, time.Minute).Return(nil).Once()

		svc := NewService(repo, c, time.Minute, newNoopLogger())
		got, err := svc.ListByBirthday(context.Background(), filter)
		require.NoError(t, err)
		assert.Equal(t, accounts, got)
		repo.AssertExpectations(t)
		c.AssertExpectations(t)
	})

	t.Run("repository nil result becomes empty slice", func(t *testing.T) {
		repo := new(RepoMock)
		c := new(CacheMock)
		c.On("Get", mock.Anything, mock.Anything).Return(false, nil).Times(3)
		repo.On("ListByBirthday", mock.Anything, models.BirthdayFilter{Day: 32, Month: 13}).Return(nil, nil).Once()
		c.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		svc := NewService(repo, c, time.Minute, newNoopLogger())
		got, err := svc.ListByBirthday(context.Background(), models.BirthdayFilter{Day: 32, Month: 13})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(RepoMock)
		c := new(CacheMock)
		c.On("Get", mock.Anything, mock.Anything).Return(false, errors.New("redis down")).Twice()
		repo.On("ListByBirthday", mock.Anything, filter).Return(nil, errors.New("db error")).Once()

		svc := NewService(repo, c, time.Minute, newNoopLogger())
		_, err := svc.ListByBirthday(context.Background(), filter)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "services.savings.ListByBirthday")
	})
}

func newRedisCache(t *testing.T) *cache.Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := cache.InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestService_BirthdayScenarioWithRedis(t *testing.T) {
	svc := NewService(memory.New(), newRedisCache(t), time.Hour, newNoopLogger())
	ctx := context.Background()

	first := validRequest()
	first.AccountNo, first.BirthYear = "000000001", 1999
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	got, err := svc.ListByBirthday(ctx, models.BirthdayFilter{Day: 13, Month: 8})
	require.NoError(t, err)
	require.Len(t, got, 1)

	second := validRequest()
	second.AccountNo, second.BirthYear = "000000002", 2003
	_, err = svc.Create(ctx, second)
	require.NoError(t, err)

	got, err = svc.ListByBirthday(ctx, models.BirthdayFilter{Day: 13, Month: 8})
	require.NoError(t, err)
	require.Len(t, got, 2, "create must invalidate the cached birthday list")
	assert.Equal(t, 1999, got[0].BirthYear)
	assert.Equal(t, 2003, got[1].BirthYear)

	again, err := svc.ListByBirthday(ctx, models.BirthdayFilter{Day: 13, Month: 8})
	require.NoError(t, err)
	require.Len(t, again, 2)
	for i := range got {
		assert.Equal(t, got[i].ID, again[i].ID)
		assert.Equal(t, got[i].ExternalID, again[i].ExternalID)
		assert.True(t, got[i].Balance.Equal(again[i].Balance))
	}

	exact, err := svc.ListByBirthday(ctx, models.BirthdayFilter{Day: 13, Month: 8, Year: intPtr(2003)})
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, "000000002", exact[0].AccountNo)

	none, err := svc.ListByBirthday(ctx, models.BirthdayFilter{Day: 32, Month: 13})
	require.NoError(t, err)
	assert.Empty(t, none)
}

// racingRepo выполняет afterRead один раз сразу после чтения выборки,
// как будто запись пришла между чтением из базы и записью в кеш.
type racingRepo struct {
	*memory.Storage
	afterRead func()
}

func (r *racingRepo) ListByBirthday(ctx context.Context, filter models.BirthdayFilter) ([]*models.SavingsAccount, error) {
	accounts, err := r.Storage.ListByBirthday(ctx, filter)
	if r.afterRead != nil {
		f := r.afterRead
		r.afterRead = nil
		f()
	}
	return accounts, err
}

func TestService_ListByBirthdayDropsResultReadBeforeCreate(t *testing.T) {
	repo := &racingRepo{Storage: memory.New()}
	svc := NewService(repo, newRedisCache(t), time.Hour, newNoopLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.AccountNo = "000000002"
	repo.afterRead = func() {
		_, err := svc.Create(ctx, second)
		require.NoError(t, err)
	}

	filter := models.BirthdayFilter{Day: 13, Month: 8}
	got, err := svc.ListByBirthday(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.ListByBirthday(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_UpdateAndRemoveInvalidate(t *testing.T) {
	svc := NewService(memory.New(), newRedisCache(t), time.Hour, newNoopLogger())
	ctx := context.Background()

	id, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	got, err := svc.ListByBirthday(ctx, models.BirthdayFilter{Day: 13, Month: 8})
	require.NoError(t, err)
	require.Len(t, got, 1)

	read, err := svc.Read(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", read.ClientName)

	moved := validRequest()
	moved.BirthDay = 14
	moved.ClientName = "Ada King"
	_, err = svc.Update(ctx, moved, id)
	require.NoError(t, err)

	got, err = svc.ListByBirthday(ctx, models.BirthdayFilter{Day: 13, Month: 8})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = svc.ListByBirthday(ctx, models.BirthdayFilter{Day: 14, Month: 8})
	require.NoError(t, err)
	require.Len(t, got, 1)

	read, err = svc.Read(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada King", read.ClientName)

	_, err = svc.Remove(ctx, id)
	require.NoError(t, err)

	got, err = svc.ListByBirthday(ctx, models.BirthdayFilter{Day: 14, Month: 8})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.Read(ctx, id)
	require.ErrorIs(t, err, storage.ErrAccountNotFound)

	_, err = svc.Remove(ctx, id)
	require.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestService_ListWithoutFilter(t *testing.T) {
	svc := NewService(memory.New(), cache.Nop{}, time.Hour, newNoopLogger())
	ctx := context.Background()

	got, err := svc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = svc.Create(ctx, validRequest())
	require.NoError(t, err)

	got, err = svc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
