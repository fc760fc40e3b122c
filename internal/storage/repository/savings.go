package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/savings-accounts/internal/models"
	"github.com/magabrotheeeer/savings-accounts/internal/storage"
)

const uniqueViolation = "23505"

const accountColumns = `id, external_id, account_no, client_id, client_name, client_email,
			      product_name, status, currency, balance, birth_day, birth_month, birth_year, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.SavingsAccount, error) {
	var a models.SavingsAccount
	err := row.Scan(&a.ID, &a.ExternalID, &a.AccountNo, &a.ClientID, &a.ClientName, &a.ClientEmail,
		&a.ProductName, &a.Status, &a.Currency, &a.Balance, &a.BirthDay, &a.BirthMonth, &a.BirthYear, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, storage.ErrAccountExists)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Create вставляет новый счёт и возвращает его ID.
func (s *Storage) Create(ctx context.Context, account models.SavingsAccount) (int, error) {
	const op = "storage.Create"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO savings_accounts (external_id, account_no, client_id, client_name, client_email,
			      product_name, status, currency, balance, birth_day, birth_month, birth_year)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		account.ExternalID, account.AccountNo, account.ClientID, account.ClientName, account.ClientEmail,
		account.ProductName, account.Status, account.Currency, account.Balance,
		account.BirthDay, account.BirthMonth, account.BirthYear).Scan(&newID)
	if err != nil {
		return 0, mapWriteError(op, err)
	}
	return newID, nil
}

// Read возвращает счёт по ID.
func (s *Storage) Read(ctx context.Context, id int) (*models.SavingsAccount, error) {
	const op = "storage.Read"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM savings_accounts WHERE id = $1`
	account, err := scanAccount(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return account, nil
}

// Update обновляет изменяемые поля счёта и возвращает количество изменённых строк.
func (s *Storage) Update(ctx context.Context, account models.SavingsAccount, id int) (int, error) {
	const op = "storage.Update"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE savings_accounts
			  SET account_no = $1, client_id = $2, client_name = $3, client_email = $4,
			      product_name = $5, status = $6, currency = $7, balance = $8,
			      birth_day = $9, birth_month = $10, birth_year = $11
			  WHERE id = $12`
	result, err := s.DB.ExecContext(ctx, query,
		account.AccountNo, account.ClientID, account.ClientName, account.ClientEmail,
		account.ProductName, account.Status, account.Currency, account.Balance,
		account.BirthDay, account.BirthMonth, account.BirthYear, id)
	if err != nil {
		return 0, mapWriteError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
	}
	return int(rowsAffected), nil
}

// Remove удаляет счёт по ID и возвращает количество удалённых строк.
func (s *Storage) Remove(ctx context.Context, id int) (int, error) {
	const op = "storage.Remove"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM savings_accounts WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrAccountNotFound)
	}
	return int(rowsAffected), nil
}

// List возвращает счета по возрастанию ID с пагинацией.
func (s *Storage) List(ctx context.Context, limit, offset int) ([]*models.SavingsAccount, error) {
	const op = "storage.List"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM savings_accounts
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collect(op, rows)
}

// ListByBirthday возвращает счета, у владельцев которых совпадают день и месяц рождения,
// а если в фильтре задан год, то и год. Порядок по возрастанию ID.
func (s *Storage) ListByBirthday(ctx context.Context, filter models.BirthdayFilter) ([]*models.SavingsAccount, error) {
	const op = "storage.ListByBirthday"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if !fitsInt32(filter.Day) || !fitsInt32(filter.Month) || (filter.Year != nil && !fitsInt32(*filter.Year)) {
		return make([]*models.SavingsAccount, 0), nil
	}

	var year sql.NullInt64
	if filter.Year != nil {
		year = sql.NullInt64{Int64: int64(*filter.Year), Valid: true}
	}

	query := `SELECT ` + accountColumns + `
			  FROM savings_accounts
			  WHERE birth_day = $1
			    AND birth_month = $2
			    AND ($3::int IS NULL OR birth_year = $3)
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, filter.Day, filter.Month, year)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collect(op, rows)
}

// fitsInt32 проверяет, что значение помещается в integer-колонку. Иначе совпадений быть не может.
func fitsInt32(v int) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

func collect(op string, rows *sql.Rows) ([]*models.SavingsAccount, error) {
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.SavingsAccount, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
