package repository

import (
	"context"
	"errors"
	"fmt"

	"address-registry/internal/address"
	"address-registry/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the SQLSTATE raised by the unique_address constraint
const uniqueViolation = "23505"

const addressColumns = `
	house_number,
	direction_prefix,
	street_name,
	street_type,
	direction_suffix,
	unit,
	city,
	state_code,
	postal_code,
	postal_plus4`

// PostgresRepository implements the address store on PostgreSQL. Uniqueness is enforced by the unique_address constraint.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores a new address tuple and returns its id
func (r *PostgresRepository) Insert(ctx context.Context, key address.Key) (int64, error) {
	sql := `
		INSERT INTO addresses (` + addressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRow(ctx, sql, keyArgs(key)...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("repository: %w", address.ErrConflict)
		}
		return 0, fmt.Errorf("repository: failed to insert address: %w", err)
	}

	return id, nil
}

// Get loads the address with the given id
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Address, error) {
	sql := `
		SELECT id, ` + addressColumns + `
		FROM addresses
		WHERE id = $1
	`

	addr, err := scanAddress(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repository: %w", address.ErrNotFound)
		}
		return nil, fmt.Errorf("repository: failed to get address: %w", err)
	}

	return addr, nil
}

// Exists reports whether the exact tuple is already stored
func (r *PostgresRepository) Exists(ctx context.Context, key address.Key) (bool, error) {
	sql := `
		SELECT EXISTS (
			SELECT 1 FROM addresses
			WHERE house_number = $1
				AND direction_prefix = $2
				AND street_name = $3
				AND street_type = $4
				AND direction_suffix = $5
				AND unit = $6
				AND city = $7
				AND state_code = $8
				AND postal_code = $9
				AND postal_plus4 = $10
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, sql, keyArgs(key)...).Scan(&exists); err != nil {
		return false, fmt.Errorf("repository: failed to check address: %w", err)
	}

	return exists, nil
}

// Replace overwrites every component of an existing address
func (r *PostgresRepository) Replace(ctx context.Context, id int64, key address.Key) error {
	sql := `
		UPDATE addresses SET
			house_number = $1,
			direction_prefix = $2,
			street_name = $3,
			street_type = $4,
			direction_suffix = $5,
			unit = $6,
			city = $7,
			state_code = $8,
			postal_code = $9,
			postal_plus4 = $10,
			updated_at = now()
		WHERE id = $11
	`

	args := append(keyArgs(key), id)
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repository: %w", address.ErrConflict)
		}
		return fmt.Errorf("repository: failed to replace address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository: %w", address.ErrNotFound)
	}

	return nil
}

// Delete removes an address and frees its tuple
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository: %w", address.ErrNotFound)
	}

	return nil
}

// List returns a page of addresses ordered by ZIP code, state, city, street and house number
func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]models.Address, error) {
	sql := `
		SELECT id, ` + addressColumns + `
		FROM addresses
		ORDER BY postal_code, state_code, city, street_name, house_number, id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute list query: %w", err)
	}
	defer rows.Close()

	addresses := []models.Address{}
	for rows.Next() {
		addr, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan address: %w", err)
		}
		addresses = append(addresses, *addr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return addresses, nil
}

func scanAddress(row pgx.Row) (*models.Address, error) {
	var (
		id  int64
		key address.Key
	)
	err := row.Scan(
		&id,
		&key[address.HouseNumber],
		&key[address.DirectionPrefix],
		&key[address.StreetName],
		&key[address.StreetType],
		&key[address.DirectionSuffix],
		&key[address.Unit],
		&key[address.City],
		&key[address.StateCode],
		&key[address.PostalCode],
		&key[address.PostalPlus4],
	)
	if err != nil {
		return nil, err
	}
	return models.NewAddress(id, key)
}

func keyArgs(key address.Key) []interface{} {
	args := make([]interface{}, 0, address.NumFields+1)
	for _, v := range key {
		args = append(args, v)
	}
	return args
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
