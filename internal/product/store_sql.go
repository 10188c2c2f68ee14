package product

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// SQLStore keeps products in a relational table keyed by owner. The
// placeholders are $N style, which both the pgx stdlib driver and sqlite
// accept, so the same statements serve either backend. Every write is a
// single conditional statement; the outcome is read off RowsAffected, so
// there is no check-then-act window between existence test and mutation.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Setup creates the product table. The schema is rebuilt fresh on every
// process start; nothing here survives a restart with the default
// in-memory database.
func (s *SQLStore) Setup(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS products (
				owner       TEXT PRIMARY KEY,
				name        TEXT NOT NULL,
				description TEXT NOT NULL
			)
		`)
		return err
	})
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *SQLStore) Create(ctx context.Context, owner uuid.UUID, p Product) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO products (owner, name, description)
			SELECT $1, $2, $3
			WHERE NOT EXISTS (SELECT 1 FROM products WHERE owner = $1)
		`, owner.String(), p.Name, p.Description)
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrExists
		}
		return nil
	})
}

func (s *SQLStore) Get(ctx context.Context, owner uuid.UUID) (Product, error) {
	var p Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT name, description
			FROM products
			WHERE owner = $1
		`, owner.String()).Scan(&p.Name, &p.Description)
	})

	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *SQLStore) Update(ctx context.Context, owner uuid.UUID, name, description *string) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			UPDATE products
			SET name = COALESCE($2, name), description = COALESCE($3, description)
			WHERE owner = $1
		`, owner.String(), name, description)
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *SQLStore) Delete(ctx context.Context, owner uuid.UUID) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			DELETE FROM products
			WHERE owner = $1
		`, owner.String())
		if err != nil {
			return err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
