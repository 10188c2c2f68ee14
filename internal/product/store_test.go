package product

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

func newSQLTestStore(t *testing.T) *SQLStore {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	s := NewSQLStore(db)
	if err := s.Setup(context.Background()); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return s
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemStore(),
		"sql":    newSQLTestStore(t),
	}
}

func strptr(s string) *string { return &s }

func TestStore_GetUpdateDeleteWithoutRecord(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			owner := uuid.New()

			if _, err := s.Get(ctx, owner); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get = %v, want ErrNotFound", err)
			}
			if err := s.Update(ctx, owner, strptr("x"), nil); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Update = %v, want ErrNotFound", err)
			}
			if err := s.Delete(ctx, owner); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Delete = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_CreateConflictKeepsOriginal(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			owner := uuid.New()
			orig := Product{Name: "Widget", Description: "A widget"}

			if err := s.Create(ctx, owner, orig); err != nil {
				t.Fatalf("first Create: %v", err)
			}

			err := s.Create(ctx, owner, Product{Name: "Other", Description: "changed"})
			if !errors.Is(err, ErrExists) {
				t.Fatalf("second Create = %v, want ErrExists", err)
			}

			got, err := s.Get(ctx, owner)
			if err != nil {
				t.Fatalf("Get after conflict: %v", err)
			}
			if got != orig {
				t.Fatalf("record changed by rejected create: got %+v, want %+v", got, orig)
			}
		})
	}
}

func TestStore_PartialUpdate(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			owner := uuid.New()
			if err := s.Create(ctx, owner, Product{Name: "A", Description: "B"}); err != nil {
				t.Fatalf("Create: %v", err)
			}

			if err := s.Update(ctx, owner, nil, strptr("C")); err != nil {
				t.Fatalf("Update description only: %v", err)
			}

			got, err := s.Get(ctx, owner)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Name != "A" || got.Description != "C" {
				t.Fatalf("got %+v, want {A C}", got)
			}

			if err := s.Update(ctx, owner, strptr("Gadget"), nil); err != nil {
				t.Fatalf("Update name only: %v", err)
			}

			got, err = s.Get(ctx, owner)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Name != "Gadget" || got.Description != "C" {
				t.Fatalf("got %+v, want {Gadget C}", got)
			}
		})
	}
}

func TestStore_DeleteThenGet(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			owner := uuid.New()
			if err := s.Create(ctx, owner, Product{Name: "W", Description: "D"}); err != nil {
				t.Fatalf("Create: %v", err)
			}

			if err := s.Delete(ctx, owner); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(ctx, owner); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get after delete = %v, want ErrNotFound", err)
			}
			if err := s.Delete(ctx, owner); !errors.Is(err, ErrNotFound) {
				t.Fatalf("second Delete = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_OwnersAreIndependent(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a, b := uuid.New(), uuid.New()

			if err := s.Create(ctx, a, Product{Name: "A", Description: "a"}); err != nil {
				t.Fatalf("Create a: %v", err)
			}
			if err := s.Create(ctx, b, Product{Name: "B", Description: "b"}); err != nil {
				t.Fatalf("Create b: %v", err)
			}

			if err := s.Delete(ctx, a); err != nil {
				t.Fatalf("Delete a: %v", err)
			}

			got, err := s.Get(ctx, b)
			if err != nil {
				t.Fatalf("Get b: %v", err)
			}
			if got.Name != "B" {
				t.Fatalf("owner b record = %+v, want Name B", got)
			}
		})
	}
}
