package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Store groups the repositories that must change together in one transaction.
type Store interface {
	Carts() CartRepository
	Orders() OrderRepository
	// Transaction runs fn against a Store bound to a single database transaction.
	// Returning an error from fn rolls back every write made through the transactional Store.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// GORMStore is the gorm-backed Store.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a new instance of GORMStore.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

func (s *GORMStore) Carts() CartRepository {
	return NewGORMCartRepository(s.db)
}

func (s *GORMStore) Orders() OrderRepository {
	return NewGORMOrderRepository(s.db)
}

func (s *GORMStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GORMStore{db: tx})
	})
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
