package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store groups every repository over one database handle. Inside
// Transaction the handle is the transaction itself, so all reads and writes
// made through the callback's Store commit or roll back together.
type Store struct {
	db *gorm.DB

	Users    *UserRepository
	Sitters  *SitterRepository
	Pets     *PetRepository
	Tasks    *TaskRepository
	Orders   *OrderRepository
	Reviews  *ReviewRepository
	Comments *CommentRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Users:    NewUserRepository(db),
		Sitters:  NewSitterRepository(db),
		Pets:     NewPetRepository(db),
		Tasks:    NewTaskRepository(db),
		Orders:   NewOrderRepository(db),
		Reviews:  NewReviewRepository(db),
		Comments: NewCommentRepository(db),
	}
}

func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// forUpdate adds a row lock on backends that support one. sqlite already
// serialises writers.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

type Page struct {
	Page  int
	Limit int
}

func (p Page) offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
