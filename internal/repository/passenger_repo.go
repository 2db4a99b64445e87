package repository

import (
	"context"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/storage"
	"github.com/google/uuid"
)

type PassengerRepository interface {
	List(ctx context.Context) ([]domain.Passenger, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Passenger, bool, error)
	Save(ctx context.Context, passenger domain.Passenger) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type JSONPassengerRepository struct {
	store *storage.Store[domain.Passenger, uuid.UUID]
}

func NewPassengerRepository(path string) *JSONPassengerRepository {
	return &JSONPassengerRepository{
		store: storage.NewStore(path, func(p domain.Passenger) uuid.UUID { return p.ID }),
	}
}

func (r *JSONPassengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	return r.store.GetAll(ctx)
}

func (r *JSONPassengerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Passenger, bool, error) {
	return r.store.GetByID(ctx, id)
}

func (r *JSONPassengerRepository) Save(ctx context.Context, passenger domain.Passenger) error {
	return r.store.Upsert(ctx, passenger)
}

func (r *JSONPassengerRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.store.Delete(ctx, id)
}

var _ PassengerRepository = (*JSONPassengerRepository)(nil)
