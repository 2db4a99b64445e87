package repository

import (
	"context"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/storage"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByCode(ctx context.Context, code string) (*domain.Flight, bool, error)
	Save(ctx context.Context, flight domain.Flight) error
	Delete(ctx context.Context, code string) (bool, error)
}

type JSONFlightRepository struct {
	store *storage.Store[domain.Flight, string]
}

func NewFlightRepository(path string) *JSONFlightRepository {
	return &JSONFlightRepository{
		store: storage.NewStore(path, func(f domain.Flight) string { return f.Code }),
	}
}

func (r *JSONFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.store.GetAll(ctx)
}

func (r *JSONFlightRepository) GetByCode(ctx context.Context, code string) (*domain.Flight, bool, error) {
	return r.store.GetByID(ctx, code)
}

func (r *JSONFlightRepository) Save(ctx context.Context, flight domain.Flight) error {
	return r.store.Upsert(ctx, flight)
}

func (r *JSONFlightRepository) Delete(ctx context.Context, code string) (bool, error) {
	return r.store.Delete(ctx, code)
}

var _ FlightRepository = (*JSONFlightRepository)(nil)
