package flights

import (
	"context"
	"strings"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByCode(ctx context.Context, code string) (*domain.Flight, error)
	Search(ctx context.Context, params SearchParams) ([]SearchResult, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

// SearchParams compose predicates; zero-valued fields are not applied.
type SearchParams struct {
	FromCountry  string
	ToCountry    string
	FromAirport  string
	ToAirport    string
	DepartureDay *time.Time
	Class        *domain.SeatClass
	MaxCents     *int64
}

type SearchResult struct {
	Flight     domain.Flight `json:"flight"`
	PriceCents int64         `json:"priceCents"`
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByCode(ctx context.Context, code string) (*domain.Flight, error) {
	flight, ok, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	return flight, nil
}

func (s *FlightService) Search(ctx context.Context, params SearchParams) ([]SearchResult, error) {
	flights, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	class := domain.SeatClassEconomy
	if params.Class != nil {
		class = *params.Class
	}

	results := make([]SearchResult, 0)
	for i := range flights {
		f := flights[i]
		if params.FromCountry != "" && !strings.EqualFold(f.DepartureCountry, params.FromCountry) {
			continue
		}
		if params.ToCountry != "" && !strings.EqualFold(f.DestinationCountry, params.ToCountry) {
			continue
		}
		if params.FromAirport != "" && !strings.EqualFold(f.DepartureAirport, params.FromAirport) {
			continue
		}
		if params.ToAirport != "" && !strings.EqualFold(f.ArrivalAirport, params.ToAirport) {
			continue
		}
		if params.DepartureDay != nil && !sameUTCDay(f.DepartureUTC, *params.DepartureDay) {
			continue
		}
		price := f.PriceCents(class)
		if params.MaxCents != nil && price > *params.MaxCents {
			continue
		}
		results = append(results, SearchResult{Flight: f, PriceCents: price})
	}
	return results, nil
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

var _ FlightUseCase = (*FlightService)(nil)
