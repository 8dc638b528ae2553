package flights

import (
	"context"
	"fmt"

	"github.com/travelbook/flightbooking/internal/domain"
	"github.com/travelbook/flightbooking/internal/logger"
)

type FlightUseCase interface {
	Search(ctx context.Context, q domain.FlightQuery) ([]byte, error)
}

// Searcher fetches flights from the external provider.
type Searcher interface {
	SearchFlights(ctx context.Context, q domain.FlightQuery) ([]byte, error)
}

type SearchCache interface {
	GetFlightSearch(ctx context.Context, q domain.FlightQuery) ([]byte, error)
	SetFlightSearch(ctx context.Context, q domain.FlightQuery, payload []byte) error
}

type FlightService struct {
	searcher Searcher
	cache    SearchCache
}

// NewFlightService accepts a nil cache, in which case every search hits the provider.
func NewFlightService(searcher Searcher, cache SearchCache) *FlightService {
	return &FlightService{searcher: searcher, cache: cache}
}

func (s *FlightService) Search(ctx context.Context, q domain.FlightQuery) ([]byte, error) {
	q = q.Normalize()
	if !q.Complete() {
		return nil, domain.NewValidationError("Missing required search parameters.")
	}

	if s.cache != nil {
		cached, err := s.cache.GetFlightSearch(ctx, q)
		if err != nil {
			logger.Warnf(ctx, "flight search cache read %s-%s %s: %v", q.DepartureIATA, q.ArrivalIATA, q.FlightDate, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	payload, err := s.searcher.SearchFlights(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search flights: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetFlightSearch(ctx, q, payload); err != nil {
			logger.Warnf(ctx, "flight search cache write %s-%s %s: %v", q.DepartureIATA, q.ArrivalIATA, q.FlightDate, err)
		}
	}
	return payload, nil
}

var _ FlightUseCase = (*FlightService)(nil)
