package booking

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/travelbook/flightbooking/internal/domain"
	"github.com/travelbook/flightbooking/internal/kafka"
	"github.com/travelbook/flightbooking/internal/logger"
	"github.com/travelbook/flightbooking/internal/repository"
)

const (
	// DefaultCancelledRetention is how many cancelled bookings trigger a purge.
	DefaultCancelledRetention = 2

	flightDateLayout = "2006-01-02"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, userID int64, details domain.FlightDetails) (int64, error)
	ListBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	GetUpcoming(ctx context.Context, userID int64) (*domain.Booking, error)
	GetSummary(ctx context.Context, userID int64) (int64, error)
	CancelBooking(ctx context.Context, bookingID, userID int64) (domain.CancelResult, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type BookingService struct {
	bookings    repository.BookingRepository
	producer    Producer
	eventsTopic string
	retention   int64
	now         func() time.Time
}

type BookingServiceOption func(*BookingService)

// WithEvents publishes lifecycle events to topic.
func WithEvents(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func WithCancelledRetention(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.retention = int64(n)
		}
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(bookings repository.BookingRepository, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings:  bookings,
		retention: DefaultCancelledRetention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, userID int64, details domain.FlightDetails) (int64, error) {
	if details.Absent() {
		return 0, domain.NewValidationError("Flight details are required")
	}
	if !details.IsObject() {
		return 0, domain.NewValidationError("Flight details must be a JSON object")
	}

	id, err := s.bookings.Create(ctx, userID, details)
	if err != nil {
		return 0, fmt.Errorf("create booking: %w", err)
	}

	s.publish(ctx, kafka.NewBookingEvent(kafka.EventBookingCreated, userID, id, string(domain.BookingStatusConfirmed)))
	return id, nil
}

func (s *BookingService) ListBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// GetUpcoming returns the earliest confirmed booking whose flight date is
// today or later, or nil.
func (s *BookingService) GetUpcoming(ctx context.Context, userID int64) (*domain.Booking, error) {
	today := s.now().Format(flightDateLayout)
	upcoming, err := s.bookings.GetUpcoming(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("get upcoming booking: %w", err)
	}
	return upcoming, nil
}

// GetSummary counts confirmed bookings only.
func (s *BookingService) GetSummary(ctx context.Context, userID int64) (int64, error) {
	count, err := s.bookings.CountByStatus(ctx, userID, domain.BookingStatusConfirmed)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

// CancelBooking cancels a confirmed booking owned by userID, then applies the
// retention rule: once the user holds at least retention cancelled bookings,
// all of them are deleted. A failing purge is logged and does not undo the
// cancellation.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, userID int64) (domain.CancelResult, error) {
	changed, err := s.bookings.CancelOwned(ctx, bookingID, userID)
	if err != nil {
		return domain.CancelResult{}, fmt.Errorf("cancel booking %d: %w", bookingID, err)
	}
	if !changed {
		return domain.CancelResult{}, domain.ErrNotFoundOrForbidden
	}

	result := domain.CancelResult{BookingID: bookingID}
	s.publish(ctx, kafka.NewBookingEvent(kafka.EventBookingCancelled, userID, bookingID, string(domain.BookingStatusCancelled)))

	purged, cleared, err := s.purgeCancelled(ctx, userID)
	if err != nil {
		logger.Errorf(ctx, "retention purge for user %d after cancelling booking %d: %v", userID, bookingID, err)
		return result, nil
	}
	if purged {
		result.HistoryCleared = true
		result.ClearedCount = cleared

		event := kafka.NewBookingEvent(kafka.EventBookingHistoryCleared, userID, 0, string(domain.BookingStatusCancelled))
		event.Cleared = cleared
		s.publish(ctx, event)
	}
	return result, nil
}

func (s *BookingService) purgeCancelled(ctx context.Context, userID int64) (bool, int64, error) {
	count, err := s.bookings.CountByStatus(ctx, userID, domain.BookingStatusCancelled)
	if err != nil {
		return false, 0, fmt.Errorf("count cancelled: %w", err)
	}
	if count < s.retention {
		return false, 0, nil
	}

	removed, err := s.bookings.DeleteByStatus(ctx, userID, domain.BookingStatusCancelled)
	if err != nil {
		return false, 0, fmt.Errorf("delete cancelled: %w", err)
	}
	return true, removed, nil
}

func (s *BookingService) publish(ctx context.Context, event kafka.BookingEvent) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	key := strconv.FormatInt(event.UserID, 10)
	if err := s.producer.Publish(ctx, s.eventsTopic, key, event); err != nil {
		logger.Warnf(ctx, "publish %s event for user %d: %v", event.Type, event.UserID, err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
