package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/travelbook/flightbooking/internal/domain"
	"github.com/travelbook/flightbooking/internal/service/user"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, userID int64, details domain.FlightDetails) (int64, error) {
	args := m.Called(ctx, userID, details)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingUseCase) ListBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetUpcoming(ctx context.Context, userID int64) (*domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetSummary(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, bookingID, userID int64) (domain.CancelResult, error) {
	args := m.Called(ctx, bookingID, userID)
	return args.Get(0).(domain.CancelResult), args.Error(1)
}

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, in user.RegisterInput) (domain.User, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserUseCase) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Get(1).(domain.User), args.Error(2)
}

func (m *MockUserUseCase) GetCurrent(ctx context.Context, userID int64) (domain.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateCurrent(ctx context.Context, userID int64, in user.UpdateInput) (domain.User, error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(domain.User), args.Error(1)
}

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Search(ctx context.Context, q domain.FlightQuery) ([]byte, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(raw string) (domain.Session, error) {
	args := m.Called(raw)
	return args.Get(0).(domain.Session), args.Error(1)
}
