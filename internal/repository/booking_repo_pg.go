package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/travelbook/flightbooking/internal/domain"
)

// BookingRepository persists bookings. Every statement is scoped by user id.
type BookingRepository interface {
	Create(ctx context.Context, userID int64, details domain.FlightDetails) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	// GetUpcoming returns nil when no confirmed booking is dated on or after today.
	GetUpcoming(ctx context.Context, userID int64, today string) (*domain.Booking, error)
	CountByStatus(ctx context.Context, userID int64, status domain.BookingStatus) (int64, error)
	// CancelOwned moves a confirmed booking owned by userID to cancelled and
	// reports whether a row changed.
	CancelOwned(ctx context.Context, bookingID, userID int64) (bool, error)
	DeleteByStatus(ctx context.Context, userID int64, status domain.BookingStatus) (int64, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, user_id, flight_details, status, booking_date`

func (r *PGBookingRepository) Create(ctx context.Context, userID int64, details domain.FlightDetails) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_details, status) VALUES ($1, $2, $3) RETURNING id`,
		userID, []byte(details), domain.BookingStatusConfirmed).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY booking_date DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) GetUpcoming(ctx context.Context, userID int64, today string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE user_id=$1 AND status=$2 AND flight_details->>'flight_date' >= $3
		ORDER BY flight_details->>'flight_date' ASC, id ASC
		LIMIT 1`, userID, domain.BookingStatusConfirmed, today)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) CountByStatus(ctx context.Context, userID int64, status domain.BookingStatus) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id=$1 AND status=$2`, userID, status).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PGBookingRepository) CancelOwned(ctx context.Context, bookingID, userID int64) (bool, error) {
	res, err := r.db.Exec(ctx, `UPDATE bookings SET status=$1 WHERE id=$2 AND user_id=$3 AND status=$4`,
		domain.BookingStatusCancelled, bookingID, userID, domain.BookingStatusConfirmed)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *PGBookingRepository) DeleteByStatus(ctx context.Context, userID int64, status domain.BookingStatus) (int64, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE user_id=$1 AND status=$2`, userID, status)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

func scanBooking(row pgx.Row) (domain.Booking, error) {
	var (
		b       domain.Booking
		details []byte
	)
	if err := row.Scan(&b.ID, &b.UserID, &details, &b.Status, &b.BookingDate); err != nil {
		return domain.Booking{}, err
	}
	b.FlightDetails = domain.FlightDetails(details)
	return b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
