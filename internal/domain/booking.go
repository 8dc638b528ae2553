package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	FlightDetails FlightDetails `json:"flight_details"`
	Status        BookingStatus `json:"status"`
	BookingDate   time.Time     `json:"booking_date"`
}

// FlightDetails is the flight snapshot captured when the booking was made.
// The bytes are kept exactly as the client sent them.
type FlightDetails json.RawMessage

func (f FlightDetails) MarshalJSON() ([]byte, error) {
	if len(f) == 0 {
		return []byte("null"), nil
	}
	return f, nil
}

func (f *FlightDetails) UnmarshalJSON(data []byte) error {
	*f = append((*f)[0:0], data...)
	return nil
}

// Absent reports whether no document was supplied.
func (f FlightDetails) Absent() bool {
	trimmed := bytes.TrimSpace(f)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// IsObject reports whether the snapshot is a JSON object.
func (f FlightDetails) IsObject() bool {
	var probe map[string]json.RawMessage
	return json.Unmarshal(f, &probe) == nil && probe != nil
}

// FlightDate returns the snapshot's flight_date field, or "" when missing.
func (f FlightDetails) FlightDate() string {
	var probe struct {
		FlightDate string `json:"flight_date"`
	}
	if err := json.Unmarshal(f, &probe); err != nil {
		return ""
	}
	return probe.FlightDate
}

// CancelResult describes the outcome of a successful cancellation.
type CancelResult struct {
	BookingID      int64
	HistoryCleared bool
	// ClearedCount is the number of cancelled rows removed by the retention purge.
	ClearedCount int64
}
