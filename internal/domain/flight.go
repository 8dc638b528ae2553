package domain

import "strings"

// FlightQuery selects flights by route and date, as the search form sends them.
type FlightQuery struct {
	DepartureIATA string
	ArrivalIATA   string
	FlightDate    string
}

func (q FlightQuery) Normalize() FlightQuery {
	return FlightQuery{
		DepartureIATA: strings.ToUpper(strings.TrimSpace(q.DepartureIATA)),
		ArrivalIATA:   strings.ToUpper(strings.TrimSpace(q.ArrivalIATA)),
		FlightDate:    strings.TrimSpace(q.FlightDate),
	}
}

func (q FlightQuery) Complete() bool {
	return q.DepartureIATA != "" && q.ArrivalIATA != "" && q.FlightDate != ""
}
