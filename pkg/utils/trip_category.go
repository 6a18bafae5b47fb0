package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/chachabrian/umrah-travel-backend/internal/models"
)

// TripFilter selects which trips a listing shows
type TripFilter string

const (
	TripFilterAll      TripFilter = "all"
	TripFilterUpcoming TripFilter = "upcoming"
	TripFilterPast     TripFilter = "past"
)

var ErrInvalidTripFilter = errors.New("filter must be one of all, upcoming, past")

// ParseTripFilter maps a query value to a filter. Empty means all.
func ParseTripFilter(s string) (TripFilter, error) {
	switch TripFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", TripFilterAll:
		return TripFilterAll, nil
	case TripFilterUpcoming:
		return TripFilterUpcoming, nil
	case TripFilterPast:
		return TripFilterPast, nil
	}
	return "", ErrInvalidTripFilter
}

// StartOfDay truncates t to midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ClassifyTrip returns the trip's effective category. A manual category
// always wins; otherwise a trip is past only when it ended strictly
// before today. A zero end date counts as upcoming.
func ClassifyTrip(trip models.Trip, today time.Time) models.TripCategory {
	if trip.Category != nil && trip.Category.Valid() {
		return *trip.Category
	}
	if trip.EndDate.IsZero() {
		return models.TripCategoryUpcoming
	}
	end := time.Date(trip.EndDate.Year(), trip.EndDate.Month(), trip.EndDate.Day(), 0, 0, 0, 0, today.Location())
	if end.Before(StartOfDay(today)) {
		return models.TripCategoryPast
	}
	return models.TripCategoryUpcoming
}

// FilterTrips returns trips matching filter. TripFilterAll returns the
// input slice unchanged.
func FilterTrips(trips []models.Trip, filter TripFilter, today time.Time) []models.Trip {
	if filter == TripFilterAll || filter == "" {
		return trips
	}
	want := models.TripCategory(filter)
	out := make([]models.Trip, 0, len(trips))
	for _, trip := range trips {
		if ClassifyTrip(trip, today) == want {
			out = append(out, trip)
		}
	}
	return out
}
