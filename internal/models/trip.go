package models

import "github.com/shopspring/decimal"

// DefaultBaseCurrency is used when a trip does not name its base currency.
const DefaultBaseCurrency = "EUR"

// TransportMode is how the group travels to the destination.
// It only affects display labels of the fixed transport cost.
type TransportMode string

const (
	TransportPlane TransportMode = "plane"
	TransportTrain TransportMode = "train"
	TransportCar   TransportMode = "car"
	TransportBus   TransportMode = "bus"
)

// ParseTransportMode normalizes a transport mode, defaulting to plane.
func ParseTransportMode(s string) TransportMode {
	switch TransportMode(s) {
	case TransportTrain, TransportCar, TransportBus:
		return TransportMode(s)
	default:
		return TransportPlane
	}
}

// Trip represents a group trip and its financial parameters.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Lisbon 2026").
	Name string

	// BaseCurrency is the ISO code all expense amounts are expressed in.
	BaseCurrency string

	// BudgetPerPerson is the planned spend per traveller.
	BudgetPerPerson decimal.Decimal

	// NumPeople is the head count the budget is planned for.
	NumPeople int

	// TransportCost is the known fixed cost of getting there (flights, train tickets).
	TransportCost decimal.Decimal

	// HotelCost is the known fixed lodging cost.
	HotelCost decimal.Decimal

	// TransportMode drives the label of the transport cost category.
	TransportMode TransportMode

	// Participants is populated by GetTrip; CreateTrip persists it when set.
	Participants []Participant

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// Base returns the trip's base currency, falling back to DefaultBaseCurrency.
func (t Trip) Base() string {
	if t.BaseCurrency == "" {
		return DefaultBaseCurrency
	}
	return t.BaseCurrency
}
