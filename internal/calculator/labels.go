package calculator

import "github.com/mmynk/tripledger/internal/models"

// Pseudo-categories that only appear in budget breakdowns.
const (
	CategoryFlight    models.Category = "Flight"
	CategoryForecast  models.Category = "Forecast"
	CategoryRemaining models.Category = "Remaining"
)

type labelKey struct {
	category models.Category
	mode     models.TransportMode
}

// modeLabels overrides defaultLabels for a given transport mode.
var modeLabels = map[labelKey]string{
	{CategoryFlight, models.TransportTrain}:          "Train",
	{CategoryFlight, models.TransportCar}:            "Road",
	{CategoryFlight, models.TransportBus}:            "Bus",
	{models.CategoryTravelRoad, models.TransportCar}: "Fuel & tolls",
}

var defaultLabels = map[models.Category]string{
	CategoryFlight:            "Flight",
	models.CategoryFood:       "Food",
	models.CategoryTransport:  "Local transport",
	models.CategoryTravelRoad: "Road costs",
	models.CategoryLodging:    "Lodging",
	models.CategoryActivity:   "Activities",
	models.CategoryShopping:   "Shopping",
	models.CategoryOther:      "Other",
	CategoryForecast:          "Forecast",
	CategoryRemaining:         "Available",
}

var categoryColors = map[models.Category]string{
	CategoryFlight:            "#4385BE",
	models.CategoryFood:       "#DA702C",
	models.CategoryTransport:  "#8B7EC8",
	models.CategoryTravelRoad: "#D0A215",
	models.CategoryLodging:    "#3AA99F",
	models.CategoryActivity:   "#CE5D97",
	models.CategoryShopping:   "#D14D41",
	models.CategoryOther:      "#6F6E69",
	CategoryForecast:          "#B7B5AC",
	CategoryRemaining:         "#879A39",
}

// CategoryLabel returns the display label of a category for a transport mode.
func CategoryLabel(category models.Category, mode models.TransportMode) string {
	if label, ok := modeLabels[labelKey{category, mode}]; ok {
		return label
	}
	if label, ok := defaultLabels[category]; ok {
		return label
	}
	return string(category)
}

// CategoryColor returns the chart color of a category.
func CategoryColor(category models.Category) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return categoryColors[models.CategoryOther]
}
