package finance

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultVolatility bounds a single random-walk step to ±3%.
const DefaultVolatility = 0.03

var minPrice = decimal.RequireFromString("0.01")

// PriceMove is the result of one random-walk step.
type PriceMove struct {
	Price         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
}

// RandomWalk moves price by a uniform percentage in [-volatility, +volatility].
// Prices are kept in cents and never drop below one cent.
func RandomWalk(rng Random, price decimal.Decimal, volatility float64) PriceMove {
	pct := uniformFloat(rng, -volatility, volatility)
	next := RoundCents(price.Mul(decimal.NewFromFloat(1 + pct)))
	if next.LessThan(minPrice) {
		next = minPrice
	}
	change := next.Sub(price)
	changePct := decimal.Zero
	if price.IsPositive() {
		changePct = RoundCents(change.Div(price).Mul(hundred))
	}
	return PriceMove{Price: next, Change: change, ChangePercent: changePct}
}

var (
	basePrices = map[string]int64{
		"single_family": 350000,
		"condo":         250000,
		"townhouse":     300000,
		"multi_family":  450000,
	}
	locationMultipliers = map[string]float64{
		"National":   1.0,
		"California": 1.8,
		"New York":   1.6,
		"Texas":      0.9,
		"Florida":    1.1,
		"Arizona":    1.0,
		"Colorado":   1.3,
	}
)

// MarketData is a simulated snapshot of a housing market.
type MarketData struct {
	Location             string          `json:"location"`
	PropertyType         string          `json:"property_type"`
	MedianHomePrice      int64           `json:"median_home_price"`
	PricePerSqft         decimal.Decimal `json:"price_per_sqft"`
	YearOverYearChange   decimal.Decimal `json:"year_over_year_change"`
	MonthOverMonthChange decimal.Decimal `json:"month_over_month_change"`
	MedianDaysOnMarket   int             `json:"median_days_on_market"`
	InventoryMonths      decimal.Decimal `json:"inventory_months"`
	AverageInterestRate  decimal.Decimal `json:"average_interest_rate"`
	MarketTemperature    string          `json:"market_temperature"`
}

// SimulateMarket draws market trends around a location-adjusted median price.
func SimulateMarket(rng Random, location, propertyType string) MarketData {
	base, ok := basePrices[propertyType]
	if !ok {
		base = basePrices["single_family"]
	}
	multiplier, ok := locationMultipliers[location]
	if !ok {
		multiplier = 1.0
	}
	median := int64(float64(base) * multiplier)

	yoy := uniformFloat(rng, -5, 15)
	mom := uniformFloat(rng, -2, 3)
	temperature := "Cool"
	switch {
	case yoy > 8:
		temperature = "Hot"
	case yoy > 3:
		temperature = "Warm"
	}

	return MarketData{
		Location:             location,
		PropertyType:         propertyType,
		MedianHomePrice:      median,
		PricePerSqft:         RoundCents(decimal.NewFromInt(median).Div(decimal.NewFromInt(2000))),
		YearOverYearChange:   RoundCents(decimal.NewFromFloat(yoy)),
		MonthOverMonthChange: RoundCents(decimal.NewFromFloat(mom)),
		MedianDaysOnMarket:   intBetween(rng, 15, 45),
		InventoryMonths:      decimal.NewFromFloat(uniformFloat(rng, 1.5, 6.0)).Round(1),
		AverageInterestRate:  decimal.NewFromFloat(uniformFloat(rng, 6.0, 7.5)).Round(3),
		MarketTemperature:    temperature,
	}
}

// ListingFilter narrows simulated listings.
type ListingFilter struct {
	MinPrice     int64
	MaxPrice     int64
	Bedrooms     int
	PropertyType string
	Location     string
}

// Listing is a simulated property for sale.
type Listing struct {
	ID               string          `json:"id"`
	Address          string          `json:"address"`
	City             string          `json:"city"`
	State            string          `json:"state"`
	PropertyType     string          `json:"property_type"`
	Price            int64           `json:"price"`
	Bedrooms         int             `json:"bedrooms"`
	Bathrooms        float64         `json:"bathrooms"`
	SquareFeet       int             `json:"square_feet"`
	YearBuilt        int             `json:"year_built"`
	DaysOnMarket     int             `json:"days_on_market"`
	PricePerSqft     decimal.Decimal `json:"price_per_sqft"`
	EstimatedPayment decimal.Decimal `json:"estimated_payment"`
	Description      string          `json:"description"`
}

var (
	listingRate    = decimal.RequireFromString("0.065")
	listingFinance = decimal.RequireFromString("0.8")
	streets        = []string{"Oak", "Pine", "Maple", "Elm", "Cedar"}
	suffixes       = []string{"St", "Ave", "Dr", "Ln", "Ct"}
	cities         = []string{"Springfield", "Riverside", "Madison", "Georgetown", "Franklin"}
	states         = []string{"CA", "TX", "FL", "NY", "CO"}
	bathrooms      = []float64{1.0, 1.5, 2.0, 2.5, 3.0, 3.5}
)

func pick[T any](rng Random, items []T) T {
	return items[intBetween(rng, 0, len(items)-1)]
}

// SimulateListings draws 10-25 listings sorted by price. The estimated payment
// assumes 20% down on a 30-year loan at 6.5%.
func SimulateListings(rng Random, f ListingFilter) []Listing {
	types := []string{"house", "condo", "townhouse"}
	if f.PropertyType != "" {
		types = []string{f.PropertyType}
	}
	location := f.Location
	if location == "" {
		location = "National"
	}

	count := intBetween(rng, 10, 25)
	listings := make([]Listing, 0, count)
	for i := 0; i < count; i++ {
		propType := pick(rng, types)
		var price int64
		if f.MaxPrice > f.MinPrice {
			price = int64(intBetween(rng, int(f.MinPrice), int(f.MaxPrice)))
		} else {
			price = int64(intBetween(rng, 200000, 600000))
		}
		beds := f.Bedrooms
		if beds <= 0 {
			beds = intBetween(rng, 2, 5)
		}
		baths := pick(rng, bathrooms)
		sqft := intBetween(rng, 1200, 3500)
		priceDec := decimal.NewFromInt(price)
		payment, _ := AmortizedPayment(priceDec.Mul(listingFinance), listingRate, 360)

		listings = append(listings, Listing{
			ID:               fmt.Sprintf("listing_%d", i+1),
			Address:          fmt.Sprintf("%d %s %s", intBetween(rng, 100, 9999), pick(rng, streets), pick(rng, suffixes)),
			City:             pick(rng, cities),
			State:            pick(rng, states),
			PropertyType:     propType,
			Price:            price,
			Bedrooms:         beds,
			Bathrooms:        baths,
			SquareFeet:       sqft,
			YearBuilt:        intBetween(rng, 1950, 2023),
			DaysOnMarket:     intBetween(rng, 1, 120),
			PricePerSqft:     RoundCents(priceDec.Div(decimal.NewFromInt(int64(sqft)))),
			EstimatedPayment: RoundCents(payment),
			Description:      fmt.Sprintf("%d bedroom, %.1f bathroom %s in %s.", beds, baths, propType, location),
		})
	}

	sort.Slice(listings, func(i, j int) bool { return listings[i].Price < listings[j].Price })
	return listings
}
