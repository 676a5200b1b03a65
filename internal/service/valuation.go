package service

import (
	"math"
	"sort"

	"property-price-api/internal/models"
)

// Statutory useful life of reinforced-concrete housing in years. The building
// share of the price depreciates linearly over this period.
const usefulLifeYears = 47

// Share of the composite unit price attributed to land, which does not
// depreciate with building age.
const landShare = 0.6

// Minimum number of comparable sales required before the model trusts their
// median over the baseline table.
const minComparables = 3

// Baseline composite unit prices in yen per square meter. Tokyo's central
// wards are priced individually, other prefectures as a whole.
var baselineUnitPrices = map[string]float64{
	"東京都千代田区": 1450000,
	"東京都中央区":  1250000,
	"東京都港区":   1350000,
	"東京都新宿区":  1000000,
	"東京都渋谷区":  1200000,
	"東京都":     750000,
	"神奈川県":    500000,
	"大阪府":     450000,
	"京都府":     400000,
	"愛知県":     400000,
	"福岡県":     300000,
	"北海道":     200000,
}

// Nationwide fallback when the address yields no table entry.
const defaultUnitPrice = 180000

// baselineUnitPrice looks up the composite unit price for an address,
// preferring the ward-level entry over the prefecture-level one.
func baselineUnitPrice(prefecture, municipality string) float64 {
	if p, ok := baselineUnitPrices[prefecture+municipality]; ok {
		return p
	}
	if p, ok := baselineUnitPrices[prefecture]; ok {
		return p
	}
	return defaultUnitPrice
}

// medianUnitPrice returns the median price per square meter of the given
// sales, ignoring records without a usable area.
func medianUnitPrice(sales []models.SaleRecord) float64 {
	var unit []float64
	for _, s := range sales {
		if p := s.PricePerSquareMeter(); p > 0 {
			unit = append(unit, p)
		}
	}
	if len(unit) == 0 {
		return 0
	}

	sort.Float64s(unit)
	mid := len(unit) / 2
	if len(unit)%2 == 0 {
		return (unit[mid-1] + unit[mid]) / 2
	}
	return unit[mid]
}

// ageFactor returns the depreciation multiplier for a building of the given
// year. The land share never depreciates, so the factor is bounded below by
// landShare and the predicted price stays non-negative.
func ageFactor(buildingYear, asOfYear int) float64 {
	age := float64(asOfYear - buildingYear)
	if age < 0 {
		age = 0
	}
	remaining := 1 - age/usefulLifeYears
	if remaining < 0 {
		remaining = 0
	}
	return landShare + (1-landShare)*remaining
}

// price computes the predicted price from a unit price, floor area and
// building age, rounded to whole yen.
func price(unitPrice, area float64, buildingYear, asOfYear int) float64 {
	return math.Round(unitPrice * area * ageFactor(buildingYear, asOfYear))
}
