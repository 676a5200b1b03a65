package models

import "time"

// SaleRecord represents a single historical residential sale, decomposed into
// its Japanese address components, used as a comparable when pricing.
type SaleRecord struct {
	ID           int64     `json:"id"`
	Prefecture   string    `json:"prefecture"`
	Municipality string    `json:"municipality"`
	Address1     string    `json:"address1"`
	Price        float64   `json:"price"`
	Area         float64   `json:"area"`
	BuildingYear int       `json:"building_year"`
	SoldAt       time.Time `json:"sold_at"`
}

// PricePerSquareMeter returns the unit price of the sale, or 0 when the
// recorded area is not usable.
func (s SaleRecord) PricePerSquareMeter() float64 {
	if s.Area <= 0 {
		return 0
	}
	return s.Price / s.Area
}
