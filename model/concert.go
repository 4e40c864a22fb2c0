package model

// BandPrices holds the left, middle and right band prices of one zone.
type BandPrices [3]float64

// PriceTable is the per-zone band price matrix of a concert.
type PriceTable struct {
	prices [3]BandPrices
}

// Zone returns the three band prices of z.
func (p PriceTable) Zone(z Zone) BandPrices {
	return p.prices[z]
}

// SetPrice replaces all three band prices of z.
func (p *PriceTable) SetPrice(z Zone, left, middle, right float64) {
	p.prices[z] = BandPrices{left, middle, right}
}

// PriceFor returns the price of a 1-based seat in zone z. Seats beyond the
// venue's row width have no band and price at 0 with ok false.
func (p PriceTable) PriceFor(z Zone, seatNumber int, venue Venue) (price float64, ok bool) {
	if seatNumber < 1 {
		// below the first seat still counts as the left band
		return p.prices[z][0], true
	}
	band, ok := venue.Band(seatNumber)
	if !ok {
		return 0, false
	}
	return p.prices[z][band], true
}

type Concert struct {
	ID        string
	Date      string
	Timing    string
	Artist    string
	VenueName string
	Prices    PriceTable
}
