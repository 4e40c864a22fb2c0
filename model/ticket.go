package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidAisle = errors.New("invalid aisle")

// Ticket is one booked seat. TicketID is local to its booking.
type Ticket struct {
	TicketID   int
	RowNumber  int
	SeatNumber int
	Zone       Zone
	Price      float64
}

// ParseAisle splits an aisle token such as "V3" into its zone and 1-based
// row number. V is VIP, S is seating and any other letter, lower case
// included, is standing.
func ParseAisle(aisle string) (Zone, int, error) {
	aisle = strings.TrimSpace(aisle)
	if len(aisle) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAisle, aisle)
	}
	row, err := strconv.Atoi(aisle[1:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAisle, aisle)
	}
	return ZoneFromLetter(aisle[0]), row, nil
}

// SeatBlock builds count tickets for consecutive seats starting at
// startSeat in the given aisle, priced from the concert's table.
// Existing bookings are not consulted.
func SeatBlock(concert Concert, venue Venue, aisle string, startSeat, count int) ([]Ticket, error) {
	zone, row, err := ParseAisle(aisle)
	if err != nil {
		return nil, err
	}
	tickets := make([]Ticket, 0, count)
	for i := 0; i < count; i++ {
		seat := startSeat + i
		price, _ := concert.Prices.PriceFor(zone, seat, venue)
		tickets = append(tickets, Ticket{
			TicketID:   i + 1,
			RowNumber:  row,
			SeatNumber: seat,
			Zone:       zone,
			Price:      price,
		})
	}
	return tickets, nil
}
