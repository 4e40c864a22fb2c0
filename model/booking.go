package model

import "strconv"

// Booking groups the tickets one customer bought for one concert.
// Booking ids are only unique within a (customer, concert) pair.
type Booking struct {
	ID           string
	CustomerID   string
	CustomerName string
	ConcertID    string
	TotalTickets int
	Tickets      []Ticket
}

func (b Booking) TotalPrice() float64 {
	total := 0.0
	for _, t := range b.Tickets {
		total += t.Price
	}
	return total
}

// NextBookingID returns one more than the highest booking id the customer
// holds for the concert, or "1" when there is none.
func NextBookingID(bookings []Booking, customerID, concertID string) string {
	highest := 0
	for _, b := range bookings {
		if b.CustomerID != customerID || b.ConcertID != concertID {
			continue
		}
		if id, err := strconv.Atoi(b.ID); err == nil && id > highest {
			highest = id
		}
	}
	return strconv.Itoa(highest + 1)
}

type Customer struct {
	ID       string
	Name     string
	Password string
}
