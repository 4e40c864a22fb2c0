package store

import (
	"io"
	"strconv"
	"strings"

	"concert-booking-cli/model"
)

const (
	bookingHeaderFields = 5
	ticketFields        = 5
)

// ParseBooking reads "bookingId,customerId,customerName,concertId,totalTickets"
// followed by totalTickets groups of "ticketId,row,seat,zone,price".
func ParseBooking(line string) (model.Booking, error) {
	parts := splitFields(line)
	if len(parts) < bookingHeaderFields || (len(parts)-bookingHeaderFields)%ticketFields != 0 {
		return model.Booking{}, malformedLine("booking record has %d fields", len(parts))
	}
	total, err := strconv.Atoi(parts[4])
	if err != nil || total <= 0 {
		return model.Booking{}, malformedValue("ticket count %q is not a positive number", parts[4])
	}
	if len(parts) != bookingHeaderFields+total*ticketFields {
		return model.Booking{}, malformedLine("booking declares %d tickets but holds %d", total, (len(parts)-bookingHeaderFields)/ticketFields)
	}

	booking := model.Booking{
		ID:           parts[0],
		CustomerID:   parts[1],
		CustomerName: parts[2],
		ConcertID:    parts[3],
		TotalTickets: total,
		Tickets:      make([]model.Ticket, 0, total),
	}
	for i := 0; i < total; i++ {
		ticket, err := parseTicket(parts[bookingHeaderFields+i*ticketFields : bookingHeaderFields+(i+1)*ticketFields])
		if err != nil {
			return model.Booking{}, err
		}
		booking.Tickets = append(booking.Tickets, ticket)
	}
	return booking, nil
}

func parseTicket(fields []string) (model.Ticket, error) {
	var ints [3]int
	for i, raw := range fields[:3] {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return model.Ticket{}, malformedValue("ticket field %q is not a number", raw)
		}
		ints[i] = n
	}
	zone, err := model.ParseZone(fields[3])
	if err != nil {
		return model.Ticket{}, malformedValue("%v", err)
	}
	price, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return model.Ticket{}, malformedValue("ticket price %q is not a number", fields[4])
	}
	return model.Ticket{
		TicketID:   ints[0],
		RowNumber:  ints[1],
		SeatNumber: ints[2],
		Zone:       zone,
		Price:      price,
	}, nil
}

// ReadBookings parses every booking record of r, returning skipped lines
// separately.
func ReadBookings(r io.Reader, path string) ([]model.Booking, []error, error) {
	return scanRecords(r, path, ParseBooking)
}

func FormatBooking(b model.Booking) string {
	fields := []string{b.ID, b.CustomerID, b.CustomerName, b.ConcertID, strconv.Itoa(b.TotalTickets)}
	for _, t := range b.Tickets {
		fields = append(fields,
			strconv.Itoa(t.TicketID),
			strconv.Itoa(t.RowNumber),
			strconv.Itoa(t.SeatNumber),
			t.Zone.String(),
			FormatPrice(t.Price),
		)
	}
	return strings.Join(fields, ",")
}
