// Package report renders the tabular screens of a session with go-pretty.
package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"concert-booking-cli/model"
	"concert-booking-cli/service"
	"concert-booking-cli/store"
)

const NoBookings = "No Bookings found for this concert"

var priceSheetOrder = []model.Zone{model.ZoneStanding, model.ZoneSeating, model.ZoneVIP}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	return t
}

// ConcertOverview lists every concert with its seat counts.
func ConcertOverview(summaries []service.ConcertSummary) string {
	t := newTable()
	t.AppendHeader(table.Row{"#", "Date", "Artist Name", "Timing", "Venue Name", "Total Seats", "Seats Booked", "Seats Left"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: 20},
		{Number: 5, WidthMax: 30},
	})
	for _, s := range summaries {
		c := s.Concert
		t.AppendRow(table.Row{c.ID, c.Date, c.Artist, c.Timing, c.VenueName, s.TotalSeats, s.SeatsBooked, s.SeatsLeft})
	}
	return t.Render()
}

// VenueLayouts lists the loaded venue layouts with their sizes.
func VenueLayouts(layouts []service.VenueUsage) string {
	t := newTable()
	t.SetTitle("Venue Layouts")
	t.AppendHeader(table.Row{"Venue", "VIP Rows", "Seating Rows", "Standing Rows", "Row Width", "Total Seats", "Concerts"})
	for _, l := range layouts {
		v := l.Venue
		t.AppendRow(table.Row{l.Key, v.VIPRows, v.SeatingRows, v.StandingRows, v.RowWidth(), v.TotalSeats(), l.Concerts})
	}
	return t.Render()
}

// PriceSheet shows the left, center and right prices of each zone.
func PriceSheet(concert model.Concert) string {
	t := newTable()
	t.SetTitle("Ticket costs")
	t.AppendHeader(table.Row{"Zone", "Left Seats", "Center Seats", "Right Seats"})
	for _, z := range priceSheetOrder {
		p := concert.Prices.Zone(z)
		t.AppendRow(table.Row{z, store.FormatPrice(p[0]), store.FormatPrice(p[1]), store.FormatPrice(p[2])})
	}
	return t.Render()
}

// Bookings lists bookings for one concert followed by the tickets of each.
func Bookings(concert model.Concert, bookings []model.Booking) string {
	if len(bookings) == 0 {
		return NoBookings
	}

	t := newTable()
	t.SetTitle("Bookings")
	t.AppendHeader(table.Row{"Id", "Concert Date", "Artist Name", "Timing", "Venue Name", "Seats Booked", "Total Price"})
	for _, b := range bookings {
		t.AppendRow(table.Row{b.ID, concert.Date, concert.Artist, concert.Timing, concert.VenueName, len(b.Tickets), store.FormatPrice(b.TotalPrice())})
	}

	var out strings.Builder
	out.WriteString(t.Render())
	out.WriteString("\n\nTicket Info\n")
	for _, b := range bookings {
		out.WriteString(TicketInfo(b))
		out.WriteString("\n")
	}
	return out.String()
}

// TicketInfo lists the tickets of one booking.
func TicketInfo(b model.Booking) string {
	t := newTable()
	t.SetTitle("Booking Id: " + b.ID)
	t.AppendHeader(table.Row{"Id", "Aisle Number", "Seat Number", "Seat Type", "Price"})
	for i, ticket := range b.Tickets {
		t.AppendRow(table.Row{i + 1, ticket.RowNumber, ticket.SeatNumber, ticket.Zone, store.FormatPrice(ticket.Price)})
	}
	return t.Render()
}

// Revenue is the admin's total payment line for a concert.
func Revenue(total float64) string {
	return fmt.Sprintf("Total Price for this concert is AUD %.1f", total)
}
