package model

import (
	"fmt"
	"strings"
)

// Venue is the seating geometry of a concert hall. Every zone shares the same
// three bands, so a row is LeftWidth+MiddleWidth+RightWidth seats wide.
type Venue struct {
	VIPRows      int
	SeatingRows  int
	StandingRows int
	LeftWidth    int
	MiddleWidth  int
	RightWidth   int
}

// Rows returns the row count of a zone.
func (v Venue) Rows(z Zone) int {
	switch z {
	case ZoneVIP:
		return v.VIPRows
	case ZoneSeating:
		return v.SeatingRows
	default:
		return v.StandingRows
	}
}

// RowWidth is the number of seats in any row.
func (v Venue) RowWidth() int {
	return v.LeftWidth + v.MiddleWidth + v.RightWidth
}

func (v Venue) TotalSeats() int {
	return (v.VIPRows + v.SeatingRows + v.StandingRows) * v.RowWidth()
}

// Band returns 0, 1 or 2 for a 1-based seat number in the left, middle or
// right band. ok is false when the seat lies outside the row.
func (v Venue) Band(seatNumber int) (band int, ok bool) {
	switch {
	case seatNumber < 1 || seatNumber > v.RowWidth():
		return 0, false
	case seatNumber <= v.LeftWidth:
		return 0, true
	case seatNumber <= v.LeftWidth+v.MiddleWidth:
		return 1, true
	default:
		return 2, true
	}
}

// IsOccupied reports whether any ticket sits at the zero-based row and seat
// of zone z.
func (v Venue) IsOccupied(z Zone, rowIndex, seatIndex int, tickets []Ticket) bool {
	for _, t := range tickets {
		if t.Zone == z && t.RowNumber == rowIndex+1 && t.SeatNumber == seatIndex+1 {
			return true
		}
	}
	return false
}

type seatKey struct {
	zone Zone
	row  int
	seat int
}

func occupancy(tickets []Ticket) map[seatKey]bool {
	taken := make(map[seatKey]bool, len(tickets))
	for _, t := range tickets {
		taken[seatKey{t.Zone, t.RowNumber, t.SeatNumber}] = true
	}
	return taken
}

// Render draws the layout: VIP rows, a blank line, seating rows, a blank
// line, standing rows. Each row reads "V1 [1][2] [3][4] [5][X] V1" with the
// bands separated by one space and booked seats shown as [X].
func (v Venue) Render(tickets []Ticket) string {
	taken := occupancy(tickets)
	var b strings.Builder
	for i, z := range Zones {
		if i > 0 {
			b.WriteString("\n")
		}
		for row := 1; row <= v.Rows(z); row++ {
			label := fmt.Sprintf("%c%d", z.Letter(), row)
			b.WriteString(label)
			first := 1
			for _, width := range []int{v.LeftWidth, v.MiddleWidth, v.RightWidth} {
				b.WriteString(" ")
				for seat := first; seat < first+width; seat++ {
					if taken[seatKey{z, row, seat}] {
						b.WriteString("[X]")
					} else {
						fmt.Fprintf(&b, "[%d]", seat)
					}
				}
				first += width
			}
			b.WriteString(" ")
			b.WriteString(label)
			b.WriteString("\n")
		}
	}
	return b.String()
}
