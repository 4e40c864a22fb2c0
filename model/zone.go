package model

import (
	"errors"
	"fmt"
	"strings"
)

// Zone is a seating category of a venue. Its order (VIP, Seating, Standing)
// is the order zones are rendered in.
type Zone int

const (
	ZoneVIP Zone = iota
	ZoneSeating
	ZoneStanding
)

// Zones lists every zone in rendering order.
var Zones = []Zone{ZoneVIP, ZoneSeating, ZoneStanding}

var ErrInvalidZone = errors.New("invalid zone type")

// String returns the full name used by the data files.
func (z Zone) String() string {
	switch z {
	case ZoneVIP:
		return "VIP"
	case ZoneSeating:
		return "SEATING"
	case ZoneStanding:
		return "STANDING"
	default:
		return fmt.Sprintf("Zone(%d)", int(z))
	}
}

// Letter returns the single-letter code used by venue rows and aisle tokens.
func (z Zone) Letter() byte {
	switch z {
	case ZoneVIP:
		return 'V'
	case ZoneSeating:
		return 'S'
	default:
		return 'T'
	}
}

// ParseZone accepts exactly VIP, SEATING or STANDING.
func ParseZone(name string) (Zone, error) {
	switch name {
	case "VIP":
		return ZoneVIP, nil
	case "SEATING":
		return ZoneSeating, nil
	case "STANDING":
		return ZoneStanding, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidZone, name)
}

// ParseZoneFold is ParseZone ignoring case and surrounding spaces, for user input.
func ParseZoneFold(name string) (Zone, error) {
	return ParseZone(strings.ToUpper(strings.TrimSpace(name)))
}

// ZoneFromLetter maps V and S to their zones; any other letter is standing.
func ZoneFromLetter(c byte) Zone {
	switch c {
	case 'V':
		return ZoneVIP
	case 'S':
		return ZoneSeating
	default:
		return ZoneStanding
	}
}
