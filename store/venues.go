package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"

	"concert-booking-cli/model"
)

const (
	// DefaultVenueKey names the venue used when a concert has no venue file.
	DefaultVenueKey = "default"

	venueKeyPrefixLen = len("venue_")
)

// VenueKey derives the lower-cased venue key from a venue file name: the
// part after the six character prefix and before the extension, so
// "assets/venue_marvel.txt" is "marvel".
func VenueKey(path string) (string, bool) {
	name := filepath.Base(path)
	if dot := strings.LastIndex(name, "."); dot >= 0 {
		name = name[:dot]
	}
	if len(name) <= venueKeyPrefixLen {
		return "", false
	}
	return strings.ToLower(name[venueKeyPrefixLen:]), true
}

// ReadVenue measures a venue drawing. Each non-blank row counts towards the
// zone named by its first letter (V, S, anything else is standing); the
// first row's second to fourth tokens give the band widths by their number
// of bracketed seats. Rows too short to measure leave widths at zero.
func ReadVenue(r io.Reader) (model.Venue, error) {
	var (
		venue    model.Venue
		measured bool
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if !measured {
			venue.LeftWidth = countSeats(fields, 1)
			venue.MiddleWidth = countSeats(fields, 2)
			venue.RightWidth = countSeats(fields, 3)
			measured = true
		}
		switch model.ZoneFromLetter(fields[0][0]) {
		case model.ZoneVIP:
			venue.VIPRows++
		case model.ZoneSeating:
			venue.SeatingRows++
		default:
			venue.StandingRows++
		}
	}
	return venue, scanner.Err()
}

func countSeats(fields []string, i int) int {
	if i >= len(fields) {
		return 0
	}
	return strings.Count(fields[i], "[")
}

// LoadVenues reads the venue files whose key matches a concert's venue name,
// plus the default venue. Missing files are skipped; any other read failure
// is returned.
func LoadVenues(paths []string, concerts []model.Concert, logger *log.Logger) (map[string]model.Venue, error) {
	wanted := map[string]bool{DefaultVenueKey: true}
	for _, c := range concerts {
		wanted[strings.ToLower(c.VenueName)] = true
	}

	venues := make(map[string]model.Venue)
	for _, path := range paths {
		key, ok := VenueKey(path)
		if !ok {
			logger.Warn("venue file name carries no venue key", "file", path)
			continue
		}
		if !wanted[key] {
			continue
		}
		venue, err := readVenueFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Debug("venue file not found", "file", path)
				continue
			}
			return nil, fmt.Errorf("read venue %s: %w", path, err)
		}
		venues[key] = venue
	}

	logger.Debug("venues loaded", "keys", strings.Join(VenueKeys(venues), ","))
	return venues, nil
}

// VenueKeys returns the keys of venues in sorted order.
func VenueKeys(venues map[string]model.Venue) []string {
	keys := maps.Keys(venues)
	sort.Strings(keys)
	return keys
}

func readVenueFile(path string) (model.Venue, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Venue{}, err
	}
	defer f.Close()
	return ReadVenue(f)
}
