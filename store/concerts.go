package store

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"concert-booking-cli/model"
)

var timingPattern = regexp.MustCompile(`^\d{4}$`)

// saveOrder is the zone order price blocks are written in.
var saveOrder = []model.Zone{model.ZoneStanding, model.ZoneSeating, model.ZoneVIP}

// ParseConcert reads a concert record: id, date, timing, artist, venue and
// three ZONE:left:middle:right price blocks in any zone order.
func ParseConcert(line string) (model.Concert, error) {
	parts := splitFields(line)
	if len(parts) != 8 {
		return model.Concert{}, malformedLine("concert record needs 8 fields, got %d", len(parts))
	}
	concert := model.Concert{
		ID:        parts[0],
		Date:      parts[1],
		Timing:    parts[2],
		Artist:    parts[3],
		VenueName: parts[4],
	}
	if !isDigits(concert.ID) {
		return model.Concert{}, malformedValue("concert id %q is not numeric", concert.ID)
	}
	if !timingPattern.MatchString(concert.Timing) {
		return model.Concert{}, malformedValue("timing %q is not four digits", concert.Timing)
	}

	seen := make(map[model.Zone]bool, 3)
	for _, block := range parts[5:] {
		zone, prices, err := parsePriceBlock(block)
		if err != nil {
			return model.Concert{}, err
		}
		if seen[zone] {
			return model.Concert{}, malformedValue("zone %s priced twice", zone)
		}
		seen[zone] = true
		concert.Prices.SetPrice(zone, prices[0], prices[1], prices[2])
	}
	return concert, nil
}

func parsePriceBlock(block string) (model.Zone, model.BandPrices, error) {
	fields := strings.Split(block, ":")
	if len(fields) != 4 {
		return 0, model.BandPrices{}, malformedValue("price block %q needs ZONE:left:middle:right", block)
	}
	zone, err := model.ParseZone(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, model.BandPrices{}, malformedValue("price block %q: %v", block, err)
	}
	var prices model.BandPrices
	for i, raw := range fields[1:] {
		price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return 0, model.BandPrices{}, malformedValue("price %q in block %q is not a number", raw, block)
		}
		prices[i] = price
	}
	return zone, prices, nil
}

// ReadConcerts parses every concert record of r, returning skipped lines
// separately.
func ReadConcerts(r io.Reader, path string) ([]model.Concert, []error, error) {
	return scanRecords(r, path, ParseConcert)
}

// FormatConcert writes the price blocks as STANDING, SEATING, VIP whatever
// order they were read in.
func FormatConcert(c model.Concert) string {
	fields := []string{c.ID, c.Date, c.Timing, c.Artist, c.VenueName}
	for _, zone := range saveOrder {
		p := c.Prices.Zone(zone)
		fields = append(fields, strings.Join([]string{
			zone.String(), FormatPrice(p[0]), FormatPrice(p[1]), FormatPrice(p[2]),
		}, ":"))
	}
	return strings.Join(fields, ",")
}
