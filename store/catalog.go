package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"concert-booking-cli/model"
)

// Paths locates the data files of one session.
type Paths struct {
	Customers string
	Concerts  string
	Bookings  string
	Venues    []string
}

// Catalog is the in-memory state of a session, loaded once and saved once.
type Catalog struct {
	Customers []model.Customer
	Concerts  []model.Concert
	Bookings  []model.Booking
	Venues    map[string]model.Venue
}

// Load reads every data file. A missing customer file is fatal; missing
// concert, booking and venue files mean there is no data yet. Malformed
// lines are logged and skipped.
func Load(paths Paths, logger *log.Logger) (*Catalog, error) {
	customers, err := loadRecords(paths.Customers, ReadCustomers, logger)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingCustomers, paths.Customers)
		}
		return nil, fmt.Errorf("read customers: %w", err)
	}
	concerts, err := loadRecords(paths.Concerts, ReadConcerts, logger)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read concerts: %w", err)
	}
	bookings, err := loadRecords(paths.Bookings, ReadBookings, logger)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read bookings: %w", err)
	}
	venues, err := LoadVenues(paths.Venues, concerts, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("data loaded",
		"customers", len(customers),
		"concerts", len(concerts),
		"bookings", len(bookings),
		"venues", len(venues),
	)
	return &Catalog{
		Customers: customers,
		Concerts:  concerts,
		Bookings:  bookings,
		Venues:    venues,
	}, nil
}

func loadRecords[T any](path string, read func(io.Reader, string) ([]T, []error, error), logger *log.Logger) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, skipped, err := read(f, path)
	for _, s := range skipped {
		var lineErr *LineError
		if errors.As(s, &lineErr) {
			logger.Warn("skipping line", "file", lineErr.Path, "line", lineErr.Line, "kind", lineErr.Kind, "reason", lineErr.Msg)
			continue
		}
		logger.Warn("skipping line", "err", s)
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Save rewrites the concert, booking and customer files.
func Save(paths Paths, c *Catalog, logger *log.Logger) error {
	if err := saveRecords(paths.Concerts, c.Concerts, FormatConcert); err != nil {
		return fmt.Errorf("save concerts: %w", err)
	}
	if err := saveRecords(paths.Bookings, c.Bookings, FormatBooking); err != nil {
		return fmt.Errorf("save bookings: %w", err)
	}
	if err := saveRecords(paths.Customers, c.Customers, FormatCustomer); err != nil {
		return fmt.Errorf("save customers: %w", err)
	}
	logger.Info("data saved", "customers", paths.Customers, "concerts", paths.Concerts, "bookings", paths.Bookings)
	return nil
}

func saveRecords[T any](path string, records []T, format func(T) string) error {
	var buf bytes.Buffer
	for _, r := range records {
		buf.WriteString(format(r))
		buf.WriteByte('\n')
	}
	return writeFileAtomic(path, buf.Bytes())
}
