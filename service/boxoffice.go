package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"concert-booking-cli/model"
	"concert-booking-cli/store"
)

var (
	ErrCustomerNotFound  = errors.New("customer does not exist")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrConcertNotFound   = errors.New("concert not found")
	ErrVenueNotFound     = errors.New("no venue layout for this concert")
	ErrInvalidBooking    = errors.New("invalid booking")
)

// IsAuthError reports whether err came from a failed login.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) || errors.Is(err, ErrIncorrectPassword)
}

// BoxOffice runs the customer and admin operations of a session over a
// loaded catalog. It is not safe for concurrent use.
type BoxOffice struct {
	catalog *store.Catalog
	logger  *log.Logger
}

// New creates a BoxOffice. If logger is nil, log.Default() is used.
func New(catalog *store.Catalog, logger *log.Logger) *BoxOffice {
	if logger == nil {
		logger = log.Default()
	}
	if catalog.Venues == nil {
		catalog.Venues = make(map[string]model.Venue)
	}
	return &BoxOffice{catalog: catalog, logger: logger}
}

// Catalog exposes the state the session will save.
func (b *BoxOffice) Catalog() *store.Catalog {
	return b.catalog
}

// Authenticate checks a customer id and password. Stored passwords that
// are bcrypt hashes are verified as such; anything else must match exactly.
func (b *BoxOffice) Authenticate(customerID, password string) (model.Customer, error) {
	for _, c := range b.catalog.Customers {
		if c.ID != customerID {
			continue
		}
		if !passwordMatches(c.Password, password) {
			return model.Customer{}, ErrIncorrectPassword
		}
		b.logger.Info("customer signed in", "id", c.ID, "name", c.Name)
		return c, nil
	}
	return model.Customer{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
}

func passwordMatches(stored, given string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return stored == given
}

// Register adds a customer whose id is one more than the highest existing id.
func (b *BoxOffice) Register(name, password string) model.Customer {
	highest := 0
	for _, c := range b.catalog.Customers {
		if id, err := strconv.Atoi(c.ID); err == nil && id > highest {
			highest = id
		}
	}
	customer := model.Customer{ID: strconv.Itoa(highest + 1), Name: name, Password: password}
	b.catalog.Customers = append(b.catalog.Customers, customer)
	b.logger.Info("customer registered", "id", customer.ID, "name", customer.Name)
	return customer
}

func (b *BoxOffice) Concerts() []model.Concert {
	return b.catalog.Concerts
}

func (b *BoxOffice) concert(id string) (*model.Concert, error) {
	for i := range b.catalog.Concerts {
		if b.catalog.Concerts[i].ID == id {
			return &b.catalog.Concerts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrConcertNotFound, id)
}

// Concert returns a copy of the concert with the given id.
func (b *BoxOffice) Concert(id string) (model.Concert, error) {
	c, err := b.concert(id)
	if err != nil {
		return model.Concert{}, err
	}
	return *c, nil
}

// Venue resolves a concert's venue by case-insensitive name, falling back
// to the default venue.
func (b *BoxOffice) Venue(c model.Concert) (model.Venue, error) {
	if v, ok := b.catalog.Venues[strings.ToLower(c.VenueName)]; ok {
		return v, nil
	}
	if v, ok := b.catalog.Venues[store.DefaultVenueKey]; ok {
		return v, nil
	}
	return model.Venue{}, fmt.Errorf("%w: %s", ErrVenueNotFound, c.VenueName)
}

// VenueUsage describes one loaded venue layout and how many concerts use it.
type VenueUsage struct {
	Key      string
	Venue    model.Venue
	Concerts int
}

// VenueLayouts lists the loaded venue layouts by key. A concert counts
// towards the default layout when no venue matches its name.
func (b *BoxOffice) VenueLayouts() []VenueUsage {
	counts := make(map[string]int)
	for _, c := range b.catalog.Concerts {
		key := strings.ToLower(c.VenueName)
		if _, ok := b.catalog.Venues[key]; !ok {
			key = store.DefaultVenueKey
		}
		counts[key]++
	}
	keys := store.VenueKeys(b.catalog.Venues)
	usage := make([]VenueUsage, 0, len(keys))
	for _, key := range keys {
		usage = append(usage, VenueUsage{Key: key, Venue: b.catalog.Venues[key], Concerts: counts[key]})
	}
	return usage
}

// ConcertSummary is one row of the concert overview.
type ConcertSummary struct {
	Concert     model.Concert
	TotalSeats  int
	SeatsBooked int
	SeatsLeft   int
}

func (b *BoxOffice) Summaries() []ConcertSummary {
	summaries := make([]ConcertSummary, 0, len(b.catalog.Concerts))
	for _, c := range b.catalog.Concerts {
		s := ConcertSummary{Concert: c}
		if v, err := b.Venue(c); err == nil {
			s.TotalSeats = v.TotalSeats()
		}
		for _, bk := range b.catalog.Bookings {
			if bk.ConcertID == c.ID {
				s.SeatsBooked += bk.TotalTickets
			}
		}
		s.SeatsLeft = s.TotalSeats - s.SeatsBooked
		summaries = append(summaries, s)
	}
	return summaries
}

// Tickets returns every ticket booked for a concert.
func (b *BoxOffice) Tickets(concertID string) []model.Ticket {
	var tickets []model.Ticket
	for _, bk := range b.catalog.Bookings {
		if bk.ConcertID == concertID {
			tickets = append(tickets, bk.Tickets...)
		}
	}
	return tickets
}

// Layout renders the concert's venue with its booked seats marked.
func (b *BoxOffice) Layout(concertID string) (string, error) {
	c, err := b.concert(concertID)
	if err != nil {
		return "", err
	}
	venue, err := b.Venue(*c)
	if err != nil {
		return "", err
	}
	return venue.Render(b.Tickets(concertID)), nil
}

// BookingRequest asks for Count consecutive seats from StartSeat in Aisle.
type BookingRequest struct {
	Customer  model.Customer
	ConcertID string
	Aisle     string
	StartSeat int
	Count     int
}

// Book creates a booking. Seats already taken by other bookings are not
// rejected, and seats past the end of the row are priced at 0.
func (b *BoxOffice) Book(req BookingRequest) (model.Booking, error) {
	if req.Count < 1 {
		return model.Booking{}, fmt.Errorf("%w: need at least one seat", ErrInvalidBooking)
	}
	if req.StartSeat < 1 {
		return model.Booking{}, fmt.Errorf("%w: seat numbers start at 1", ErrInvalidBooking)
	}
	c, err := b.concert(req.ConcertID)
	if err != nil {
		return model.Booking{}, err
	}
	venue, err := b.Venue(*c)
	if err != nil {
		return model.Booking{}, err
	}
	tickets, err := model.SeatBlock(*c, venue, req.Aisle, req.StartSeat, req.Count)
	if err != nil {
		return model.Booking{}, err
	}

	booking := model.Booking{
		ID:           model.NextBookingID(b.catalog.Bookings, req.Customer.ID, c.ID),
		CustomerID:   req.Customer.ID,
		CustomerName: req.Customer.Name,
		ConcertID:    c.ID,
		TotalTickets: len(tickets),
		Tickets:      tickets,
	}
	b.catalog.Bookings = append(b.catalog.Bookings, booking)
	b.logger.Info("booking created",
		"booking", booking.ID,
		"customer", booking.CustomerID,
		"concert", booking.ConcertID,
		"aisle", req.Aisle,
		"seats", len(tickets),
		"total", booking.TotalPrice(),
	)
	return booking, nil
}

// Bookings lists a concert's bookings, limited to one customer unless
// customerID is empty.
func (b *BoxOffice) Bookings(concertID, customerID string) []model.Booking {
	var out []model.Booking
	for _, bk := range b.catalog.Bookings {
		if bk.ConcertID != concertID {
			continue
		}
		if customerID != "" && bk.CustomerID != customerID {
			continue
		}
		out = append(out, bk)
	}
	return out
}

// Revenue sums the booking totals of a concert.
func (b *BoxOffice) Revenue(concertID string) (float64, error) {
	if _, err := b.concert(concertID); err != nil {
		return 0, err
	}
	total := 0.0
	for _, bk := range b.Bookings(concertID, "") {
		total += bk.TotalPrice()
	}
	return total, nil
}

// UpdatePrices replaces the three band prices of one zone of a concert.
func (b *BoxOffice) UpdatePrices(concertID string, zone model.Zone, left, middle, right float64) error {
	c, err := b.concert(concertID)
	if err != nil {
		return err
	}
	c.Prices.SetPrice(zone, left, middle, right)
	b.logger.Info("prices updated", "concert", c.ID, "zone", zone, "left", left, "middle", middle, "right", right)
	return nil
}
