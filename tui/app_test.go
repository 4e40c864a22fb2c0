package tui

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"concert-booking-cli/model"
	"concert-booking-cli/service"
	"concert-booking-cli/store"
)

type testItem struct {
	value string
}

func (t testItem) Title() string       { return t.value }
func (t testItem) Description() string { return "" }
func (t testItem) FilterValue() string { return strings.ToLower(t.value) }

func testOffice() *service.BoxOffice {
	prices := model.PriceTable{}
	prices.SetPrice(model.ZoneVIP, 10, 20, 30)
	prices.SetPrice(model.ZoneSeating, 5, 6, 7)
	prices.SetPrice(model.ZoneStanding, 1, 2, 3)
	catalog := &store.Catalog{
		Customers: []model.Customer{{ID: "1", Name: "ana", Password: "pw"}},
		Concerts: []model.Concert{
			{ID: "1", Date: "2024-03-01", Timing: "1900", Artist: "Band", VenueName: "Hall", Prices: prices},
			{ID: "2", Date: "2024-03-02", Timing: "2000", Artist: "Solo", VenueName: "Hall", Prices: prices},
		},
		Venues: map[string]model.Venue{
			"hall": {VIPRows: 1, SeatingRows: 1, StandingRows: 1, LeftWidth: 2, MiddleWidth: 2, RightWidth: 2},
		},
	}
	return service.New(catalog, log.New(io.Discard))
}

func newCustomerModel(office *service.BoxOffice) appModel {
	customer := model.Customer{ID: "1", Name: "ana", Password: "pw"}
	m := New(Options{Office: office, Customer: &customer}).(appModel)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(appModel)
}

func newAdminModel(office *service.BoxOffice, save func() error) appModel {
	m := New(Options{Office: office, Save: save}).(appModel)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(appModel)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func press(t *testing.T, m appModel, keys ...string) (appModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, key := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(key))
		m = next.(appModel)
	}
	return m, cmd
}

func newFilterModel(items []list.Item) *appModel {
	m := newCustomerModel(testOffice())
	m.state = stateSelectConcert
	m.concertList = newList("Select a concert")
	m.concertList.SetItems(items)
	return &m
}

func TestHandleFilterInput_AppendsRunes(t *testing.T) {
	m := newFilterModel([]list.Item{
		testItem{value: "Band"},
		testItem{value: "Solo"},
	})

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")}) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.concertList.FilterValue(); got != "b" {
		t.Fatalf("expected filter value to be %q, got %q", "b", got)
	}

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.concertList.FilterValue(); got != "ba" {
		t.Fatalf("expected filter value to be %q, got %q", "ba", got)
	}
}

func TestHandleFilterInput_Backspace(t *testing.T) {
	m := newFilterModel([]list.Item{
		testItem{value: "Band"},
		testItem{value: "Solo"},
	})

	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Fatal("expected backspace to be handled")
	}
	if got := m.concertList.FilterValue(); got != "b" {
		t.Fatalf("expected filter value to be %q, got %q", "b", got)
	}
}

func TestHandleFilterInput_IgnoredOnMenus(t *testing.T) {
	m := newAdminModel(testOffice(), nil)
	if m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")}) {
		t.Fatal("expected menu keys to bypass the filter")
	}
}

func TestCustomerFilterThenSelectConcert(t *testing.T) {
	m := newCustomerModel(testOffice())
	m, _ = press(t, m, "s", "o", "l", "o", "enter")

	if m.state != stateConcertMenu {
		t.Fatalf("expected concert menu, got state %d", m.state)
	}
	if m.concert.ID != "2" {
		t.Fatalf("expected concert 2, got %q", m.concert.ID)
	}
}

func TestCustomerBooksSeats(t *testing.T) {
	office := testOffice()
	m := newCustomerModel(office)
	m, _ = press(t, m, "enter", "3")
	if m.state != stateBookingForm {
		t.Fatalf("expected booking form, got state %d", m.state)
	}

	m, _ = press(t, m, "V1", "enter", "1", "enter", "3", "enter")
	if m.state != stateShowText {
		t.Fatalf("expected confirmation, got state %d (form error %q)", m.state, m.form.err)
	}
	if !strings.Contains(m.text, "Booking Id: 1") {
		t.Fatalf("expected ticket info in confirmation, got:\n%s", m.text)
	}

	bookings := office.Bookings("1", "1")
	if len(bookings) != 1 || bookings[0].TotalPrice() != 40 {
		t.Fatalf("expected one booking worth 40, got %+v", bookings)
	}

	m, _ = press(t, m, "esc", "2")
	if !strings.Contains(m.text, "[X]") {
		t.Fatalf("expected booked seats in layout, got:\n%s", m.text)
	}
}

func TestBookingFormUpperCasesAisle(t *testing.T) {
	office := testOffice()
	m := newCustomerModel(office)
	m, _ = press(t, m, "enter", "3", "v1", "enter", "1", "enter", "1", "enter")
	if m.state != stateShowText {
		t.Fatalf("expected confirmation, got state %d (form error %q)", m.state, m.form.err)
	}

	bookings := office.Bookings("1", "1")
	if len(bookings) != 1 || bookings[0].Tickets[0].Zone != model.ZoneVIP {
		t.Fatalf("expected one VIP booking, got %+v", bookings)
	}
}

func TestBookingFormRejectsBadNumbers(t *testing.T) {
	office := testOffice()
	m := newCustomerModel(office)
	m, _ = press(t, m, "enter", "3", "S1", "enter", "x", "enter", "1", "enter")

	if m.state != stateBookingForm {
		t.Fatalf("expected to stay on the form, got state %d", m.state)
	}
	if m.form.err == "" {
		t.Fatal("expected a form error")
	}
	if len(office.Bookings("1", "")) != 0 {
		t.Fatal("expected no booking")
	}
}

func TestCustomerMenuShowsPrices(t *testing.T) {
	m := newCustomerModel(testOffice())
	m, _ = press(t, m, "enter", "1")
	if m.state != stateShowText || !strings.Contains(m.text, "STANDING") {
		t.Fatalf("expected price sheet, got state %d:\n%s", m.state, m.text)
	}

	m, _ = press(t, m, "esc")
	if m.state != stateConcertMenu {
		t.Fatalf("expected concert menu after esc, got state %d", m.state)
	}
}

func TestAdminRevenue(t *testing.T) {
	m := newAdminModel(testOffice(), nil)
	m, _ = press(t, m, "4")
	if m.state != stateSelectConcert || m.pending != actionRevenue {
		t.Fatalf("expected concert selection for revenue, got state %d", m.state)
	}
	m, _ = press(t, m, "enter")
	if m.text != "Total Price for this concert is AUD 0.0" {
		t.Fatalf("unexpected revenue text %q", m.text)
	}
	m, _ = press(t, m, "esc")
	if m.state != stateAdminMenu {
		t.Fatalf("expected admin menu, got state %d", m.state)
	}
}

func TestAdminOverviewListsVenueLayouts(t *testing.T) {
	m := newAdminModel(testOffice(), nil)
	m, _ = press(t, m, "1")
	if m.state != stateShowText {
		t.Fatalf("expected overview, got state %d", m.state)
	}
	for _, want := range []string{"Artist Name", "Venue Layouts", "hall"} {
		if !strings.Contains(m.text, want) {
			t.Fatalf("expected overview to contain %q, got:\n%s", want, m.text)
		}
	}
}

func TestAdminUpdatesPrices(t *testing.T) {
	office := testOffice()
	m := newAdminModel(office, nil)
	m, _ = press(t, m, "2", "enter", "bogus", "enter", "1", "enter", "2", "enter", "3", "enter")
	if m.state != statePriceForm || m.form.err == "" {
		t.Fatalf("expected zone error on the form, got state %d", m.state)
	}

	m, _ = press(t, m, "esc", "2", "enter", "vip", "enter", "1.5", "enter", "2", "enter", "3", "enter")
	if m.state != stateShowText {
		t.Fatalf("expected updated price sheet, got state %d (form error %q)", m.state, m.form.err)
	}
	concert, _ := office.Concert("1")
	if got := concert.Prices.Zone(model.ZoneVIP); got != (model.BandPrices{1.5, 2, 3}) {
		t.Fatalf("expected [1.5 2 3], got %v", got)
	}
}

func TestQuitSavesBeforeExit(t *testing.T) {
	saves := 0
	m := newAdminModel(testOffice(), func() error {
		saves++
		return nil
	})

	m, cmd := press(t, m, "5")
	if m.state != stateSaving || cmd == nil {
		t.Fatalf("expected saving state with a command, got state %d", m.state)
	}
	next, cmd := m.Update(m.saveCmd()())
	if saves != 1 {
		t.Fatalf("expected 1 save, got %d", saves)
	}
	if _, ok := next.(appModel); !ok || cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestSaveFailureCanBeRetried(t *testing.T) {
	m := newAdminModel(testOffice(), func() error { return errors.New("disk full") })
	m, _ = press(t, m, "q")

	next, _ := m.Update(m.saveCmd()())
	m = next.(appModel)
	if m.state != stateError || !m.saveFailed {
		t.Fatalf("expected save error state, got state %d", m.state)
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Fatalf("expected error in view, got:\n%s", m.View())
	}

	m, _ = press(t, m, "esc")
	if m.state != stateAdminMenu || m.saveFailed {
		t.Fatalf("expected admin menu after esc, got state %d", m.state)
	}
}
