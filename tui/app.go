package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"concert-booking-cli/model"
	"concert-booking-cli/report"
	"concert-booking-cli/service"
)

type appState int

const (
	stateSelectConcert appState = iota
	stateConcertMenu
	stateAdminMenu
	stateBookingForm
	statePriceForm
	stateShowText
	stateSaving
	stateError
)

var (
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	occupiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true)
)

// Options wires a session into the TUI. A nil Customer runs admin mode.
// Save is called when the user leaves. Remember, if set, is told about every
// concert the user opens; Recent lists the ids opened in earlier sessions.
type Options struct {
	Office   *service.BoxOffice
	Customer *model.Customer
	Save     func() error
	Recent   []string
	Remember func(model.Concert)
}

type appModel struct {
	office   *service.BoxOffice
	customer *model.Customer
	save     func() error
	remember func(model.Concert)
	recent   map[string]bool

	state       appState
	lastState   appState
	resumeState appState
	err         error
	saveFailed  bool

	width  int
	height int

	concert model.Concert
	pending menuAction

	concertList list.Model
	menuList    list.Model

	form form

	textTitle  string
	text       string
	textReturn appState
	viewport   viewport.Model

	spinner spinner.Model
}

type savedMsg struct {
	err error
}

func New(opts Options) tea.Model {
	m := appModel{
		office:   opts.Office,
		customer: opts.Customer,
		save:     opts.Save,
		remember: opts.Remember,
		recent:   make(map[string]bool),
	}
	for _, id := range opts.Recent {
		m.recent[id] = true
	}

	m.concertList = newList("Select a concert")
	m.refreshConcerts()
	m.menuList = newMenuList("Select an option to get started!")
	if m.isAdmin() {
		m.menuList.SetItems(buildMenuItems(adminMenu))
		m.state = stateAdminMenu
	} else {
		m.menuList.SetItems(buildMenuItems(customerMenu))
		m.state = stateSelectConcert
	}

	m.viewport = viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.handleFilterInput(msg) {
			return m, nil
		}
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next

	case spinner.TickMsg:
		if m.state != stateSaving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case savedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("could not save: %w", msg.err)
			m.saveFailed = true
			m.lastState = m.resumeState
			m.state = stateError
			return m, nil
		}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectConcert:
		m.concertList, cmd = m.concertList.Update(msg)
	case stateConcertMenu, stateAdminMenu:
		m.menuList, cmd = m.menuList.Update(msg)
	case stateBookingForm, statePriceForm:
		cmd = m.form.update(msg)
	case stateShowText:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateSelectConcert:
		return header + "\n\n" + m.concertList.View()
	case stateConcertMenu, stateAdminMenu:
		return header + "\n\n" + m.menuList.View()
	case stateBookingForm, statePriceForm:
		return header + "\n\n" + m.form.view()
	case stateShowText:
		return header + "\n\n" + titleStyle.Render(m.textTitle) + "\n" + m.viewport.View()
	case stateSaving:
		return header + "\n\n" + fmt.Sprintf("%s Saving", m.spinner.View()) + "\n\n" + hint("Writing concerts, bookings and customers...")
	case stateError:
		help := "Press esc to go back or ctrl+c to quit."
		if m.saveFailed {
			help = "Press enter to retry, esc to go back or ctrl+c to quit without saving."
		}
		return header + "\n\n" + errorStyle.Render(m.err.Error()) + "\n\n" + hint(help)
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := titleStyle.Render("Ticket Management System")
	sub := []string{}
	if m.isAdmin() {
		sub = append(sub, "Admin mode")
	} else {
		sub = append(sub, fmt.Sprintf("Welcome %s", m.customer.Name))
	}
	if m.concert.ID != "" && m.state != stateSelectConcert && m.state != stateAdminMenu {
		sub = append(sub, fmt.Sprintf("Concert: %s • %s %s", m.concert.Artist, m.concert.Date, formatTiming(m.concert.Timing)))
	}
	meta := "\n" + lipgloss.NewStyle().Faint(true).Render(strings.Join(sub, " • "))

	hints := "ctrl+c quit • esc back"
	switch m.state {
	case stateSelectConcert:
		hints = "ctrl+c quit • esc back • type to filter • enter select"
	case stateConcertMenu, stateAdminMenu:
		hints = "ctrl+c quit • esc back • 1-5 or enter choose"
	case stateBookingForm, statePriceForm:
		hints = "ctrl+c quit • esc cancel • tab next field • enter submit"
	case stateShowText:
		hints = "ctrl+c quit • esc back • ↑/↓ scroll"
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	key := msg.String()
	switch {
	case m.state == stateSaving:
		return m, nil, true
	case key == "ctrl+c":
		if m.saveFailed {
			return m, tea.Quit, true
		}
		m, cmd := m.quit()
		return m, cmd, true
	case m.state == stateBookingForm || m.state == statePriceForm:
		return m.handleFormKey(msg)
	}

	switch key {
	case "q":
		m, cmd := m.quit()
		return m, cmd, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		m, cmd := m.goBack()
		return m, cmd, true
	case "enter":
		return m.handleEnter()
	case "1", "2", "3", "4", "5":
		if item, ok := menuItemByKey(m.currentMenu(), key); ok {
			return m.runAction(item.action)
		}
	}
	return m, nil, false
}

func (m appModel) handleEnter() (appModel, tea.Cmd, bool) {
	switch m.state {
	case stateSelectConcert:
		item, ok := m.concertList.SelectedItem().(concertItem)
		if !ok {
			return m, nil, true
		}
		m.concert = item.summary.Concert
		m.recent[m.concert.ID] = true
		if m.remember != nil {
			m.remember(m.concert)
		}
		if m.isAdmin() {
			return m.runAdminConcertAction()
		}
		m.menuList.Select(0)
		m.state = stateConcertMenu
		return m, nil, true
	case stateConcertMenu, stateAdminMenu:
		item, ok := m.menuList.SelectedItem().(menuItem)
		if !ok {
			return m, nil, true
		}
		return m.runAction(item.action)
	case stateError:
		if m.saveFailed {
			m, cmd := m.quit()
			return m, cmd, true
		}
		m, cmd := m.goBack()
		return m, cmd, true
	case stateShowText:
		m, cmd := m.goBack()
		return m, cmd, true
	}
	return m, nil, false
}

func (m appModel) runAction(action menuAction) (appModel, tea.Cmd, bool) {
	switch action {
	case actionPrices:
		m.showText("Ticket costs", report.PriceSheet(m.concert), stateConcertMenu)
	case actionLayout:
		layout, err := m.office.Layout(m.concert.ID)
		if err != nil {
			m.showError(err)
			return m, nil, true
		}
		m.showText("Seats layout", highlightOccupied(layout), stateConcertMenu)
	case actionBook:
		m.form = newBookingForm()
		m.state = stateBookingForm
		return m, m.form.setFocus(0), true
	case actionMyBookings:
		m.showText("Booking details", report.Bookings(m.concert, m.office.Bookings(m.concert.ID, m.customer.ID)), stateConcertMenu)
	case actionLeaveConcert:
		m, cmd := m.goBack()
		return m, cmd, true
	case actionOverview:
		overview := report.ConcertOverview(m.office.Summaries()) + "\n\n" + report.VenueLayouts(m.office.VenueLayouts())
		m.showText("Concert details", overview, stateAdminMenu)
	case actionUpdatePrices, actionAllBookings, actionRevenue:
		m.pending = action
		m.refreshConcerts()
		m.concertList.Select(0)
		m.state = stateSelectConcert
	case actionExit:
		m, cmd := m.quit()
		return m, cmd, true
	}
	return m, nil, true
}

func (m appModel) runAdminConcertAction() (appModel, tea.Cmd, bool) {
	action := m.pending
	m.pending = 0
	switch action {
	case actionUpdatePrices:
		m.form = newPriceForm()
		m.state = statePriceForm
		return m, m.form.setFocus(0), true
	case actionAllBookings:
		m.showText("Bookings", report.Bookings(m.concert, m.office.Bookings(m.concert.ID, "")), stateAdminMenu)
	case actionRevenue:
		total, err := m.office.Revenue(m.concert.ID)
		if err != nil {
			m.showError(err)
			return m, nil, true
		}
		m.showText("Total payment received", report.Revenue(total), stateAdminMenu)
	default:
		m.state = stateAdminMenu
	}
	return m, nil, true
}

func (m appModel) handleFormKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
		m, cmd := m.goBack()
		return m, cmd, true
	case "tab", "down":
		return m, m.form.next(), true
	case "shift+tab", "up":
		return m, m.form.prev(), true
	case "enter":
		if !m.form.onLastField() {
			return m, m.form.next(), true
		}
		if m.state == stateBookingForm {
			return m.submitBooking()
		}
		return m.submitPrices()
	}
	return m, m.form.update(msg), true
}

func (m appModel) submitBooking() (appModel, tea.Cmd, bool) {
	values := m.form.values()
	start, err := strconv.Atoi(values[1])
	if err != nil {
		m.form.err = "Start seat must be a whole number."
		return m, nil, true
	}
	count, err := strconv.Atoi(values[2])
	if err != nil {
		m.form.err = "Number of seats must be a whole number."
		return m, nil, true
	}

	booking, err := m.office.Book(service.BookingRequest{
		Customer:  *m.customer,
		ConcertID: m.concert.ID,
		Aisle:     strings.ToUpper(values[0]),
		StartSeat: start,
		Count:     count,
	})
	if err != nil {
		m.form.err = err.Error()
		return m, nil, true
	}
	m.refreshConcerts()
	body := fmt.Sprintf("Booked %d seat(s) in aisle %s.\n\n%s", booking.TotalTickets, strings.ToUpper(values[0]), report.TicketInfo(booking))
	m.showText("Booking confirmed", body, stateConcertMenu)
	return m, nil, true
}

func (m appModel) submitPrices() (appModel, tea.Cmd, bool) {
	values := m.form.values()
	zone, err := model.ParseZoneFold(values[0])
	if err != nil {
		m.form.err = "Zone must be VIP, SEATING or STANDING."
		return m, nil, true
	}
	var prices [3]float64
	for i, raw := range values[1:] {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			m.form.err = "Prices must be non-negative numbers."
			return m, nil, true
		}
		prices[i] = price
	}

	if err := m.office.UpdatePrices(m.concert.ID, zone, prices[0], prices[1], prices[2]); err != nil {
		m.form.err = err.Error()
		return m, nil, true
	}
	updated, err := m.office.Concert(m.concert.ID)
	if err != nil {
		m.showError(err)
		return m, nil, true
	}
	m.concert = updated
	m.refreshConcerts()
	m.showText("Ticket costs updated", report.PriceSheet(updated), stateAdminMenu)
	return m, nil, true
}

func (m appModel) goBack() (appModel, tea.Cmd) {
	switch m.state {
	case stateSelectConcert:
		if m.isAdmin() {
			m.pending = 0
			m.state = stateAdminMenu
			return m, nil
		}
		return m.quit()
	case stateConcertMenu:
		m.refreshConcerts()
		m.state = stateSelectConcert
	case stateAdminMenu:
		return m.quit()
	case stateBookingForm:
		m.state = stateConcertMenu
	case statePriceForm:
		m.state = stateAdminMenu
	case stateShowText:
		m.state = m.textReturn
	case stateError:
		m.state = m.lastState
		m.saveFailed = false
	}
	return m, nil
}

// quit saves and exits. Without a save hook it exits immediately.
func (m appModel) quit() (appModel, tea.Cmd) {
	if m.save == nil {
		return m, tea.Quit
	}
	m.resumeState = m.state
	if m.state == stateError {
		m.resumeState = m.lastState
	}
	m.state = stateSaving
	return m, tea.Batch(m.saveCmd(), m.spinner.Tick)
}

func (m appModel) saveCmd() tea.Cmd {
	save := m.save
	return func() tea.Msg {
		return savedMsg{err: save()}
	}
}

func (m *appModel) showText(title string, body string, returnState appState) {
	m.textTitle = title
	m.text = body
	m.textReturn = returnState
	m.viewport.SetContent(body)
	m.viewport.GotoTop()
	m.state = stateShowText
}

func (m *appModel) showError(err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	m.err = err
	m.lastState = m.state
	m.state = stateError
}

func (m *appModel) refreshConcerts() {
	m.concertList.SetItems(buildConcertItems(m.office.Summaries(), m.recent))
}

func (m appModel) isAdmin() bool {
	return m.customer == nil
}

func (m appModel) currentMenu() []menuItem {
	switch m.state {
	case stateConcertMenu:
		return customerMenu
	case stateAdminMenu:
		return adminMenu
	default:
		return nil
	}
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectConcert:
		return &m.concertList
	case stateConcertMenu, stateAdminMenu:
		return &m.menuList
	default:
		return nil
	}
}

func (m *appModel) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.concertList.SetSize(m.width, h)
	m.menuList.SetSize(m.width, h)
	m.viewport.Width = m.width
	m.viewport.Height = h - 1
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func newMenuList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func highlightOccupied(layout string) string {
	return strings.ReplaceAll(layout, "[X]", occupiedStyle.Render("[X]"))
}
