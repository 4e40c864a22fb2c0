package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"concert-booking-cli/service"
)

type concertItem struct {
	summary service.ConcertSummary
	recent  bool
}

func (c concertItem) Title() string {
	return fmt.Sprintf("#%s  %s", c.summary.Concert.ID, c.summary.Concert.Artist)
}

func (c concertItem) Description() string {
	concert := c.summary.Concert
	parts := []string{concert.Date, formatTiming(concert.Timing), concert.VenueName}
	if c.recent {
		parts = append([]string{"Recent"}, parts...)
	}
	if c.summary.TotalSeats > 0 {
		parts = append(parts, fmt.Sprintf("%d of %d seats left", c.summary.SeatsLeft, c.summary.TotalSeats))
	} else {
		parts = append(parts, "no seat layout")
	}
	return strings.Join(parts, " • ")
}

func (c concertItem) FilterValue() string {
	concert := c.summary.Concert
	return strings.ToLower(strings.Join([]string{concert.ID, concert.Artist, concert.VenueName, concert.Date}, " "))
}

func buildConcertItems(summaries []service.ConcertSummary, recent map[string]bool) []list.Item {
	items := make([]list.Item, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, concertItem{summary: s, recent: recent[s.Concert.ID]})
	}
	return items
}

type menuAction int

const (
	actionPrices menuAction = iota
	actionLayout
	actionBook
	actionMyBookings
	actionLeaveConcert
	actionOverview
	actionUpdatePrices
	actionAllBookings
	actionRevenue
	actionExit
)

type menuItem struct {
	key    string
	label  string
	action menuAction
}

func (m menuItem) Title() string       { return m.key + "  " + m.label }
func (m menuItem) Description() string { return "" }
func (m menuItem) FilterValue() string { return strings.ToLower(m.label) }

var customerMenu = []menuItem{
	{key: "1", label: "Look at the ticket costs", action: actionPrices},
	{key: "2", label: "View seats layout", action: actionLayout},
	{key: "3", label: "Book seats", action: actionBook},
	{key: "4", label: "View booking details", action: actionMyBookings},
	{key: "5", label: "Exit this concert", action: actionLeaveConcert},
}

var adminMenu = []menuItem{
	{key: "1", label: "View all the concert details", action: actionOverview},
	{key: "2", label: "Update the ticket costs", action: actionUpdatePrices},
	{key: "3", label: "View booking details", action: actionAllBookings},
	{key: "4", label: "View total payment received for a concert", action: actionRevenue},
	{key: "5", label: "Exit admin mode", action: actionExit},
}

func buildMenuItems(menu []menuItem) []list.Item {
	items := make([]list.Item, 0, len(menu))
	for _, item := range menu {
		items = append(items, item)
	}
	return items
}

func menuItemByKey(menu []menuItem, key string) (menuItem, bool) {
	for _, item := range menu {
		if item.key == key {
			return item, true
		}
	}
	return menuItem{}, false
}

// formatTiming turns "1930" into "19:30"; anything else is shown as is.
func formatTiming(timing string) string {
	if len(timing) != 4 {
		return timing
	}
	return timing[:2] + ":" + timing[2:]
}
