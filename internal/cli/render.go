package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/iliyamo/circus-schedule/internal/model"
	"github.com/iliyamo/circus-schedule/internal/scheduler"
)

func (a *app) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(a.out)
	t.SetStyle(table.StyleLight)
	return t
}

func money(v float64) string { return fmt.Sprintf("%.2f", v) }

func (a *app) showsTable(shows []model.Show, venues []model.Venue) {
	names := make(map[int64]string, len(venues))
	for _, v := range venues {
		if _, ok := names[v.ID]; !ok {
			names[v.ID] = v.Name
		}
	}
	t := a.newTable()
	t.AppendHeader(table.Row{"ID", "Title", "Run", "Venue", "Capacity", "Tickets"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 30}})
	for _, s := range shows {
		venue, ok := names[s.VenueID]
		if !ok {
			venue = model.UnknownVenueName
		}
		t.AppendRow(table.Row{s.ID, s.Title, s.Period(), venue, s.Capacity,
			money(s.TicketPriceMin) + "-" + money(s.TicketPriceMax)})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d shows", len(shows))})
	t.Render()
}

func (a *app) detailTable(d scheduler.ShowDetail) {
	t := a.newTable()
	t.AppendRows([]table.Row{
		{"ID", d.ID},
		{"Title", d.Title},
		{"Genre", d.Genre},
		{"Run", d.Period()},
		{"Venue", d.Venue.Name},
		{"City", d.Venue.City},
		{"Capacity", d.Capacity},
		{"Average ticket", money(d.AverageTicketPrice())},
		{"Description", d.Description},
	})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Colors: text.Colors{text.Bold}}, {Number: 2, WidthMax: 60}})
	t.Render()
}

func (a *app) availabilityTable(r scheduler.AvailabilityResult) {
	t := a.newTable()
	t.AppendRow(table.Row{"Available", r.Available})
	if r.Reason != "" {
		t.AppendRow(table.Row{"Reason", r.Reason})
	}
	if r.ShowPeriod != "" {
		t.AppendRow(table.Row{"Run", r.ShowPeriod})
	}
	if r.Checked {
		t.AppendRows([]table.Row{
			{"Venue", r.VenueName},
			{"Remaining", fmt.Sprintf("%d of %d", r.RemainingSeats, r.TotalCapacity)},
			{"Full", fmt.Sprintf("%d%%", r.PercentFull)},
		})
	}
	t.Render()
}

func (a *app) bookingsTable(bookings []model.Booking) {
	t := a.newTable()
	t.AppendHeader(table.Row{"Booking", "Show", "Venue", "Date", "Seats", "Amount"})
	for _, b := range bookings {
		t.AppendRow(table.Row{b.ID, b.ShowTitle, b.VenueName, b.Date, b.Seats, money(b.Amount)})
	}
	t.Render()
}

func (a *app) revenueTable(rows []scheduler.VenueRevenue) {
	t := a.newTable()
	t.AppendHeader(table.Row{"Venue", "Bookings", "Revenue"})
	total := 0.0
	for _, r := range rows {
		t.AppendRow(table.Row{r.Name, r.Bookings, money(r.Revenue)})
		total += r.Revenue
	}
	t.AppendFooter(table.Row{"Total", "", money(total)})
	t.Render()
}

func (a *app) potentialTable(rows []scheduler.ShowPotential) {
	t := a.newTable()
	t.AppendHeader(table.Row{"Show", "Avg ticket", "Potential"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Title, money(r.AverageTicket), money(r.PotentialRevenue)})
	}
	t.Render()
}

func (a *app) venueCountTable(rows []scheduler.VenueShowCount) {
	t := a.newTable()
	t.AppendHeader(table.Row{"ID", "Venue", "Shows"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.VenueID, r.Name, r.Shows})
	}
	t.Render()
}

func (a *app) reportTable(r scheduler.Report) {
	t := a.newTable()
	t.SetTitle("Schedule summary")
	t.AppendRows([]table.Row{
		{"Shows", r.TotalShows},
		{"Upcoming", r.UpcomingShows},
		{"Venues", r.TotalVenues},
		{"Venue capacity", r.TotalVenueCapacity},
		{"Live bookings", r.LiveBookings},
		{"Booked revenue", money(r.BookedRevenue)},
	})
	t.Render()
	if len(r.RevenuePotential) > 0 {
		a.potentialTable(r.RevenuePotential)
	}
}
