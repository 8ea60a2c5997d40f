package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iliyamo/circus-schedule/internal/model"
)

func parseShowID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid show id %q", arg)
	}
	return id, nil
}

func (a *app) upcomingCmd() *cobra.Command {
	var after string
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List shows starting on or after a date (default today)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.scheduler(cmd)
			if err != nil {
				return err
			}
			from := s.Today()
			if after != "" {
				if from, err = model.ParseDate(after); err != nil {
					return err
				}
			}
			shows := s.UpcomingShows(from)
			return a.emit(shows, func() { a.showsTable(shows, s.Venues()) })
		},
	}
	cmd.Flags().StringVar(&after, "after", "", "first start date to include (YYYY-MM-DD)")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <show-id>",
		Short: "Show one show with its venue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseShowID(args[0])
			if err != nil {
				return err
			}
			s, err := a.scheduler(cmd)
			if err != nil {
				return err
			}
			detail, ok := s.ShowDetails(id)
			if !ok {
				return fmt.Errorf("show %d not found", id)
			}
			return a.emit(detail, func() { a.detailTable(detail) })
		},
	}
}

func (a *app) availabilityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "availability <show-id> <date>",
		Short: "Check remaining seats for a show on a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseShowID(args[0])
			if err != nil {
				return err
			}
			s, err := a.scheduler(cmd)
			if err != nil {
				return err
			}
			res := s.CheckAvailability(id, args[1])
			return a.emit(res, func() { a.availabilityTable(res) })
		},
	}
}

func (a *app) bookCmd() *cobra.Command {
	var customer string
	cmd := &cobra.Command{
		Use:   "book <show-id> <date> <seats>",
		Short: "Try a booking against the loaded catalogue (nothing is persisted)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseShowID(args[0])
			if err != nil {
				return err
			}
			seats, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid seat count %q", args[2])
			}
			s, err := a.scheduler(cmd)
			if err != nil {
				return err
			}
			var cust model.Customer
			if customer != "" {
				cust = model.Customer{"name": customer}
			}
			res := s.CreateBooking(id, args[1], seats, cust)
			return a.emit(res, func() {
				fmt.Fprintln(a.out, res.Message)
				if res.Success {
					a.bookingsTable([]model.Booking{*res.Booking})
				}
			})
		},
	}
	cmd.Flags().StringVar(&customer, "customer", "", "customer name attached to the booking")
	return cmd
}

func (a *app) revenueCmd() *cobra.Command {
	var potential bool
	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Revenue per venue, or potential revenue per show with --potential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.scheduler(cmd)
			if err != nil {
				return err
			}
			if potential {
				rows := s.RevenuePotential()
				return a.emit(rows, func() { a.potentialTable(rows) })
			}
			rows := s.RevenueByVenue()
			return a.emit(rows, func() { a.revenueTable(rows) })
		},
	}
	cmd.Flags().BoolVar(&potential, "potential", false, "rank shows by capacity x average ticket price")
	return cmd
}

func (a *app) venuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "venues",
		Short: "List venues with their number of shows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.scheduler(cmd)
			if err != nil {
				return err
			}
			rows := s.ShowCountByVenue()
			return a.emit(rows, func() { a.venueCountTable(rows) })
		},
	}
}

func (a *app) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Summarise the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.scheduler(cmd)
			if err != nil {
				return err
			}
			rep := s.Report()
			return a.emit(rep, func() { a.reportTable(rep) })
		},
	}
}
