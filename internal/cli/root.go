// Package cli implements circusctl, an operator tool that loads a show
// and venue catalogue from files and answers schedule questions about
// it.  Bookings made with "book" live only for the duration of the
// command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/circus-schedule/internal/loader"
	"github.com/iliyamo/circus-schedule/internal/model"
	"github.com/iliyamo/circus-schedule/internal/scheduler"
)

type app struct {
	out        io.Writer
	showsPath  string
	venuesPath string
	today      string
	output     string
}

// NewRootCmd builds the circusctl command tree writing to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	root := &cobra.Command{
		Use:           "circusctl",
		Short:         "Inspect circus show schedules, availability and revenue",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.showsPath, "shows", "data/shows.json", "shows file (.json, .jsonc, .yaml, .csv)")
	pf.StringVar(&a.venuesPath, "venues", "data/venues.json", "venues file (.json, .jsonc, .yaml, .csv)")
	pf.StringVar(&a.today, "today", "", "treat this date (YYYY-MM-DD) as today")
	pf.StringVarP(&a.output, "output", "o", "table", "output format: table or json")

	root.AddCommand(
		a.upcomingCmd(),
		a.showCmd(),
		a.availabilityCmd(),
		a.bookCmd(),
		a.revenueCmd(),
		a.venuesCmd(),
		a.reportCmd(),
	)
	return root
}

// scheduler loads the catalogue named by the persistent flags.
func (a *app) scheduler(cmd *cobra.Command) (*scheduler.Scheduler, error) {
	opts := scheduler.Options{}
	if a.today != "" {
		d, err := model.ParseDate(a.today)
		if err != nil {
			return nil, fmt.Errorf("--today: %w", err)
		}
		fixed := time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.Local)
		opts.Now = func() time.Time { return fixed }
	}
	s := scheduler.New(nil, nil, opts)
	src := loader.FileLoader{ShowsPath: a.showsPath, VenuesPath: a.venuesPath}
	if _, err := loader.Into(cmd.Context(), src, s); err != nil {
		return nil, err
	}
	return s, nil
}

// emit writes v as indented JSON when -o json is set and otherwise
// calls table.
func (a *app) emit(v any, table func()) error {
	switch a.output {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "table", "":
		table()
		return nil
	}
	return fmt.Errorf("unknown output format %q", a.output)
}
