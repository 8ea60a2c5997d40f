// Package loader fetches the show and venue catalogue that the
// scheduler works on.  A catalogue can come from local data files, from
// two HTTP endpoints or from MySQL.  Every source goes through Validate
// before it reaches the scheduler, so the engine never has to check
// record shape itself.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/iliyamo/circus-schedule/internal/config"
	"github.com/iliyamo/circus-schedule/internal/database"
	"github.com/iliyamo/circus-schedule/internal/model"
	"github.com/iliyamo/circus-schedule/internal/scheduler"
)

// ErrInvalidRecord is wrapped by every validation failure.
var ErrInvalidRecord = errors.New("invalid record")

// ErrUnknownSource is returned by FromConfig for an unsupported
// DATA_SOURCE.
var ErrUnknownSource = errors.New("unknown data source")

// Dataset is one complete catalogue load.
type Dataset struct {
	Shows  []model.Show
	Venues []model.Venue
}

// Loader produces a Dataset.  Implementations must honour ctx for any
// network or database I/O.
type Loader interface {
	Load(ctx context.Context) (Dataset, error)
}

// Validate rejects records the scheduler cannot work with.  It allows
// shows whose run ends before it starts and shows whose venue is
// unknown; the scheduler handles both.
func Validate(ds Dataset) error {
	for i, s := range ds.Shows {
		switch {
		case s.ID == 0:
			return fmt.Errorf("%w: show #%d has no show_id", ErrInvalidRecord, i)
		case s.StartDate.IsZero() || s.EndDate.IsZero():
			return fmt.Errorf("%w: show %d is missing start_date or end_date", ErrInvalidRecord, s.ID)
		case s.Capacity < 0:
			return fmt.Errorf("%w: show %d has negative capacity", ErrInvalidRecord, s.ID)
		case s.TicketPriceMin < 0 || s.TicketPriceMax < 0:
			return fmt.Errorf("%w: show %d has a negative ticket price", ErrInvalidRecord, s.ID)
		}
	}
	for i, v := range ds.Venues {
		if v.ID == 0 {
			return fmt.Errorf("%w: venue #%d has no id", ErrInvalidRecord, i)
		}
	}
	return nil
}

// Into loads a dataset with l, validates it and swaps it into s.  The
// scheduler is only locked for the swap itself.  On any error the
// current data is left in place.
func Into(ctx context.Context, l Loader, s *scheduler.Scheduler) (Dataset, error) {
	ds, err := l.Load(ctx)
	if err != nil {
		return Dataset{}, fmt.Errorf("load catalogue: %w", err)
	}
	if err := Validate(ds); err != nil {
		return Dataset{}, err
	}
	s.Load(ds.Shows, ds.Venues)
	log.Printf("loader: loaded %d shows and %d venues", len(ds.Shows), len(ds.Venues))
	return ds, nil
}

// FromConfig builds the Loader selected by cfg.Source.  For the mysql
// source the returned Loader also implements io.Closer and owns the
// database handle.
func FromConfig(ctx context.Context, cfg config.LoaderConfig) (Loader, error) {
	switch cfg.Source {
	case "", "file":
		return FileLoader{ShowsPath: cfg.ShowsPath, VenuesPath: cfg.VenuesPath}, nil
	case "http":
		return NewHTTPLoader(cfg.ShowsURL, cfg.VenuesURL, cfg.Timeout), nil
	case "mysql":
		db, err := database.Open(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		return NewMySQLLoader(db), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
}

// Close releases l's resources if it holds any.
func Close(l Loader) error {
	if c, ok := l.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
