package loader

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/circus-schedule/internal/repository"
)

// MySQLLoader reads the catalogue from the shows and venues tables.
type MySQLLoader struct {
	db     *sql.DB
	shows  *repository.ShowRepo
	venues *repository.VenueRepo
}

// NewMySQLLoader wraps an open database handle.  The loader takes
// ownership of db and closes it in Close.
func NewMySQLLoader(db *sql.DB) *MySQLLoader {
	return &MySQLLoader{
		db:     db,
		shows:  repository.NewShowRepo(db),
		venues: repository.NewVenueRepo(db),
	}
}

func (m *MySQLLoader) Load(ctx context.Context) (Dataset, error) {
	shows, err := m.shows.ListAll(ctx)
	if err != nil {
		return Dataset{}, fmt.Errorf("list shows: %w", err)
	}
	venues, err := m.venues.ListAll(ctx)
	if err != nil {
		return Dataset{}, fmt.Errorf("list venues: %w", err)
	}
	return Dataset{Shows: shows, Venues: venues}, nil
}

func (m *MySQLLoader) Close() error {
	return m.db.Close()
}
