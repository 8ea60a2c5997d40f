package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/circus-schedule/internal/model"
)

const showColumns = `show_id, title, start_date, end_date, venue_id, capacity,
       ticket_price_min, ticket_price_max, genre, description`

// ShowRepo reads shows from the `shows` table.
type ShowRepo struct {
	db Querier
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db Querier) *ShowRepo {
	return &ShowRepo{db: db}
}

// ListAll returns every show ordered by primary key, which is the load
// order the scheduler uses to break ties.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.Show, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+showColumns+` FROM shows ORDER BY show_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Show
	for rows.Next() {
		s, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves a show by its ID.  It returns ErrShowNotFound if
// there is no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id int64) (model.Show, error) {
	s, err := scanShow(r.db.QueryRowContext(ctx, `SELECT `+showColumns+` FROM shows WHERE show_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Show{}, ErrShowNotFound
		}
		return model.Show{}, err
	}
	return s, nil
}

func scanShow(sc rowScanner) (model.Show, error) {
	var (
		s           model.Show
		genre, desc sql.NullString
	)
	if err := sc.Scan(
		&s.ID, &s.Title, &s.StartDate, &s.EndDate, &s.VenueID, &s.Capacity,
		&s.TicketPriceMin, &s.TicketPriceMax, &genre, &desc,
	); err != nil {
		return model.Show{}, err
	}
	s.Genre = genre.String
	s.Description = desc.String
	return s, nil
}
