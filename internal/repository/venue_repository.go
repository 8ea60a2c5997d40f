package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/circus-schedule/internal/model"
)

const venueColumns = `id, name, city, address, capacity`

// VenueRepo reads venues from the `venues` table.
type VenueRepo struct {
	db Querier
}

func NewVenueRepo(db Querier) *VenueRepo {
	return &VenueRepo{db: db}
}

// ListAll returns every venue ordered by ID.
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+venueColumns+` FROM venues ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves a venue by ID or returns ErrVenueNotFound.
func (r *VenueRepo) GetByID(ctx context.Context, id int64) (model.Venue, error) {
	v, err := scanVenue(r.db.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Venue{}, ErrVenueNotFound
		}
		return model.Venue{}, err
	}
	return v, nil
}

func scanVenue(sc rowScanner) (model.Venue, error) {
	var (
		v             model.Venue
		city, address sql.NullString
		capacity      sql.NullInt64
	)
	if err := sc.Scan(&v.ID, &v.Name, &city, &address, &capacity); err != nil {
		return model.Venue{}, err
	}
	v.City = city.String
	v.Address = address.String
	v.Capacity = int(capacity.Int64)
	return v, nil
}
