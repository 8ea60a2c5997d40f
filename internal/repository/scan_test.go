package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/circus-schedule/internal/model"
)

// fakeRow feeds fixed values into Scan destinations the way the MySQL
// driver does with parseTime=true.
type fakeRow struct {
	vals []any
	err  error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = f.vals[i].(int64)
		case *int:
			*p = f.vals[i].(int)
		case *float64:
			*p = f.vals[i].(float64)
		case *string:
			*p = f.vals[i].(string)
		case sql.Scanner:
			if err := p.Scan(f.vals[i]); err != nil {
				return err
			}
		default:
			return errors.New("unsupported destination")
		}
	}
	return nil
}

func TestScanShow(t *testing.T) {
	row := fakeRow{vals: []any{
		int64(7), "Fire & Ice",
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
		int64(3), 250, 19.5, 49.5, "acrobatics", nil,
	}}
	s, err := scanShow(row)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if s.ID != 7 || s.Title != "Fire & Ice" || s.VenueID != 3 || s.Capacity != 250 {
		t.Fatalf("unexpected show %+v", s)
	}
	if s.StartDate != model.MustParseDate("2025-04-01") || s.EndDate != model.MustParseDate("2025-04-30") {
		t.Fatalf("unexpected dates %s %s", s.StartDate, s.EndDate)
	}
	if s.Genre != "acrobatics" || s.Description != "" {
		t.Fatalf("unexpected optional fields %+v", s)
	}
}

func TestScanVenueNulls(t *testing.T) {
	v, err := scanVenue(fakeRow{vals: []any{int64(3), "Harbour Pavilion", nil, "Quay 1", int64(800)}})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if v.ID != 3 || v.Name != "Harbour Pavilion" || v.City != "" || v.Address != "Quay 1" || v.Capacity != 800 {
		t.Fatalf("unexpected venue %+v", v)
	}
	if _, err := scanVenue(fakeRow{err: sql.ErrNoRows}); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}
