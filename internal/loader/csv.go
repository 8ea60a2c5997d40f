package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iliyamo/circus-schedule/internal/model"
)

// csvTable reads a CSV with a header row and gives access to cells by
// column name.
type csvTable struct {
	cols map[string]int
	rows [][]string
}

func readCSV(r io.Reader, required ...string) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &csvTable{cols: map[string]int{}}, nil
	}
	t := &csvTable{cols: make(map[string]int, len(records[0])), rows: records[1:]}
	for i, h := range records[0] {
		t.cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range required {
		if _, ok := t.cols[c]; !ok {
			return nil, fmt.Errorf("csv header is missing column %q", c)
		}
	}
	return t, nil
}

func (t *csvTable) get(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// cellParser collects the first conversion error of a row.
type cellParser struct {
	t    *csvTable
	row  []string
	line int
	err  error
}

func (p *cellParser) int64(col string) int64 {
	v := p.t.get(p.row, col)
	if v == "" || p.err != nil {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.err = fmt.Errorf("line %d: %s: %w", p.line, col, err)
	}
	return n
}

func (p *cellParser) int(col string) int { return int(p.int64(col)) }

func (p *cellParser) float(col string) float64 {
	v := p.t.get(p.row, col)
	if v == "" || p.err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.err = fmt.Errorf("line %d: %s: %w", p.line, col, err)
	}
	return f
}

func (p *cellParser) date(col string) model.Date {
	v := p.t.get(p.row, col)
	if v == "" || p.err != nil {
		return model.Date{}
	}
	var d model.Date
	if err := d.UnmarshalText([]byte(v)); err != nil {
		p.err = fmt.Errorf("line %d: %s: %w", p.line, col, err)
	}
	return d
}

func decodeShowsCSV(r io.Reader) ([]model.Show, error) {
	t, err := readCSV(r, "show_id", "title", "start_date", "end_date", "venue_id", "capacity")
	if err != nil {
		return nil, err
	}
	out := make([]model.Show, 0, len(t.rows))
	for i, row := range t.rows {
		p := &cellParser{t: t, row: row, line: i + 2}
		s := model.Show{
			ID:             p.int64("show_id"),
			Title:          t.get(row, "title"),
			StartDate:      p.date("start_date"),
			EndDate:        p.date("end_date"),
			VenueID:        p.int64("venue_id"),
			Capacity:       p.int("capacity"),
			TicketPriceMin: p.float("ticket_price_min"),
			TicketPriceMax: p.float("ticket_price_max"),
			Genre:          t.get(row, "genre"),
			Description:    t.get(row, "description"),
		}
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeVenuesCSV(r io.Reader) ([]model.Venue, error) {
	t, err := readCSV(r, "id", "name")
	if err != nil {
		return nil, err
	}
	out := make([]model.Venue, 0, len(t.rows))
	for i, row := range t.rows {
		p := &cellParser{t: t, row: row, line: i + 2}
		v := model.Venue{
			ID:       p.int64("id"),
			Name:     t.get(row, "name"),
			City:     t.get(row, "city"),
			Address:  t.get(row, "address"),
			Capacity: p.int("capacity"),
		}
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, v)
	}
	return out, nil
}
