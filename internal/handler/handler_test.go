package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/circus-schedule/internal/model"
	"github.com/iliyamo/circus-schedule/internal/scheduler"
)

type recordingPublisher struct {
	mu        sync.Mutex
	created   []model.Booking
	cancelled []model.Booking
	err       error
}

func (p *recordingPublisher) BookingCreated(_ context.Context, b model.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, b)
	return p.err
}

func (p *recordingPublisher) BookingCancelled(_ context.Context, b model.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelled = append(p.cancelled, b)
	return p.err
}

func newTestHandler(t *testing.T) (*Handler, *recordingPublisher) {
	t.Helper()
	shows := []model.Show{
		{ID: 1, Title: "Cirque Lumiere", StartDate: model.MustParseDate("2025-04-01"), EndDate: model.MustParseDate("2025-04-30"), VenueID: 10, Capacity: 10, TicketPriceMin: 20, TicketPriceMax: 40},
		{ID: 2, Title: "Aerial Nights", StartDate: model.MustParseDate("2025-03-01"), EndDate: model.MustParseDate("2025-03-10"), VenueID: 99, Capacity: 5, TicketPriceMin: 10, TicketPriceMax: 10},
	}
	venues := []model.Venue{{ID: 10, Name: "Harbour Pavilion", City: "Lisbon"}}
	now := func() time.Time { return time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC) }
	sched := scheduler.New(shows, venues, scheduler.Options{Now: now})
	pub := &recordingPublisher{}
	return New(sched, pub), pub
}

func serve(h echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		c.SetParamNames("id")
		c.SetParamValues(params...)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not a JSON object: %v (%s)", err, rec.Body.String())
	}
	return out
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := serve(h.Health, http.MethodGet, "/healthz", "")
	out := decode(t, rec)
	if rec.Code != http.StatusOK || out["status"] != "ok" || out["shows"] != float64(2) {
		t.Fatalf("unexpected health %d %v", rec.Code, out)
	}
}

func TestUpcomingShowsDefaultsToToday(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := serve(h.UpcomingShows, http.MethodGet, "/v1/shows/upcoming", "")
	out := decode(t, rec)
	items := out["items"].([]any)
	if out["after"] != "2025-03-15" || len(items) != 1 {
		t.Fatalf("expected only show 1 after today, got %v", out)
	}

	rec = serve(h.UpcomingShows, http.MethodGet, "/v1/shows/upcoming?after=2025-01-01", "")
	if items := decode(t, rec)["items"].([]any); len(items) != 2 {
		t.Fatalf("expected both shows, got %d", len(items))
	}
	first := decode(t, rec)["items"].([]any)[0].(map[string]any)
	if first["show_id"] != float64(2) {
		t.Fatalf("expected earliest show first, got %v", first)
	}

	rec = serve(h.UpcomingShows, http.MethodGet, "/v1/shows/upcoming?after=soon", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetShow(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := serve(h.GetShow, http.MethodGet, "/v1/shows/2", "", "2")
	out := decode(t, rec)
	venue := out["venue"].(map[string]any)
	if rec.Code != http.StatusOK || venue["name"] != model.UnknownVenueName {
		t.Fatalf("expected placeholder venue, got %d %v", rec.Code, out)
	}

	if rec := serve(h.GetShow, http.MethodGet, "/v1/shows/7", "", "7"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := serve(h.GetShow, http.MethodGet, "/v1/shows/x", "", "x"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAvailabilityStatuses(t *testing.T) {
	h, _ := newTestHandler(t)
	cases := []struct {
		id, date string
		status   int
		code     string
	}{
		{"1", "2025-04-10", http.StatusOK, ""},
		{"1", "2025-05-10", http.StatusBadRequest, "INVALID_DATE"},
		{"1", "10/04/2025", http.StatusBadRequest, "INVALID_DATE"},
		{"42", "2025-04-10", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		rec := serve(h.Availability, http.MethodGet, "/v1/shows/"+tc.id+"/availability?date="+tc.date, "", tc.id)
		out := decode(t, rec)
		if rec.Code != tc.status {
			t.Fatalf("%s@%s: expected %d, got %d (%v)", tc.id, tc.date, tc.status, rec.Code, out)
		}
		if code, _ := out["code"].(string); code != tc.code {
			t.Fatalf("%s@%s: expected code %q, got %q", tc.id, tc.date, tc.code, code)
		}
	}
}

func TestBookingLifecycle(t *testing.T) {
	h, pub := newTestHandler(t)

	rec := serve(h.CreateBooking, http.MethodPost, "/v1/bookings",
		`{"show_id":1,"date":"2025-04-10","seats":4,"customer":{"name":"Ada"}}`)
	out := decode(t, rec)
	if rec.Code != http.StatusCreated || out["success"] != true {
		t.Fatalf("expected 201 success, got %d %v", rec.Code, out)
	}
	booking := out["booking"].(map[string]any)
	id := booking["booking_id"].(string)
	if booking["amount"] != float64(120) || booking["venue"] != "Harbour Pavilion" {
		t.Fatalf("unexpected booking %v", booking)
	}
	if len(pub.created) != 1 || pub.created[0].ID != id {
		t.Fatalf("expected one created event for %s, got %v", id, pub.created)
	}

	rec = serve(h.Availability, http.MethodGet, "/v1/shows/1/availability?date=2025-04-10", "", "1")
	avail := decode(t, rec)
	if avail["remaining_seats"] != float64(6) || avail["percent_full"] != float64(40) {
		t.Fatalf("unexpected availability %v", avail)
	}

	rec = serve(h.CreateBooking, http.MethodPost, "/v1/bookings", `{"show_id":1,"date":"2025-04-10","seats":7}`)
	out = decode(t, rec)
	if rec.Code != http.StatusConflict || out["message"] != "Booking failed: Only 6 seats available" {
		t.Fatalf("expected capacity conflict, got %d %v", rec.Code, out)
	}

	rec = serve(h.GetBooking, http.MethodGet, "/v1/bookings/"+id, "", id)
	if rec.Code != http.StatusOK || decode(t, rec)["customer"].(map[string]any)["name"] != "Ada" {
		t.Fatalf("unexpected booking lookup %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(h.ListBookings, http.MethodGet, "/v1/bookings?show_id=1", "")
	if items := decode(t, rec)["items"].([]any); len(items) != 1 {
		t.Fatalf("expected 1 booking for show 1, got %d", len(items))
	}

	rec = serve(h.CancelBooking, http.MethodDelete, "/v1/bookings/"+id, "", id)
	out = decode(t, rec)
	if rec.Code != http.StatusOK || out["refund_amount"] != float64(120) {
		t.Fatalf("expected refund of 120, got %d %v", rec.Code, out)
	}
	if len(pub.cancelled) != 1 || pub.cancelled[0].ID != id {
		t.Fatalf("expected one cancelled event, got %v", pub.cancelled)
	}

	rec = serve(h.CancelBooking, http.MethodDelete, "/v1/bookings/"+id, "", id)
	if rec.Code != http.StatusNotFound || decode(t, rec)["message"] != "Booking not found" {
		t.Fatalf("expected 404 on second cancel, got %d", rec.Code)
	}
	if len(pub.cancelled) != 1 {
		t.Fatal("failed cancel must not publish")
	}
}

func TestCreateBookingFailures(t *testing.T) {
	h, pub := newTestHandler(t)
	cases := []struct {
		body   string
		status int
		msg    string
	}{
		{`{"show_id":1,"date":"2025-04-10","seats":0}`, http.StatusBadRequest, "Booking failed: Seat count must be a positive integer"},
		{`{"show_id":9,"date":"2025-04-10","seats":1}`, http.StatusNotFound, "Booking failed: Show not found"},
		{`{"show_id":1,"date":"2025-06-01","seats":1}`, http.StatusBadRequest, "Booking failed: Date is outside of show run"},
	}
	for _, tc := range cases {
		rec := serve(h.CreateBooking, http.MethodPost, "/v1/bookings", tc.body)
		out := decode(t, rec)
		if rec.Code != tc.status || out["message"] != tc.msg {
			t.Fatalf("%s: expected %d %q, got %d %v", tc.body, tc.status, tc.msg, rec.Code, out)
		}
	}
	if rec := serve(h.CreateBooking, http.MethodPost, "/v1/bookings", `{"seats":"many"`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
	if len(pub.created) != 0 {
		t.Fatal("failed bookings must not publish")
	}
}

func TestPublishFailureDoesNotFailBooking(t *testing.T) {
	h, pub := newTestHandler(t)
	pub.err = errors.New("broker down")
	rec := serve(h.CreateBooking, http.MethodPost, "/v1/bookings", `{"show_id":1,"date":"2025-04-10","seats":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 despite publish error, got %d", rec.Code)
	}
}

func TestRevenueAndReport(t *testing.T) {
	h, _ := newTestHandler(t)
	serve(h.CreateBooking, http.MethodPost, "/v1/bookings", `{"show_id":1,"date":"2025-04-10","seats":2}`)
	serve(h.CreateBooking, http.MethodPost, "/v1/bookings", `{"show_id":2,"date":"2025-03-05","seats":2}`)

	rec := serve(h.RevenueByVenue, http.MethodGet, "/v1/revenue/venues", "")
	items := decode(t, rec)["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one known venue, got %v", items)
	}
	v := items[0].(map[string]any)
	if v["revenue"] != float64(60) || v["bookings"] != float64(1) {
		t.Fatalf("unknown venue bookings must be excluded, got %v", v)
	}

	rec = serve(h.Report, http.MethodGet, "/v1/reports/summary", "")
	report := decode(t, rec)
	if report["total_shows"] != float64(2) || report["live_bookings"] != float64(2) || report["upcoming_shows"] != float64(1) {
		t.Fatalf("unexpected report %v", report)
	}

	rec = serve(h.ListVenues, http.MethodGet, "/v1/venues", "")
	if items := decode(t, rec)["items"].([]any); len(items) != 2 {
		t.Fatalf("expected known venue plus dangling id, got %v", items)
	}
}

func TestReloadCatalogue(t *testing.T) {
	h, _ := newTestHandler(t)
	if rec := serve(h.ReloadCatalogue, http.MethodPost, "/v1/admin/reload", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when reload is disabled, got %d", rec.Code)
	}

	h.Reload = func(context.Context) error {
		h.Sched.Load([]model.Show{{ID: 3, Title: "Fire Dancers", StartDate: model.MustParseDate("2025-05-01"), EndDate: model.MustParseDate("2025-05-02"), Capacity: 1}}, nil)
		return nil
	}
	rec := serve(h.ReloadCatalogue, http.MethodPost, "/v1/admin/reload", "")
	out := decode(t, rec)
	if rec.Code != http.StatusOK || out["shows"] != float64(1) || out["generation"] != float64(2) {
		t.Fatalf("unexpected reload response %d %v", rec.Code, out)
	}

	h.Reload = func(context.Context) error { return errors.New("upstream 500") }
	if rec := serve(h.ReloadCatalogue, http.MethodPost, "/v1/admin/reload", ""); rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}
