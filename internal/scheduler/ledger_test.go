package scheduler

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/circus-schedule/internal/model"
)

func TestCancelFreeShowReportsZeroRefund(t *testing.T) {
	free := model.Show{ID: 1, Title: "Open Rehearsal", StartDate: model.MustParseDate("2025-04-01"), EndDate: model.MustParseDate("2025-04-02"), VenueID: 10, Capacity: 20}
	s := New([]model.Show{free}, testVenues(), Options{Now: func() time.Time { return fixedNow }})

	res := s.CreateBooking(1, "2025-04-01", 2, nil)
	if !res.Success || res.Booking.Amount != 0 {
		t.Fatalf("expected free booking, got %+v", res)
	}
	c := s.CancelBooking(res.Booking.ID)
	if !c.Success || c.RefundAmount == nil || *c.RefundAmount != 0 {
		t.Fatalf("expected zero refund, got %+v", c)
	}
	if c.Booking == nil || c.Booking.ID != res.Booking.ID {
		t.Fatalf("expected removed booking on result, got %+v", c.Booking)
	}

	body, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"refund_amount":0`) {
		t.Fatalf("expected refund_amount in %s", body)
	}
	if strings.Contains(string(body), "booking_id") {
		t.Fatalf("removed booking must not be serialised: %s", body)
	}

	failed, _ := json.Marshal(s.CancelBooking(res.Booking.ID))
	if strings.Contains(string(failed), "refund_amount") {
		t.Fatalf("failed cancel must not carry a refund: %s", failed)
	}
}

func TestNestedCustomerDataIsNotShared(t *testing.T) {
	s := newTestScheduler()
	res := s.CreateBooking(1, "2025-04-20", 1, model.Customer{
		"contact": map[string]any{"email": "a@b"},
	})
	res.Booking.Customer["contact"].(map[string]any)["email"] = "from-result"
	s.Bookings()[0].Customer["contact"].(map[string]any)["email"] = "from-list"

	got := s.Bookings()[0].Customer["contact"].(map[string]any)["email"]
	if got != "a@b" {
		t.Fatalf("ledger record was modified through a copy: %v", got)
	}
}

func TestPercentFullRoundsHalfUp(t *testing.T) {
	cases := []struct{ capacity, remaining, want int }{
		{8, 7, 13}, // 12.5
		{8, 5, 38}, // 37.5
		{3, 2, 33}, // 33.3
		{3, 1, 67}, // 66.7
		{10, 6, 40},
		{10, 0, 100},
		{0, 0, 100},
	}
	for _, tc := range cases {
		if got := percentFull(tc.capacity, tc.remaining); got != tc.want {
			t.Fatalf("percentFull(%d, %d): expected %d, got %d", tc.capacity, tc.remaining, tc.want, got)
		}
	}
}

func TestAvailabilityPercentForPartialBooking(t *testing.T) {
	show := model.Show{ID: 1, Title: "Eight Seats", StartDate: model.MustParseDate("2025-04-01"), EndDate: model.MustParseDate("2025-04-30"), VenueID: 10, Capacity: 8}
	s := New([]model.Show{show}, testVenues(), Options{Now: func() time.Time { return fixedNow }})
	if res := s.CreateBooking(1, "2025-04-10", 1, nil); !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	av := s.CheckAvailability(1, "2025-04-10")
	if av.RemainingSeats != 7 || av.PercentFull != 13 {
		t.Fatalf("expected 7 remaining at 13%%, got %d at %d%%", av.RemainingSeats, av.PercentFull)
	}
}
