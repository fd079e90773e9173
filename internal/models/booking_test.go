package models

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestQuoteTotalTwoDays(t *testing.T) {
	days, total, err := QuoteTotal(50, date("2024-01-01"), date("2024-01-03"))
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if days != 2 {
		t.Errorf("days = %d, want 2", days)
	}
	if total != 100 {
		t.Errorf("total = %v, want 100", total)
	}
}

func TestQuoteTotalSingleDay(t *testing.T) {
	days, total, err := QuoteTotal(80, date("2024-06-10"), date("2024-06-11"))
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if days != 1 || total != 80 {
		t.Errorf("got days=%d total=%v, want 1 and 80", days, total)
	}
}

func TestQuoteTotalPartialDayRoundsUp(t *testing.T) {
	start := date("2024-01-01")
	end := start.Add(36 * time.Hour) // one and a half days
	days, total, err := QuoteTotal(50, start, end)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if days != 2 {
		t.Errorf("days = %d, want 2 (partial days round up)", days)
	}
	if total != 100 {
		t.Errorf("total = %v, want 100", total)
	}
}

func TestQuoteTotalRejectsEndEqualStart(t *testing.T) {
	d := date("2024-01-01")
	if _, _, err := QuoteTotal(50, d, d); err != ErrInvalidDateRange {
		t.Errorf("err = %v, want ErrInvalidDateRange", err)
	}
}

func TestQuoteTotalRejectsEndBeforeStart(t *testing.T) {
	if _, _, err := QuoteTotal(50, date("2024-01-03"), date("2024-01-01")); err != ErrInvalidDateRange {
		t.Errorf("err = %v, want ErrInvalidDateRange", err)
	}
}

func TestValidBookingStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "active", "completed", "cancelled"} {
		if !ValidBookingStatus(s) {
			t.Errorf("ValidBookingStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "Pending", "done", "rejected"} {
		if ValidBookingStatus(s) {
			t.Errorf("ValidBookingStatus(%q) = true, want false", s)
		}
	}
}

func TestBookingResponseDates(t *testing.T) {
	b := Booking{
		ID:         "b1",
		UserID:     "u1",
		CarID:      "c1",
		StartDate:  date("2024-01-01"),
		EndDate:    date("2024-01-03"),
		TotalPrice: 100,
		Status:     BookingStatusPending,
	}
	resp := b.ToBookingResponse()
	if resp.StartDate != "2024-01-01" || resp.EndDate != "2024-01-03" {
		t.Errorf("dates = %s..%s, want plain YYYY-MM-DD", resp.StartDate, resp.EndDate)
	}
	if resp.Status != BookingStatusPending {
		t.Errorf("status = %s, want pending", resp.Status)
	}
}
