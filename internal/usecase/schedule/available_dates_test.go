package schedule_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	domain "github.com/brightops/clinic-scheduler/internal/domain/schedule"
	"github.com/brightops/clinic-scheduler/internal/models"
	uc "github.com/brightops/clinic-scheduler/internal/usecase/schedule"
)

var testHours = domain.BusinessHours{
	Start:        "09:00",
	End:          "17:00",
	SlotDuration: 30 * time.Minute,
}

func dateKey(daysFromToday int) string {
	return time.Now().UTC().AddDate(0, 0, daysFromToday).Format(domain.DateLayout)
}

func dayTime(t *testing.T, daysFromToday int, hhmm string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation(
		domain.DateLayout+" "+domain.TimeLayout,
		dateKey(daysFromToday)+" "+hhmm,
		time.UTC,
	)
	if err != nil {
		t.Fatalf("parse %s %s: %v", dateKey(daysFromToday), hhmm, err)
	}
	return parsed
}

func appointmentAt(t *testing.T, daysFromToday int, start, end string) models.Appointment {
	t.Helper()
	return models.Appointment{
		ClinicID:  1,
		Title:     "Blocked",
		Type:      "checkup",
		StartTime: dayTime(t, daysFromToday, start),
		EndTime:   dayTime(t, daysFromToday, end),
	}
}

func TestAvailableDatesOpenDay(t *testing.T) {
	repo := newFakeRepo()
	avail := uc.NewAvailableDates(repo, testHours, 30)

	dates, err := avail.Execute(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(dates) != 1 {
		t.Fatalf("expected 1 date, got %d", len(dates))
	}
	if dates[0].Date != dateKey(0) {
		t.Errorf("date = %s, want %s", dates[0].Date, dateKey(0))
	}
	if len(dates[0].AvailableSlots) != 16 {
		t.Errorf("expected 16 slots, got %d", len(dates[0].AvailableSlots))
	}
	if dates[0].AvailableSlots[0] != "09:00" || dates[0].AvailableSlots[15] != "16:30" {
		t.Errorf("unexpected slot bounds: %v", dates[0].AvailableSlots)
	}
}

func TestAvailableDatesAppointmentBlocksSlots(t *testing.T) {
	repo := newFakeRepo()
	repo.addAppointment(appointmentAt(t, 1, "10:00", "11:00"))

	avail := uc.NewAvailableDates(repo, testHours, 30)

	dates, err := avail.Execute(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var tomorrow []string
	for _, d := range dates {
		if d.Date == dateKey(1) {
			tomorrow = d.AvailableSlots
		}
	}

	if len(tomorrow) != 14 {
		t.Fatalf("expected 14 slots tomorrow, got %d: %v", len(tomorrow), tomorrow)
	}
	for _, s := range tomorrow {
		if s == "10:00" || s == "10:30" {
			t.Errorf("slot %s should be blocked", s)
		}
	}
}

func TestAvailableDatesOmitsFullyBookedDate(t *testing.T) {
	repo := newFakeRepo()
	repo.addAppointment(appointmentAt(t, 0, "09:00", "17:00"))

	avail := uc.NewAvailableDates(repo, testHours, 30)

	dates, err := avail.Execute(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(dates) != 1 {
		t.Fatalf("expected only tomorrow, got %d dates", len(dates))
	}
	if dates[0].Date != dateKey(1) {
		t.Errorf("date = %s, want %s (today must be omitted, not empty)", dates[0].Date, dateKey(1))
	}
}

func TestAvailableDatesAscendingAndIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.addAppointment(appointmentAt(t, 2, "09:00", "12:00"))

	avail := uc.NewAvailableDates(repo, testHours, 30)

	first, err := avail.Execute(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	second, err := avail.Execute(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical calls returned different availability")
	}

	for i := 1; i < len(first); i++ {
		if first[i-1].Date >= first[i].Date {
			t.Errorf("dates out of order: %s before %s", first[i-1].Date, first[i].Date)
		}
	}
}

func TestAvailableDatesUnknownClinic(t *testing.T) {
	repo := newFakeRepo()
	avail := uc.NewAvailableDates(repo, testHours, 30)

	if _, err := avail.Execute(context.Background(), 99, 1); err == nil {
		t.Fatal("expected error for unknown clinic")
	}
}
