package schedule

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func hm(slot time.Time) string {
	return slot.Format(TimeLayout)
}

func TestSlotsStandardDay(t *testing.T) {
	hours := BusinessHours{Start: "09:00", End: "17:00", SlotDuration: 30 * time.Minute}
	slots := Slots(mustDate(t, "2025-06-10"), hours)

	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if hm(slots[0]) != "09:00" {
		t.Errorf("first slot = %s, want 09:00", hm(slots[0]))
	}
	if hm(slots[len(slots)-1]) != "16:30" {
		t.Errorf("last slot = %s, want 16:30", hm(slots[len(slots)-1]))
	}
}

func TestSlotsStrictlyIncreasingAndAligned(t *testing.T) {
	hours := BusinessHours{Start: "08:15", End: "12:00", SlotDuration: 45 * time.Minute}
	date := mustDate(t, "2025-06-10")
	slots := Slots(date, hours)

	if len(slots) == 0 {
		t.Fatal("expected at least one slot")
	}
	if hm(slots[0]) != "08:15" {
		t.Errorf("first slot = %s, want business start 08:15", hm(slots[0]))
	}

	for i, slot := range slots {
		if i > 0 && !slots[i-1].Before(slot) {
			t.Errorf("slots not strictly increasing at index %d", i)
		}
		if want := slots[0].Add(time.Duration(i) * hours.SlotDuration); !slot.Equal(want) {
			t.Errorf("slot %d = %s, want grid-aligned %s", i, hm(slot), hm(want))
		}
	}
}

func TestSlotsDropPartialTail(t *testing.T) {
	tests := []struct {
		name  string
		hours BusinessHours
		count int
		last  string
	}{
		{
			name:  "exact multiple",
			hours: BusinessHours{Start: "09:00", End: "11:00", SlotDuration: 30 * time.Minute},
			count: 4,
			last:  "10:30",
		},
		{
			name:  "partial tail dropped",
			hours: BusinessHours{Start: "09:00", End: "10:10", SlotDuration: 30 * time.Minute},
			count: 2,
			last:  "09:30",
		},
		{
			name:  "window smaller than slot",
			hours: BusinessHours{Start: "09:00", End: "09:20", SlotDuration: 30 * time.Minute},
			count: 0,
		},
	}

	date := mustDate(t, "2025-06-10")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := Slots(date, tt.hours)
			if len(slots) != tt.count {
				t.Fatalf("got %d slots, want %d", len(slots), tt.count)
			}
			if tt.count > 0 && hm(slots[len(slots)-1]) != tt.last {
				t.Errorf("last slot = %s, want %s", hm(slots[len(slots)-1]), tt.last)
			}

			_, dayEnd := tt.hours.windowOn(date)
			for _, slot := range slots {
				if slot.Add(tt.hours.SlotDuration).After(dayEnd) {
					t.Errorf("slot %s ends past business end", hm(slot))
				}
			}
		})
	}
}
