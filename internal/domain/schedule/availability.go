package schedule

import (
	"time"

	"github.com/brightops/clinic-scheduler/internal/models"
)

// AvailableSlots filters the candidate slots of a date down to the open ones.
//
// A slot [start, start+duration) is removed when it overlaps a calendar
// appointment interval (half-open test: slot start < appt end AND slot end >
// appt start), or when its start equals the time of day of an existing
// booking on that date. Results are ascending "HH:MM" strings.
func AvailableSlots(
	date time.Time,
	hours BusinessHours,
	appointments []models.Appointment,
	bookedTimes []string,
) []string {

	booked := make(map[string]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = struct{}{}
	}

	var open []string

	for _, slotStart := range Slots(date, hours) {
		slotEnd := slotStart.Add(hours.SlotDuration)

		conflict := false
		for _, ap := range appointments {
			if slotStart.Before(ap.EndTime) && slotEnd.After(ap.StartTime) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		hm := slotStart.Format(TimeLayout)
		if _, taken := booked[hm]; taken {
			continue
		}

		open = append(open, hm)
	}

	return open
}
