package schedule

import "time"

// Slots returns the candidate slot start times for a date: business start,
// then every slot-duration step whose full slot still fits before business
// end. A trailing partial interval is dropped. Pure function of date + hours.
func Slots(date time.Time, hours BusinessHours) []time.Time {
	dayStart, dayEnd := hours.windowOn(date)

	var slots []time.Time
	for cur := dayStart; !cur.Add(hours.SlotDuration).After(dayEnd); cur = cur.Add(hours.SlotDuration) {
		slots = append(slots, cur)
	}

	return slots
}
