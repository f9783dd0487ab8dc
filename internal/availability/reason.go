package availability

// Reason причина, по которой дата или слот недоступны
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonAdvanceWindow Reason = "advance_window"
	ReasonNonWorkingDay Reason = "non_working_day"
	ReasonWeeklyQuota   Reason = "weekly_quota"
	ReasonNoSlots       Reason = "no_slots"
	ReasonFullyBooked   Reason = "fully_booked"

	// Только для проверки конкретного слота
	ReasonNotASlot  Reason = "not_a_slot"
	ReasonCollision Reason = "collision"
)

func (r Reason) String() string {
	return string(r)
}
