package domain

import (
	"time"

	"github.com/m04kA/SMC-FleetBookingService/pkg/types"
)

// SlotCandidate a generated slot of a particular date
type SlotCandidate struct {
	Date         time.Time
	Time         types.TimeString
	StartMinutes int
	EndMinutes   int // StartMinutes + slot duration, buffer excluded
}

// OccupiedUntil end of the interval the slot blocks, buffer included
func (s SlotCandidate) OccupiedUntil(bufferMinutes int) int {
	return s.EndMinutes + bufferMinutes
}
