package availability

import (
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
)

const minutesPerDay = 24 * 60

// interval занятый бронированием интервал [start, end) в минутах от полуночи
type interval struct {
	start int
	end   int
}

func (i interval) overlaps(start, end int) bool {
	return start < i.end && end > i.start
}

// ledger активные бронирования, разложенные по датам и неделям
type ledger struct {
	byDate     map[time.Time][]interval
	weekCounts map[time.Time]int
}

func newLedger(bookings []*domain.Booking, occupiedMinutes int) *ledger {
	l := &ledger{
		byDate:     make(map[time.Time][]interval),
		weekCounts: make(map[time.Time]int),
	}

	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}

		day := civilDate(b.ScheduledDate)
		weekStart, _ := WeekBounds(day)
		l.weekCounts[weekStart]++

		start, err := b.ScheduledTime.Minutes()
		if err != nil {
			// Время не распознано: бронирование блокирует весь день
			l.byDate[day] = append(l.byDate[day], interval{start: 0, end: minutesPerDay})
			continue
		}
		l.byDate[day] = append(l.byDate[day], interval{start: start, end: start + occupiedMinutes})
	}

	return l
}

// activeInWeek число активных бронирований в неделе (вс-сб), содержащей date
func (l *ledger) activeInWeek(date time.Time) int {
	weekStart, _ := WeekBounds(date)
	return l.weekCounts[weekStart]
}

// collides true, если интервал [start, end) пересекается хотя бы с одним бронированием даты
func (l *ledger) collides(date time.Time, start, end int) bool {
	for _, occupied := range l.byDate[civilDate(date)] {
		if occupied.overlaps(start, end) {
			return true
		}
	}
	return false
}
