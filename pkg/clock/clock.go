package clock

import "time"

// Clock текущее время в часовом поясе сервиса
type Clock struct {
	loc *time.Location
}

// New создает часы, привязанные к часовому поясу loc (nil = UTC)
func New(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc}
}

func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Fixed часы, всегда возвращающие одно и то же время. Для тестов
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
