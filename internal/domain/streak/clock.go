package streak

import "time"

// Clock источник текущей даты
type Clock interface {
	Today() string
}

// SystemClock берет дату из системных часов в UTC
type SystemClock struct{}

func (SystemClock) Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// FixedClock всегда возвращает одну и ту же дату
type FixedClock string

func (c FixedClock) Today() string {
	return string(c)
}
