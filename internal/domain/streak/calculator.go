package streak

import "time"

// DateLayout формат календарной даты прогулки
const DateLayout = "2006-01-02"

// Advance применяет прогулку от walkDate к состоянию серии.
// Повторная прогулка в тот же день ничего не меняет. Серия продлевается,
// только если прогулка была сегодня или вчера и идет сразу за прошлой;
// иначе серия начинается заново.
func Advance(state WalkStreak, walkDate, today string) WalkStreak {
	if walkDate == state.LastWalkDate {
		return state
	}

	recent := walkDate == today || walkDate == Yesterday(today)
	consecutive := state.LastWalkDate != "" && state.LastWalkDate == Yesterday(walkDate)

	next := state
	if recent && consecutive {
		next.Current++
	} else {
		next.Current = 1
	}

	if next.Current > next.Longest {
		next.Longest = next.Current
	}
	next.LastWalkDate = walkDate

	return next
}

// Yesterday возвращает дату за день до day; для нераспознанной даты пустую строку
func Yesterday(day string) string {
	t, err := time.Parse(DateLayout, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}

// ValidDate проверяет формат YYYY-MM-DD
func ValidDate(day string) bool {
	_, err := time.Parse(DateLayout, day)
	return err == nil
}
