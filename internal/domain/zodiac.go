package domain

import "time"

// zodiacBoundaries - последний день знака в каждом месяце, после него начинается следующий
var zodiacBoundaries = []struct {
	month   time.Month
	lastDay int
	sign    string
	next    string
}{
	{time.January, 19, "Козерог", "Водолей"},
	{time.February, 18, "Водолей", "Рыбы"},
	{time.March, 20, "Рыбы", "Овен"},
	{time.April, 19, "Овен", "Телец"},
	{time.May, 20, "Телец", "Близнецы"},
	{time.June, 21, "Близнецы", "Рак"},
	{time.July, 22, "Рак", "Лев"},
	{time.August, 22, "Лев", "Дева"},
	{time.September, 22, "Дева", "Весы"},
	{time.October, 22, "Весы", "Скорпион"},
	{time.November, 21, "Скорпион", "Стрелец"},
	{time.December, 21, "Стрелец", "Козерог"},
}

// ZodiacSign знак зодиака по дате рождения
func ZodiacSign(date time.Time) string {
	b := zodiacBoundaries[date.Month()-1]
	if date.Day() <= b.lastDay {
		return b.sign
	}
	return b.next
}

// ZodiacSignFromString принимает дату в формате YYYY-MM-DD
func ZodiacSignFromString(date string) (string, bool) {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return "", false
	}
	return ZodiacSign(t), true
}
