// Пакет datefmt — нормализация дат к каноническому хранимому формату.
// Все даты персистируются одной текстовой формой "YYYY-MM-DD HH:MM:SS"
// в UTC, субсекундная точность отбрасывается.
// Нераспознанный вход — ошибка, sentinel-значения не возвращаются.
package datefmt

import (
	"fmt"
	"time"
)

// Layout — канонический хранимый формат даты-времени.
const Layout = "2006-01-02 15:04:05"

// DayLayout — формат календарной даты (границы фильтра).
const DayLayout = "2006-01-02"

// acceptedLayouts — распознаваемые входные представления,
// в порядке убывания специфичности.
var acceptedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	Layout,
	DayLayout,
}

// Normalize приводит произвольное timestamp-представление к каноническому
// виду. Layouts без зоны трактуются как UTC.
func Normalize(value string) (string, error) {
	if value == "" {
		return "", fmt.Errorf("пустое значение даты")
	}
	for _, layout := range acceptedLayouts {
		ts, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return ts.UTC().Format(Layout), nil
	}
	return "", fmt.Errorf("нераспознанный формат даты: %q", value)
}

// NormalizeDay проверяет и возвращает календарную дату "YYYY-MM-DD".
// Используется для границ диапазона фильтра.
func NormalizeDay(value string) (string, error) {
	ts, err := time.Parse(DayLayout, value)
	if err != nil {
		return "", fmt.Errorf("нераспознанный формат календарной даты: %q", value)
	}
	return ts.Format(DayLayout), nil
}
