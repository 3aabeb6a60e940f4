// internal/nlp/dates.go
package nlp

import "time"

// Relative period identifiers produced by the entity ruler.
const (
	PeriodToday     = "HOY"
	PeriodYesterday = "AYER"
	PeriodLastWeek  = "ULTIMA_SEMANA"
	PeriodLastMonth = "ULTIMO_MES"
)

// monthNames lists the recognized month tokens in calendar order. Entity
// rules register in this order; registration order breaks rule ties.
var monthNames = []string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// monthPeriods maps Spanish month names (as tokenized) to period ids.
var monthPeriods = map[string]string{
	"enero":      "ENERO",
	"febrero":    "FEBRERO",
	"marzo":      "MARZO",
	"abril":      "ABRIL",
	"mayo":       "MAYO",
	"junio":      "JUNIO",
	"julio":      "JULIO",
	"agosto":     "AGOSTO",
	"septiembre": "SEPTIEMBRE",
	"octubre":    "OCTUBRE",
	"noviembre":  "NOVIEMBRE",
	"diciembre":  "DICIEMBRE",
}

var monthNumbers = map[string]time.Month{
	"ENERO":      time.January,
	"FEBRERO":    time.February,
	"MARZO":      time.March,
	"ABRIL":      time.April,
	"MAYO":       time.May,
	"JUNIO":      time.June,
	"JULIO":      time.July,
	"AGOSTO":     time.August,
	"SEPTIEMBRE": time.September,
	"OCTUBRE":    time.October,
	"NOVIEMBRE":  time.November,
	"DICIEMBRE":  time.December,
}

const dateLayout = "2006-01-02"

// DatePeriod is a resolved [start, end] date range in ISO day format.
type DatePeriod struct {
	FechaInicio string
	FechaFin    string
}

// ResolvePeriod turns a period id into concrete dates relative to now.
// Named months resolve within now's year. Unknown ids report ok=false and
// are silently ignored by the caller; a misheard date must never fail a
// whole command.
func ResolvePeriod(id string, now time.Time) (DatePeriod, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch id {
	case PeriodToday:
		d := today.Format(dateLayout)
		return DatePeriod{FechaInicio: d, FechaFin: d}, true
	case PeriodYesterday:
		d := today.AddDate(0, 0, -1).Format(dateLayout)
		return DatePeriod{FechaInicio: d, FechaFin: d}, true
	case PeriodLastWeek:
		return DatePeriod{
			FechaInicio: today.AddDate(0, 0, -7).Format(dateLayout),
			FechaFin:    today.Format(dateLayout),
		}, true
	case PeriodLastMonth:
		return DatePeriod{
			FechaInicio: monthBack(today).Format(dateLayout),
			FechaFin:    today.Format(dateLayout),
		}, true
	}

	if m, ok := monthNumbers[id]; ok {
		first := time.Date(today.Year(), m, 1, 0, 0, 0, 0, today.Location())
		last := first.AddDate(0, 1, -1)
		return DatePeriod{
			FechaInicio: first.Format(dateLayout),
			FechaFin:    last.Format(dateLayout),
		}, true
	}

	return DatePeriod{}, false
}

// monthBack steps one calendar month back, clipping the day instead of
// letting it spill into the next month (Mar 31 -> Feb 28, not Mar 3).
func monthBack(d time.Time) time.Time {
	year, month := d.Year(), d.Month()
	if month == time.January {
		year--
		month = time.December
	} else {
		month--
	}
	day := d.Day()
	if max := daysInMonth(year, month); day > max {
		day = max
	}
	return time.Date(year, month, day, 0, 0, 0, 0, d.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CombinePeriods merges the first and last mention of a date range: the
// range runs from the first mention's start to the last mention's end. With
// a single mention both ends come from it.
func CombinePeriods(first, last DatePeriod) DatePeriod {
	return DatePeriod{FechaInicio: first.FechaInicio, FechaFin: last.FechaFin}
}
