package app

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

var (
	ErrEmptyName   = errors.New("holiday name is empty")
	ErrInvalidDate = errors.New("holiday date is not YYYY-MM-DD")
)

// HolidayTable is an immutable, date-ordered list of holidays.
// It is safe for concurrent reads.
type HolidayTable struct {
	holidays    []Holiday
	fingerprint string
}

// NewHolidayTable copies holidays, normalizes their dates and sorts them
// ascending. Holidays sharing a date keep their input order.
func NewHolidayTable(holidays []Holiday) *HolidayTable {
	sorted := make([]Holiday, len(holidays))
	for i, h := range holidays {
		sorted[i] = Holiday{Name: h.Name, Date: CalendarDate(h.Date)}
	}
	SortHolidaysByDate(sorted)

	return &HolidayTable{
		holidays:    sorted,
		fingerprint: fingerprintHolidays(sorted),
	}
}

// ParseHolidays decodes a JSON array of {"name", "date"} records
func ParseHolidays(data []byte) (*HolidayTable, error) {
	var records []holidayRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode holidays: %w", err)
	}

	holidays := make([]Holiday, 0, len(records))
	for i, rec := range records {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			return nil, fmt.Errorf("holiday #%d (%s): %w", i+1, rec.Date, ErrEmptyName)
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(rec.Date))
		if err != nil {
			return nil, fmt.Errorf("holiday #%d (%s): %w", i+1, name, ErrInvalidDate)
		}
		holidays = append(holidays, Holiday{Name: name, Date: date})
	}

	return NewHolidayTable(holidays), nil
}

// Upcoming returns up to limit holidays strictly after today, in date order
func (t *HolidayTable) Upcoming(today time.Time, limit int) []Holiday {
	if limit <= 0 {
		return []Holiday{}
	}
	d := CalendarDate(today)
	i := sort.Search(len(t.holidays), func(i int) bool {
		return t.holidays[i].Date.After(d)
	})
	end := min(i+limit, len(t.holidays))

	upcoming := make([]Holiday, end-i)
	copy(upcoming, t.holidays[i:end])
	return upcoming
}

// All returns a copy of every holiday in the table
func (t *HolidayTable) All() []Holiday {
	all := make([]Holiday, len(t.holidays))
	copy(all, t.holidays)
	return all
}

// InYear returns the holidays falling in year
func (t *HolidayTable) InYear(year int) []Holiday {
	var holidays []Holiday
	for _, h := range t.holidays {
		if h.Date.Year() == year {
			holidays = append(holidays, h)
		}
	}
	return holidays
}

// Since returns the holidays on or after the first day of year
func (t *HolidayTable) Since(year int) []Holiday {
	var holidays []Holiday
	for _, h := range t.holidays {
		if h.Date.Year() >= year {
			holidays = append(holidays, h)
		}
	}
	return holidays
}

// Years returns the distinct years covered by the table, ascending
func (t *HolidayTable) Years() []int {
	var years []int
	for _, h := range t.holidays {
		if n := len(years); n == 0 || years[n-1] != h.Date.Year() {
			years = append(years, h.Date.Year())
		}
	}
	return years
}

// Len returns the number of holidays in the table
func (t *HolidayTable) Len() int {
	return len(t.holidays)
}

// Fingerprint identifies the table contents; it changes whenever a name or
// date changes
func (t *HolidayTable) Fingerprint() string {
	return t.fingerprint
}

func fingerprintHolidays(holidays []Holiday) string {
	var sb strings.Builder
	for _, h := range holidays {
		sb.WriteString(h.Date.Format("2006-01-02"))
		sb.WriteByte('\t')
		sb.WriteString(h.Name)
		sb.WriteByte('\n')
	}
	sum := blake2b.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:8])
}
