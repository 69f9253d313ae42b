package view

import (
	"fmt"
	"time"
)

// Period is a calendar month.
type Period struct {
	Month int
	Year  int
}

func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

func (p Period) Prev() Period {
	if p.Month == 1 {
		return Period{Month: 12, Year: p.Year - 1}
	}

	return Period{Month: p.Month - 1, Year: p.Year}
}

func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Month: 1, Year: p.Year + 1}
	}

	return Period{Month: p.Month + 1, Year: p.Year}
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month), p.Year)
}

// ParsePeriod reads YYYY-MM.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid month %q (YYYY-MM)", s)
	}

	return PeriodOf(t), nil
}
