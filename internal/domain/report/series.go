package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Bucket is one period of a time series. Start is inclusive, End is
// exclusive; a payment dated exactly at End belongs to the next bucket.
type Bucket struct {
	Label  string
	Start  time.Time
	End    time.Time
	Income decimal.Decimal
}

// Contains reports whether the instant falls inside the bucket
func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// WeeklyBuckets partitions the month containing ref into buckets of
// seven days. The trailing days that do not fill a whole week form a
// final shorter bucket running to month end, so a 31-day month yields
// five buckets and February yields four.
func WeeklyBuckets(ref time.Time) []Bucket {
	loc := ref.Location()
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	nextMonth := monthStart.AddDate(0, 1, 0)
	daysInMonth := nextMonth.Add(-time.Hour).Day()

	var buckets []Bucket
	for day := 1; day <= daysInMonth; day += 7 {
		endDay := day + 6
		if endDay > daysInMonth {
			endDay = daysInMonth
		}
		start := time.Date(ref.Year(), ref.Month(), day, 0, 0, 0, 0, loc)
		end := time.Date(ref.Year(), ref.Month(), endDay, 0, 0, 0, 0, loc).AddDate(0, 0, 1)
		buckets = append(buckets, Bucket{
			Label:  fmt.Sprintf("%02d-%02d %s", day, endDay, monthStart.Format("Jan")),
			Start:  start,
			End:    end,
			Income: decimal.Zero,
		})
	}
	return buckets
}

// MonthlyBuckets returns the trailing n calendar months ending at the
// month containing ref, oldest first.
func MonthlyBuckets(ref time.Time, n int) []Bucket {
	loc := ref.Location()
	buckets := make([]Bucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -i, 0)
		buckets = append(buckets, Bucket{
			Label:  start.Format("Jan 2006"),
			Start:  start,
			End:    start.AddDate(0, 1, 0),
			Income: decimal.Zero,
		})
	}
	return buckets
}

// Accumulate adds amount to the bucket containing date. Dates outside
// every bucket are silently ignored; the series only reports its window.
func Accumulate(buckets []Bucket, date time.Time, amount decimal.Decimal) {
	for i := range buckets {
		if buckets[i].Contains(date) {
			buckets[i].Income = buckets[i].Income.Add(amount)
			return
		}
	}
}

// Total sums every bucket in the series
func Total(buckets []Bucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Income)
	}
	return total
}
