package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyBuckets_ThirtyOneDayMonth(t *testing.T) {
	ref := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	buckets := WeeklyBuckets(ref)

	require.Len(t, buckets, 5)
	assert.Equal(t, "01-07 Aug", buckets[0].Label)
	assert.Equal(t, "08-14 Aug", buckets[1].Label)
	assert.Equal(t, "15-21 Aug", buckets[2].Label)
	assert.Equal(t, "22-28 Aug", buckets[3].Label)
	assert.Equal(t, "29-31 Aug", buckets[4].Label)
}

func TestWeeklyBuckets_February(t *testing.T) {
	ref := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	buckets := WeeklyBuckets(ref)

	require.Len(t, buckets, 4)
	assert.Equal(t, "22-28 Feb", buckets[3].Label)
}

func TestWeeklyBuckets_LeapFebruary(t *testing.T) {
	ref := time.Date(2028, time.February, 10, 0, 0, 0, 0, time.UTC)

	buckets := WeeklyBuckets(ref)

	require.Len(t, buckets, 5)
	assert.Equal(t, "29-29 Feb", buckets[4].Label)
}

func TestWeeklyBuckets_CoverWholeMonth(t *testing.T) {
	ref := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	buckets := WeeklyBuckets(ref)

	// Every day of the month lands in exactly one bucket
	for day := 1; day <= 31; day++ {
		d := time.Date(2026, time.August, day, 10, 30, 0, 0, time.UTC)
		hits := 0
		for _, b := range buckets {
			if b.Contains(d) {
				hits++
			}
		}
		assert.Equal(t, 1, hits, "day %d", day)
	}

	// Month boundaries stay out
	assert.False(t, buckets[0].Contains(time.Date(2026, time.July, 31, 23, 59, 0, 0, time.UTC)))
	last := buckets[len(buckets)-1]
	assert.False(t, last.Contains(time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMonthlyBuckets_TrailingSix(t *testing.T) {
	ref := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)

	buckets := MonthlyBuckets(ref, 6)

	require.Len(t, buckets, 6)
	assert.Equal(t, "Mar 2026", buckets[0].Label)
	assert.Equal(t, "Aug 2026", buckets[5].Label)
}

func TestMonthlyBuckets_YearBoundary(t *testing.T) {
	ref := time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)

	buckets := MonthlyBuckets(ref, 6)

	require.Len(t, buckets, 6)
	assert.Equal(t, "Sep 2025", buckets[0].Label)
	assert.Equal(t, "Feb 2026", buckets[5].Label)
}

func TestAccumulate(t *testing.T) {
	ref := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	buckets := WeeklyBuckets(ref)

	Accumulate(buckets, time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(100))
	Accumulate(buckets, time.Date(2026, time.August, 7, 23, 0, 0, 0, time.UTC), decimal.NewFromInt(50))
	Accumulate(buckets, time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(25))
	// Outside the window, dropped
	Accumulate(buckets, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(999))

	assert.True(t, buckets[0].Income.Equal(decimal.NewFromInt(150)))
	assert.True(t, buckets[4].Income.Equal(decimal.NewFromInt(25)))
	assert.True(t, Total(buckets).Equal(decimal.NewFromInt(175)))
}

func TestSortAgentTotals(t *testing.T) {
	rows := []AgentTotal{
		{UserID: uuid.New(), Name: "ravi", Amount: decimal.NewFromInt(100)},
		{UserID: uuid.New(), Name: "anita", Amount: decimal.NewFromInt(500)},
		{UserID: uuid.New(), Name: "kiran", Amount: decimal.NewFromInt(500)},
	}

	SortAgentTotals(rows)

	assert.Equal(t, "anita", rows[0].Name)
	assert.Equal(t, "kiran", rows[1].Name)
	assert.Equal(t, "ravi", rows[2].Name)
}

func TestSortTeamTotals(t *testing.T) {
	lead := uuid.New()
	rows := []TeamTotal{
		{LeadID: nil, LeadName: UnassignedLabel, Amount: decimal.NewFromInt(10)},
		{LeadID: &lead, LeadName: "suresh", Amount: decimal.NewFromInt(40)},
	}

	SortTeamTotals(rows)

	assert.Equal(t, "suresh", rows[0].LeadName)
	assert.Equal(t, UnassignedLabel, rows[1].LeadName)
}
