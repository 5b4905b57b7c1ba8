package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/reflect/internal/models"
)

const noActivity = "N/A"

type civilDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{y, m, d}
}

func (d civilDate) next() civilDate {
	return dateOf(time.Date(d.year, d.month, d.day+1, 12, 0, 0, 0, time.UTC))
}

func (d civilDate) prev() civilDate {
	return dateOf(time.Date(d.year, d.month, d.day-1, 12, 0, 0, 0, time.UTC))
}

func (d civilDate) before(o civilDate) bool {
	if d.year != o.year {
		return d.year < o.year
	}
	if d.month != o.month {
		return d.month < o.month
	}
	return d.day < o.day
}

// writingPattern is derived from entry timestamps only, in now's location.
type writingPattern struct {
	CurrentStreak     int
	LongestStreak     int
	BestWritingTime   string
	MostProductiveDay string
}

// patternOf computes streaks over distinct calendar days and the busiest
// hour and weekday. The current streak ends today; ties go to the earlier
// hour or weekday.
func patternOf(all []models.JournalEntry, now time.Time) writingPattern {
	p := writingPattern{BestWritingTime: noActivity, MostProductiveDay: noActivity}
	if len(all) == 0 {
		return p
	}

	loc := now.Location()
	var (
		hours [24]int
		days  [7]int
		seen  = map[civilDate]bool{}
	)
	for _, e := range all {
		t := e.CreatedAt().In(loc)
		hours[t.Hour()]++
		days[t.Weekday()]++
		seen[dateOf(t)] = true
	}

	for d := dateOf(now); seen[d]; d = d.prev() {
		p.CurrentStreak++
	}

	sorted := make([]civilDate, 0, len(seen))
	for d := range seen {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].before(sorted[j]) })

	run := 0
	for i, d := range sorted {
		if i > 0 && sorted[i-1].next() == d {
			run++
		} else {
			run = 1
		}
		p.LongestStreak = max(p.LongestStreak, run)
	}

	h := busiest(hours[:])
	p.BestWritingTime = fmt.Sprintf("%d:00 - %d:00", h, h+1)
	p.MostProductiveDay = time.Weekday(busiest(days[:])).String()
	return p
}

func busiest(counts []int) int {
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return best
}
