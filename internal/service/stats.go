package service

import (
	"math"
	"time"

	"taskmanager/internal/domain"
)

// PrioritySummary is one row of the dashboard table: pending tasks of a
// single priority with their accumulated elapsed and remaining hours.
type PrioritySummary struct {
	Priority     domain.Priority `json:"priority"`
	PendingTasks int             `json:"pendingTasks"`
	TimeLapsed   float64         `json:"timeLapsed"`
	TimeToFinish float64         `json:"timeToFinish"`
}

// Summary is the dashboard aggregate derived from a task list at read
// time. Nothing here is persisted.
type Summary struct {
	TotalTasks       int               `json:"totalTasks"`
	PendingTasks     int               `json:"pendingTasks"`
	CompletedTasks   int               `json:"completedTasks"`
	CompletedPercent float64           `json:"completedPercent"`
	PendingPercent   float64           `json:"pendingPercent"`
	TotalTimeLapsed  float64           `json:"totalTimeLapsed"`
	TotalBalanceTime float64           `json:"totalBalanceTime"`
	Priorities       []PrioritySummary `json:"priorities"`
}

// Summarize buckets pending tasks by priority and computes elapsed and
// remaining hours against the given reference time. A task contributes
// zero elapsed hours before it starts and zero remaining hours past its
// ending date. An empty list yields 0%, never a division by zero.
func Summarize(tasks []*domain.Task, now time.Time) *Summary {
	s := &Summary{
		TotalTasks: len(tasks),
		Priorities: make([]PrioritySummary, 0, 5),
	}

	byPriority := make(map[domain.Priority]*PrioritySummary, 5)
	for p := domain.PriorityLow; p <= domain.PriorityHigh; p++ {
		s.Priorities = append(s.Priorities, PrioritySummary{Priority: p})
		byPriority[p] = &s.Priorities[len(s.Priorities)-1]
	}

	for _, t := range tasks {
		if t.Status == domain.StatusCompleted {
			s.CompletedTasks++
			continue
		}
		s.PendingTasks++

		lapsed, remaining := taskHours(t, now)
		s.TotalTimeLapsed += lapsed
		s.TotalBalanceTime += remaining

		bucket, ok := byPriority[t.Priority]
		if !ok {
			continue
		}
		bucket.PendingTasks++
		bucket.TimeLapsed += lapsed
		bucket.TimeToFinish += remaining
	}

	for i := range s.Priorities {
		s.Priorities[i].TimeLapsed = round2(s.Priorities[i].TimeLapsed)
		s.Priorities[i].TimeToFinish = round2(s.Priorities[i].TimeToFinish)
	}
	s.TotalTimeLapsed = round2(s.TotalTimeLapsed)
	s.TotalBalanceTime = round2(s.TotalBalanceTime)

	if s.TotalTasks > 0 {
		s.CompletedPercent = round1(float64(s.CompletedTasks) / float64(s.TotalTasks) * 100)
		s.PendingPercent = round1(float64(s.PendingTasks) / float64(s.TotalTasks) * 100)
	}

	return s
}

// taskHours returns elapsed and remaining hours for one task, each
// clamped at zero and rounded to 2 decimals.
func taskHours(t *domain.Task, now time.Time) (lapsed, remaining float64) {
	if now.After(t.StartingDate) {
		lapsed = now.Sub(t.StartingDate).Hours()
	}
	if t.EndingDate.After(now) {
		remaining = t.EndingDate.Sub(now).Hours()
	}
	return round2(lapsed), round2(remaining)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
