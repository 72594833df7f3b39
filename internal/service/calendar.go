package service

import (
	"math/rand/v2"
	"time"

	"github.com/neurotracker/neurotracker-go/internal/model"
)

// UpcomingDays is how far ahead the upcoming list looks, today included.
const UpcomingDays = 14

// priorityRate is the share of days that get a priority.
const priorityRate = 0.6

var priorities = []model.Priority{model.PriorityGreen, model.PriorityOrange, model.PriorityRed}

var PriorityLabels = map[model.Priority]string{
	model.PriorityGreen:  "Not Important",
	model.PriorityOrange: "Important",
	model.PriorityRed:    "Most Important",
}

var eventTitles = map[model.Priority][]string{
	model.PriorityGreen:  {"Coffee Break", "Email Check-in", "Team Sync", "Quick Update", "Casual Meeting", "Status Review", "Brief Discussion"},
	model.PriorityOrange: {"Project Review", "Client Call", "Strategy Session", "Weekly Planning", "Department Meeting", "Progress Review", "Team Workshop"},
	model.PriorityRed:    {"Board Meeting", "Client Presentation", "Important Deadline", "Executive Review", "Critical Decision", "Major Milestone", "Urgent Discussion"},
}

var eventTimes = []string{
	"9:00 AM - 10:00 AM",
	"10:30 AM - 11:30 AM",
	"1:00 PM - 2:00 PM",
	"2:30 PM - 3:30 PM",
	"3:00 PM - 4:30 PM",
	"4:00 PM - 5:00 PM",
}

// AllPriorities shows every priority.
var AllPriorities = model.PriorityFilter{Green: true, Orange: true, Red: true}

// CalendarService fills a calendar with sample priorities and events. The
// same seed always produces the same calendar, so month and upcoming views
// agree with each other.
type CalendarService struct {
	seed uint64
}

func NewCalendarService(seed uint64) *CalendarService {
	return &CalendarService{seed: seed}
}

func (s *CalendarService) monthPriorities(year int, month time.Month) map[int]model.Priority {
	r := rand.New(rand.NewPCG(s.seed, uint64(year)*12+uint64(month)))
	days := daysIn(year, month)

	out := make(map[int]model.Priority, days)
	for day := 1; day <= days; day++ {
		if r.Float64() < priorityRate {
			out[day] = priorities[r.IntN(len(priorities))]
		}
	}
	return out
}

// Month lists every day of the month, with priorities outside filter blanked.
func (s *CalendarService) Month(year int, month time.Month, filter model.PriorityFilter) model.CalendarMonth {
	assigned := s.monthPriorities(year, month)
	days := daysIn(year, month)

	m := model.CalendarMonth{Year: year, Month: month, Days: make([]model.CalendarDay, 0, days)}
	for day := 1; day <= days; day++ {
		d := model.CalendarDay{Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
		if p, ok := assigned[day]; ok && filter.Allows(p) {
			d.Priority = p
		}
		m.Days = append(m.Days, d)
	}
	return m
}

// Upcoming returns one event for every prioritized day in the UpcomingDays
// starting at from.
func (s *CalendarService) Upcoming(from time.Time) []model.CalendarEvent {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	cache := map[time.Month]map[int]model.Priority{}

	var events []model.CalendarEvent
	for i := 0; i < UpcomingDays; i++ {
		date := start.AddDate(0, 0, i)

		assigned, ok := cache[date.Month()]
		if !ok {
			assigned = s.monthPriorities(date.Year(), date.Month())
			cache[date.Month()] = assigned
		}
		p, ok := assigned[date.Day()]
		if !ok {
			continue
		}

		r := rand.New(rand.NewPCG(s.seed^0x5eed, uint64(date.Unix())))
		titles := eventTitles[p]
		events = append(events, model.CalendarEvent{
			Date:     date,
			DayLabel: dayLabel(i, date),
			Title:    titles[r.IntN(len(titles))],
			Time:     eventTimes[r.IntN(len(eventTimes))],
			Priority: p,
		})
	}
	return events
}

func dayLabel(offset int, date time.Time) string {
	switch offset {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return date.Format("Mon, Jan 2")
	}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
