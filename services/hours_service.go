package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RafaelMendes244/RMPedidos/entity"
)

// HoursService answers "is ordering allowed right now" from the weekly
// schedule. It is a pure function of (rules, now): the tenant's manual
// override is deliberately NOT consulted here; the pipeline and the
// public status endpoint check it first, so the oracle stays
// deterministic and trivially testable.
type HoursService struct{}

func NewHoursService() *HoursService { return &HoursService{} }

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// StoreWeekday converts an instant to the stored day convention,
// 0=Sunday .. 6=Saturday. Go's time.Weekday happens to use the same
// numbering; this function is the single place that fact is relied on.
func StoreWeekday(t time.Time) int {
	return int(t.Weekday())
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// IsOpen evaluates today's rule against now (tenant-local).
//
// Overnight windows (close < open, e.g. 18:00-02:00) wrap within the
// same day's rule: open when cur >= open OR cur < close. Only today's
// rule is ever consulted; a store that opens after midnight must carry
// a rule on that day too; yesterday's window does not spill over.
func (s *HoursService) IsOpen(rules []entity.OperatingDay, now time.Time) (bool, string) {
	currentMinutes := now.Hour()*60 + now.Minute()
	today := StoreWeekday(now)

	byDay := make(map[int]*entity.OperatingDay, len(rules))
	for i := range rules {
		byDay[rules[i].Day] = &rules[i]
	}

	if rule, ok := byDay[today]; ok {
		if rule.IsClosed {
			return false, "Closed today"
		}
		if open, close, ok := ruleWindow(rule); ok {
			if withinWindow(currentMinutes, open, close) {
				closeText := "23:59"
				if rule.CloseTime != nil {
					closeText = *rule.CloseTime
				}
				return true, fmt.Sprintf("Open - closes at %s", closeText)
			}
			if currentMinutes < open {
				return false, fmt.Sprintf("Closed now - opens at %s", *rule.OpenTime)
			}
			// past closing on a day with defined hours: do not spill
			// into tomorrow's rule
			return false, "Closed today"
		}
	}

	// no usable rule today: scan forward for the next day that opens
	for i := 1; i <= 6; i++ {
		next := (today + i) % 7
		rule, ok := byDay[next]
		if !ok || rule.IsClosed || rule.OpenTime == nil {
			continue
		}
		return false, fmt.Sprintf("Closed - opens %s at %s", dayNames[next], *rule.OpenTime)
	}

	return false, "Closed today"
}

func ruleWindow(rule *entity.OperatingDay) (openMin, closeMin int, ok bool) {
	if rule.OpenTime == nil || rule.CloseTime == nil {
		return 0, 0, false
	}
	openMin, okOpen := parseClock(*rule.OpenTime)
	closeMin, okClose := parseClock(*rule.CloseTime)
	if !okOpen || !okClose {
		return 0, 0, false
	}
	return openMin, closeMin, true
}

func withinWindow(cur, open, close int) bool {
	if close < open {
		// overnight, e.g. 18:00-02:00
		return cur >= open || cur < close
	}
	return open <= cur && cur < close
}
