package attendance

import (
	"log/slog"
	"sort"

	"github.com/stafftrack/workforce-backend-go/internal/domain/attendance"
	"github.com/stafftrack/workforce-backend-go/internal/pkg/timeutil"
)

// The punch log carries no pairing field, so each worker-day is a small state
// machine: no open session -> open session -> no open session. deriveDay runs
// it as a fold over created_at-sorted events, tagging every event with how it
// participated. A double IN abandons the earlier one, an OUT with no usable
// IN is anomalous, and neither aborts the derivation: history must stay
// viewable even when imperfect.

type pairKind int

const (
	paired pairKind = iota
	unpairedIn
	anomalousOut
)

type pairResult struct {
	kind    pairKind
	event   attendance.Event
	seconds float64 // duration credited at a paired OUT
}

// foldDay walks one day's events in chronological order, maintaining the
// "currently open IN" slot.
func foldDay(events []attendance.Event) []pairResult {
	results := make([]pairResult, 0, len(events))
	openIdx := -1 // index into results of the open IN

	for _, ev := range events {
		if ev.Presence {
			// A second IN in a row silently abandons the previous one; it
			// stays tagged unpairedIn with no duration.
			results = append(results, pairResult{kind: unpairedIn, event: ev})
			openIdx = len(results) - 1
			continue
		}

		if openIdx >= 0 {
			inMinutes, inErr := timeutil.ParseWallClock(results[openIdx].event.Time)
			outMinutes, outErr := timeutil.ParseWallClock(ev.Time)
			if inErr == nil && outErr == nil && inMinutes < outMinutes {
				seconds := float64(outMinutes-inMinutes) * 60
				results[openIdx].kind = paired
				results = append(results, pairResult{kind: paired, event: ev, seconds: seconds})
				openIdx = -1
				continue
			}
		}

		// No open IN, or the OUT does not come after it on the wall clock.
		results = append(results, pairResult{kind: anomalousOut, event: ev})
	}

	return results
}

// deriveDays turns a worker's raw events into report-ready per-day summaries:
// in-times, out-times with missed flags, and total worked duration. Events
// whose date cannot be normalized are skipped, never fatal.
func deriveDays(events []attendance.Event) []attendance.DaySummary {
	byDay := make(map[string][]attendance.Event)
	for _, ev := range events {
		key, err := timeutil.NormalizeDayKey(ev.Date)
		if err != nil {
			slog.Warn("Skipping attendance event with unparsable date",
				"event_id", ev.ID, "date", ev.Date)
			continue
		}
		byDay[key] = append(byDay[key], ev)
	}

	summaries := make([]attendance.DaySummary, 0, len(byDay))
	lastActivity := make(map[string]int64, len(byDay))

	for day, dayEvents := range byDay {
		// True chronological order. The wall-clock strings are ambiguous for
		// records created near midnight; created_at is not.
		sort.SliceStable(dayEvents, func(i, j int) bool {
			return dayEvents[i].CreatedAt.Before(dayEvents[j].CreatedAt)
		})

		var (
			inTimes  []attendance.PunchMark
			outTimes []attendance.PunchMark
			total    float64
		)

		results := foldDay(dayEvents)
		for _, res := range results {
			switch {
			case res.event.Presence:
				inTimes = append(inTimes, attendance.PunchMark{Time: res.event.Time})
			case res.kind == paired:
				outTimes = append(outTimes, attendance.PunchMark{
					Time:     res.event.Time,
					IsMissed: res.event.IsMissedOutPunch,
				})
				total += res.seconds
			default: // anomalousOut
				outTimes = append(outTimes, attendance.PunchMark{Time: res.event.Time, IsMissed: true})
			}
		}

		sortMarks(inTimes)
		sortMarks(outTimes)

		// A day whose last event is a still-open IN gets a display-only
		// unresolved marker so the report shows the asymmetry; nothing is
		// persisted and no duration is credited. An anomalous OUT after the
		// open IN already surfaces as a missed mark, so no marker then.
		if n := len(results); n > 0 && results[n-1].kind == unpairedIn {
			outTimes = append(outTimes, attendance.PunchMark{IsMissed: true})
		}

		summaries = append(summaries, attendance.DaySummary{
			Date:          day,
			InTimes:       inTimes,
			OutTimes:      outTimes,
			WorkedSeconds: total,
			Worked:        timeutil.FormatDuration(total),
		})
		lastActivity[day] = dayEvents[len(dayEvents)-1].CreatedAt.UnixNano()
	}

	// Most recent activity first.
	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if lastActivity[a.Date] != lastActivity[b.Date] {
			return lastActivity[a.Date] > lastActivity[b.Date]
		}
		return a.Date > b.Date
	})

	return summaries
}

func sortMarks(marks []attendance.PunchMark) {
	sort.SliceStable(marks, func(i, j int) bool {
		mi, erri := timeutil.ParseWallClock(marks[i].Time)
		mj, errj := timeutil.ParseWallClock(marks[j].Time)
		if erri != nil || errj != nil {
			return errj != nil && erri == nil
		}
		return mi < mj
	})
}

// totalWorkedHours flattens worked duration across every day in the slice.
// The monthly salary report sums first and compares against required hours
// once, not per day.
func totalWorkedHours(events []attendance.Event) float64 {
	var seconds float64
	for _, day := range deriveDays(events) {
		seconds += day.WorkedSeconds
	}
	return seconds / 3600
}
