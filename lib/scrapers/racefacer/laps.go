package racefacer

import (
	"context"
	"log/slog"
	"strings"

	"racelog-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// extractLapTimes walks the lap table rows in page order. Rows missing
// a label or a time cell are skipped without aborting the rest of the
// table, and pit laps never make it into the output.
func extractLapTimes(ctx context.Context, scope *goquery.Selection) []LapEntry {
	laps := []LapEntry{}
	scope.Find(".tab_laps .row").Each(func(i int, row *goquery.Selection) {
		label := row.Find(".lap-name").First()
		if label.Length() == 0 {
			return
		}
		cell := row.Find(".time_laps.first").First()
		if cell.Length() == 0 {
			slog.DebugContext(ctx, "lap row without time cell", "row", i)
			return
		}
		// pit stops are flagged on the time cell's class list
		if strings.Contains(strings.ToLower(cell.AttrOr("class", "")), "pit") {
			return
		}

		time := ""
		if span := cell.Find("span").First(); span.Length() > 0 {
			time = htmlutil.CleanText(span.Text())
		} else {
			time = htmlutil.CleanText(cell.Text())
		}
		name := htmlutil.CleanText(label.Text())
		if name == "" || time == "" {
			return
		}

		laps = append(laps, LapEntry{Label: name, Time: time})
	})
	return laps
}

// The best lap is the entry with the smallest raw time string. Lap
// times are opaque formatted strings and the ordering on them is plain
// string comparison; reformatting into durations would change behavior
// on inputs the origin site formats inconsistently.
func bestLapTime(laps []LapEntry) string {
	if len(laps) == 0 {
		return NotFound
	}
	best := laps[0].Time
	for _, lap := range laps[1:] {
		if lap.Time < best {
			best = lap.Time
		}
	}
	return best
}
