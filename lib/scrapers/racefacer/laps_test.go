package racefacer

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func docFromString(t *testing.T, fixture string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestExtractLapTimes(t *testing.T) {
	doc := docFromString(t, profileFixture)

	laps := extractLapTimes(context.Background(), doc.Selection)
	require.Equal(t, []LapEntry{
		{Label: "Lap 1", Time: "1:02.3"},
		{Label: "Lap 2", Time: "1:01.9"},
	}, laps)
}

func TestExtractLapTimesSkipsPitLaps(t *testing.T) {
	fixture := `<div class="tab_laps">
		<div class="row"><div class="lap-name">Lap 1</div><div class="time_laps first pit"><span>0:01.0</span></div></div>
		<div class="row"><div class="lap-name">Lap 2</div><div class="time_laps first"><span>1:05.0</span></div></div>
	</div>`
	doc := docFromString(t, fixture)

	laps := extractLapTimes(context.Background(), doc.Selection)
	require.Equal(t, []LapEntry{{Label: "Lap 2", Time: "1:05.0"}}, laps)

	// a pit lap is never selected as the best even when its raw time
	// string would sort first
	require.Equal(t, "1:05.0", bestLapTime(laps))
}

func TestExtractLapTimesNoTable(t *testing.T) {
	doc := docFromString(t, `<div class="other"></div>`)
	laps := extractLapTimes(context.Background(), doc.Selection)
	require.Empty(t, laps)
}

func TestBestLapTime(t *testing.T) {
	require.Equal(t, NotFound, bestLapTime(nil))
	require.Equal(t, NotFound, bestLapTime([]LapEntry{}))

	laps := []LapEntry{
		{Label: "Lap 1", Time: "1:02.3"},
		{Label: "Lap 2", Time: "1:01.9"},
		{Label: "Lap 3", Time: "1:10.0"},
	}
	require.Equal(t, "1:01.9", bestLapTime(laps))

	// comparison is on the raw string, not a parsed duration
	laps = []LapEntry{
		{Label: "Lap 1", Time: "59.9"},
		{Label: "Lap 2", Time: "1:00.1"},
	}
	require.Equal(t, "1:00.1", bestLapTime(laps))
}
