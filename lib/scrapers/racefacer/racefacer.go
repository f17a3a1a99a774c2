package racefacer

import (
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/racefacer")

var (
	ErrFetch           = fmt.Errorf("failed to fetch page")
	ErrProfileNotFound = fmt.Errorf("profile not found")
	ErrExtraction      = fmt.Errorf("failed to extract profile data")
)

// NotFound stands in for any optional per-session field the profile
// page did not yield. It is part of the wire format.
const NotFound = "Not found"

const DefaultBaseUrl = "https://www.racefacer.com/en/profile"

// LapEntry is one row of a session's lap table. Time is an opaque
// formatted duration string, it is never parsed into a numeric type.
type LapEntry struct {
	Label string
	Time  string
}

// lap entries serialize as [label, time] pairs
func (e LapEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Label, e.Time})
}

func (e *LapEntry) UnmarshalJSON(data []byte) error {
	var pair [2]string
	err := json.Unmarshal(data, &pair)
	if err != nil {
		return err
	}
	e.Label = pair[0]
	e.Time = pair[1]
	return nil
}

type Statistics struct {
	TotalDistance   string `json:"Total Distance"`
	TotalDriveHours string `json:"Total Drive Hours"`
	PreferredTrack  string `json:"Preferred Track"`
}

type ProfileInfo struct {
	DriverName string     `json:"Driver Name"`
	Location   string     `json:"Location"`
	Statistics Statistics `json:"Statistics"`
	TotalRaces int        `json:"Total Races"`
}

type RaceRecord struct {
	RaceId   string     `json:"race_id"`
	Position string     `json:"position"`
	Date     string     `json:"date"`
	Time     string     `json:"time"`
	Track    string     `json:"track"`
	Kart     string     `json:"kart"`
	LapTimes []LapEntry `json:"lap_times"`
	BestTime string     `json:"best_time"`
}

type ExtractionResult struct {
	ProfileInfo ProfileInfo  `json:"profile_info"`
	RacesData   []RaceRecord `json:"races_data"`
}
