package racedata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"racelog-backend/lib/scrapers/racefacer"

	"github.com/stretchr/testify/require"
)

const profilePage = `<html><body>
<div class="username">Max Verhoeven</div>
<div class="profile-more-info"><span>Sofia, Bulgaria, </span></div>
<div class="total_distance"><div class="value">1,204 km</div></div>
<div class="total_time"><div class="value">58h 12m</div></div>
<div class="favorite_track"><div class="value">Sofia Ring</div></div>
<div class="session-result-container" data-session-uuid="s1">
	<div class="position inline">2</div>
	<div class="minified-stat date"><span class="date">12.03.2024</span><span class="clock">18:45</span></div>
	<div class="minified-stat track-kart"><div class="track-name">Sofia Ring</div><div>Sodi RT8</div></div>
	<div class="tab_laps"><div class="table_content">
		<div class="row"><div class="lap-name">Lap 1</div><div class="time_laps first"><span>1:02.3</span></div></div>
	</div></div>
</div>
</body></html>`

const emptyPage = `<html><body><div class="nothing"></div></body></html>`

func newTestService(t *testing.T) *httptest.Server {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/maxv/sessions":
			fmt.Fprint(w, profilePage)
		case "/ghost/sessions":
			fmt.Fprint(w, emptyPage)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	t.Cleanup(origin.Close)

	mux := http.NewServeMux()
	NewService(Config{
		Backend: BackendStatic,
		BaseUrl: origin.URL,
	}).Register(mux)

	api := httptest.NewServer(mux)
	t.Cleanup(api.Close)
	return api
}

func TestGetRaceData(t *testing.T) {
	api := newTestService(t)

	res, err := http.Get(api.URL + "/race-data/maxv")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/json", res.Header.Get("Content-Type"))

	var result racefacer.ExtractionResult
	err = json.NewDecoder(res.Body).Decode(&result)
	require.NoError(t, err)

	require.Equal(t, "Max Verhoeven", result.ProfileInfo.DriverName)
	require.Equal(t, 1, result.ProfileInfo.TotalRaces)
	require.Len(t, result.RacesData, 1)
	require.Equal(t, "1:02.3", result.RacesData[0].BestTime)
}

func TestGetRaceDataProfileNotFound(t *testing.T) {
	api := newTestService(t)

	res, err := http.Get(api.URL + "/race-data/ghost")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	var body struct {
		Detail string `json:"detail"`
	}
	err = json.NewDecoder(res.Body).Decode(&body)
	require.NoError(t, err)
	require.Contains(t, body.Detail, "profile not found")
}

func TestGetRaceDataFetchFailure(t *testing.T) {
	api := newTestService(t)

	res, err := http.Get(api.URL + "/race-data/nobody")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var body struct {
		Detail string `json:"detail"`
	}
	err = json.NewDecoder(res.Body).Decode(&body)
	require.NoError(t, err)
	require.Contains(t, body.Detail, "failed to fetch page")
}

func TestHealth(t *testing.T) {
	api := newTestService(t)

	res, err := http.Get(api.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body map[string]string
	err = json.NewDecoder(res.Body).Decode(&body)
	require.NoError(t, err)
	require.Equal(t, "healthy", body["status"])
}

func TestUnknownBackend(t *testing.T) {
	_, err := NewService(Config{Backend: "telepathy"}).newSource()
	require.Error(t, err)
}
