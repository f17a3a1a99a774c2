package commands

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"racelog-backend/lib/scrapers/racefacer"
	"racelog-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var fetchBackend *string
var fetchBaseUrl *string
var fetchJson *bool
var fetchDelay *int

func init() {
	fetchBackend = fetchCmd.Flags().String("backend", "static", `Page source to use, "static" or "rendered".`)
	fetchBaseUrl = fetchCmd.Flags().String("base-url", racefacer.DefaultBaseUrl, "Profile base url.")
	fetchJson = fetchCmd.Flags().Bool("json", false, "Print the raw extraction result instead of tables.")
	fetchDelay = fetchCmd.Flags().Int("delay", 2, "Seconds to wait between session fetches (rendered backend).")
	rootCmd.AddCommand(fetchCmd)
}

func newSource() racefacer.Source {
	if *fetchBackend == "rendered" {
		source, err := racefacer.NewRenderedSource(racefacer.RenderedSourceOptions{
			BaseUrl:      *fetchBaseUrl,
			SessionDelay: time.Duration(*fetchDelay) * time.Second,
		})
		if err != nil {
			serviceutil.Fatal("failed to start browser", err)
		}
		return source
	}
	source, err := racefacer.NewStaticSource(racefacer.StaticSourceOptions{
		BaseUrl: *fetchBaseUrl,
	})
	if err != nil {
		serviceutil.Fatal("failed to create http client", err)
	}
	return source
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <username>",
	Short: "Fetches a driver's full race history and prints it.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		ctx := cmd.Context()

		source := newSource()
		defer source.Close(ctx)

		t1 := time.Now()
		result, err := racefacer.ExtractRaceData(ctx, source, username)
		if err != nil {
			serviceutil.Fatal("extraction failed", err)
		}
		slog.Info("extraction time", "seconds", time.Since(t1).Seconds())

		if *fetchJson {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			err = enc.Encode(result)
			if err != nil {
				serviceutil.Fatal("failed to encode result", err)
			}
			return
		}

		printProfile(result.ProfileInfo)
		printRaces(result.RacesData)
	},
}

func printProfile(info racefacer.ProfileInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendRows([]table.Row{
		{"Driver Name", info.DriverName},
		{"Location", info.Location},
		{"Total Distance", info.Statistics.TotalDistance},
		{"Total Drive Hours", info.Statistics.TotalDriveHours},
		{"Preferred Track", info.Statistics.PreferredTrack},
		{"Total Races", info.TotalRaces},
	})
	t.Render()
}

func printRaces(races []racefacer.RaceRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Race", "Position", "Date", "Time", "Track", "Kart", "Laps", "Best"})

	for _, race := range races {
		t.AppendRow(table.Row{
			race.RaceId,
			race.Position,
			race.Date,
			race.Time,
			race.Track,
			race.Kart,
			len(race.LapTimes),
			race.BestTime,
		})
	}
	t.Render()
}
