package main

import (
	"flag"
	"net/http"

	"racelog-backend/lib/configutil"
	"racelog-backend/lib/serviceutil"
	"racelog-backend/services/racedata"
)

type Config struct {
	Port     int             `json:"port"`
	RaceData racedata.Config `json:"racedata"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}

	mux := http.NewServeMux()
	racedata.NewService(cfg.RaceData).Register(mux)

	go serviceutil.StartHttpServer(cfg.Port, mux)
	<-ctx.Done()
}
