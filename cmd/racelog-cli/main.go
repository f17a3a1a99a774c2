package main

import (
	"context"
	"os"

	"racelog-backend/cmd/racelog-cli/commands"
	"racelog-backend/lib/serviceutil"
	"racelog-backend/lib/telemetry"
)

func main() {
	ctx := context.Background()

	telemetry.InitSlog(true)

	// a missing telemetry.json5 just means no otlp export
	_, err := telemetry.SetupFromEnv(ctx, "racelog-cli")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("setup telemetry", err)
	}

	commands.ExecuteContext(ctx)
}
