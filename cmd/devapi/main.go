package main

import (
	"os"
	"time"

	"github.com/shandysiswandi/postlearn/internal/app"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("devapi", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "path to the config file (default $CONFIG_PATH or ./config/config.yaml)")
	//nolint:errcheck // ExitOnError
	flags.Parse(os.Args[1:])

	application := app.New(app.Options{ConfigPath: *configPath, Mode: app.ModeDevAPI})
	wait := application.Start() // Start the server and wait for the termination signal
	application.StopAfter(wait, 10*time.Second) // Stop the application gracefully
}
