package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shandysiswandi/postlearn/internal/app"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

func main() {
	flags := pflag.NewFlagSet("postlearn", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "path to the config file (default $CONFIG_PATH or ./config/config.yaml)")
	logout := flags.Bool("logout", false, "remove the stored session and exit")
	whoami := flags.Bool("whoami", false, "print who the stored session belongs to and exit")
	//nolint:errcheck // ExitOnError
	flags.Parse(os.Args[1:])

	application := app.New(app.Options{ConfigPath: *configPath, Mode: app.ModeClient})

	if *logout || *whoami {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var err error
		if *logout {
			err = application.Logout(ctx)
		} else {
			err = application.Whoami(ctx, os.Stdout)
		}
		application.Stop(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	wait := application.Start() // Start the login screen and wait for it to end
	application.StopAfter(wait, shutdownTimeout)
}
