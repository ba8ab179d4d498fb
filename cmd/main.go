package main

import (
	"os"

	"career-guidance-service/internal/cli"
	"career-guidance-service/internal/logging"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
