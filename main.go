package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Pinkwolf12321/lovelace-language/cli"
	"github.com/Pinkwolf12321/lovelace-language/cli/cmd"
	"github.com/Pinkwolf12321/lovelace-language/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error(
			"run failed",
			slog.Any("error", err),
		) // slog automatically uses LogValue()
		os.Exit(cmd.ExitCode(err))
	}
}
