package main

import (
	"os"

	"github.com/vova-ivanov/cmakegen/cmd"
	"github.com/vova-ivanov/cmakegen/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.ExitCode(err))
	}
}
