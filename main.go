package main

import (
	"errors"
	"os"

	"github.com/artifact-hub/relcheck/cmd"
	"github.com/artifact-hub/relcheck/internal/checker"
	"github.com/artifact-hub/relcheck/internal/logging"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		logging.Close()
		return
	}
	if errors.Is(err, checker.ErrUpdatesNotWritten) {
		logging.Close()
		os.Exit(1)
	}
	logging.Error("Error: " + err.Error())
	logging.Close()
	os.Exit(2)
}
