package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Report written
	ExitNoData  = 1 // No locale or property type returned any data
	ExitError   = 2 // Configuration or runtime error
)

// NoDataError indicates that the run completed but every query came back
// empty. The (mostly empty) report is still written.
type NoDataError struct {
	Message string
}

func (e *NoDataError) Error() string {
	return e.Message
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := execute(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		var noDataErr *NoDataError
		if errors.As(err, &noDataErr) {
			os.Exit(ExitNoData)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
