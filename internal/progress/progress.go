// Package progress shows an animated line on a terminal while EPC queries
// are in flight.
package progress

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/greenlandlord/epcstats/internal/analysis"
	"github.com/greenlandlord/epcstats/internal/dataset"
	"github.com/greenlandlord/epcstats/internal/epcapi"
	"github.com/mattn/go-runewidth"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Interval between spinner frames.
const Interval = 80 * time.Millisecond

// Start draws a spinner followed by message on w until the returned stop
// function is called. stop clears the line and is safe to call twice.
func Start(w io.Writer, message string) (stop func()) {
	done := make(chan struct{})
	cleared := make(chan struct{})
	width := runewidth.StringWidth(message) + 2

	var once sync.Once
	go func() {
		ticker := time.NewTicker(Interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-done:
				fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", width)) //nolint:errcheck
				close(cleared)
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], message) //nolint:errcheck
			}
		}
	}()
	return func() {
		once.Do(func() { close(done) })
		<-cleared
	}
}

// Fetcher wraps another fetcher and shows a spinner for each query.
type Fetcher struct {
	Next analysis.Fetcher
	Out  io.Writer
}

// Fetch implements analysis.Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, q epcapi.Query) *dataset.Dataset {
	stop := Start(f.Out, "Fetching "+Describe(q))
	defer stop()
	return f.Next.Fetch(ctx, q)
}

// Describe renders the filter of a query for humans.
func Describe(q epcapi.Query) string {
	switch {
	case q.LocalAuthority != "" && q.PropertyType != "":
		return fmt.Sprintf("%s in %s", q.PropertyType, q.LocalAuthority)
	case q.LocalAuthority != "":
		return q.LocalAuthority
	case q.PropertyType != "":
		return q.PropertyType
	default:
		return "all certificates"
	}
}
