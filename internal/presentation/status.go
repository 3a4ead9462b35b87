package presentation

import (
	"fmt"
	"time"

	"github.com/dosirrah/mdx/internal/pubsub"
)

// FormatRunStatus renders one status line for a watch-mode run: a green
// "ok" with the run duration, or a red "fail" with the error.
func FormatRunStatus(event pubsub.Event[pubsub.RunEvent]) string {
	ts := event.Timestamp.Format("15:04:05")
	run := event.Payload
	if run.Err != nil {
		return fmt.Sprintf("%s %s %s: %v", ts, runFailStyle.Render("fail"), run.Path, run.Err)
	}
	return fmt.Sprintf("%s %s %s (%s)", ts, runOKStyle.Render("ok"), run.Path, run.Duration.Round(time.Millisecond))
}
