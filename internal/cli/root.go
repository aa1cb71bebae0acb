package cli

import (
	"fmt"
	"time"

	"github.com/jtomsett/clockbill/internal/storage"
	"github.com/jtomsett/clockbill/internal/tracker"
)

type Context struct {
	Store storage.Provider
}

// openTracker loads the store and builds the engine over it.
func (c *Context) openTracker() (*tracker.Tracker, error) {
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	return tracker.New(c.Store)
}

// formatElapsed renders a duration as H:MM:SS for live timer display.
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
