package directory

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSpec runs the sweep every five minutes.
const DefaultSweepSpec = "@every 5m"

// RunSweeper evicts idle sessions from st on the cron schedule spec until ctx
// is done.
func RunSweeper(ctx context.Context, st *Store, spec string) error {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if n := st.Sweep(); n > 0 {
			slog.Info("directory sessions swept", "removed", n, "live", st.Len())
		}
	}); err != nil {
		return err
	}
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
