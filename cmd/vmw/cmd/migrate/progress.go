package migrate

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// progressBar shows migrated clips on a terminal. The total grows as batches are read.
type progressBar struct {
	container *mpb.Progress
	bar       *mpb.Bar
	mu        sync.Mutex
	total     int64
}

func newProgressBar(w io.Writer) *progressBar {
	container := mpb.New(
		mpb.WithOutput(w),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	bar := container.AddBar(0,
		mpb.PrependDecorators(
			decor.Name("Migrating clips ", decor.WC{C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.OnComplete(
				decor.AverageSpeed(0, "%.1f clips/s", decor.WCSyncSpace), " ✓ ",
			),
		),
	)
	return &progressBar{container: container, bar: bar}
}

func (p *progressBar) Found(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total += int64(n)
	p.bar.SetTotal(p.total, false)
}

func (p *progressBar) Advance() {
	p.bar.Increment()
}

// Done completes the bar and waits for the last render.
func (p *progressBar) Done() {
	p.bar.SetTotal(p.bar.Current(), true)
	p.container.Wait()
}

func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
