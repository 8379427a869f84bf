package engine

import (
	"context"
	"time"

	"github.com/spaghettifunk/lathe/engine/containers"
	"github.com/spaghettifunk/lathe/engine/core"
)

type rowQueue = containers.RingQueue[[]float32]

// runWaterfall scrolls grid.frames spectrum rows through the waterfall
// grid. Rows are produced on their own goroutine and buffered in a ring
// queue of grid.queue_size rows. Cancelling ctx or quitting stops the loop
// early without an error.
func (e *Engine) runWaterfall(ctx context.Context) error {
	g := e.scene.Grid
	if g.Frames == 0 {
		return nil
	}

	spectrum := e.gameInstance.FnSpectrum
	if spectrum == nil {
		spectrum = NewSpectrumGenerator(g.Seed, g.Amplitude).Row
	}

	queue := containers.NewRingQueue[[]float32](g.QueueSize)
	produced := make(chan struct{}, 1)
	consumed := make(chan struct{}, 1)
	frames := uint64(g.Frames)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		produceRows(ctx, queue, spectrum, frames, g.Cols, produced, consumed)
	}()
	// the producer must be gone before the spectrum is used again
	defer func() {
		cancel()
		<-done
	}()

	var pacing <-chan time.Time
	if g.FrameRate > 0 {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / g.FrameRate))
		defer ticker.Stop()
		pacing = ticker.C
	}

	core.LogInfo("running the waterfall for %d frames", frames)
	for frame := uint64(0); frame < frames; frame++ {
		row, ok := e.nextRow(ctx, queue, produced)
		if !ok {
			core.LogInfo("waterfall stopped after %d frames", frame)
			return nil
		}
		notify(consumed)

		if err := e.scrollFrame(frame, row); err != nil {
			return err
		}

		if pacing != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-e.quit:
				return nil
			case <-pacing:
			}
		}
	}

	fps, frameTime := core.MetricsFrame()
	core.LogInfo("waterfall done: %d frames, %.1f fps, %.3f ms per frame", frames, fps, frameTime)
	return nil
}

func produceRows(ctx context.Context, queue *rowQueue, spectrum Spectrum, frames uint64, cols int, produced chan<- struct{}, consumed <-chan struct{}) {
	for frame := uint64(0); frame < frames; frame++ {
		row := spectrum(frame, cols)
		for queue.Enqueue(row) != nil {
			select {
			case <-ctx.Done():
				return
			case <-consumed:
			}
		}
		notify(produced)
	}
}

// nextRow waits for the producer. It returns false once the loop has to
// stop.
func (e *Engine) nextRow(ctx context.Context, queue *rowQueue, produced <-chan struct{}) ([]float32, bool) {
	for {
		select {
		case <-ctx.Done():
			return nil, false
		case <-e.quit:
			return nil, false
		default:
		}

		if row, err := queue.Dequeue(); err == nil {
			return row, true
		}

		select {
		case <-ctx.Done():
			return nil, false
		case <-e.quit:
			return nil, false
		case <-produced:
		}
	}
}

// notify wakes the other side without ever blocking; one pending wakeup
// is enough.
func notify(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (e *Engine) scrollFrame(frame uint64, row []float32) error {
	frameStart := time.Now()

	// Update clock and get delta time.
	e.clock.Update()
	currentTime := e.clock.Elapsed()
	delta := currentTime - e.lastTime

	if err := e.waterfall.Scroll(row); err != nil {
		core.LogError(err.Error())
		return err
	}
	// the registered model shares the scrolled buffer, bump its generation
	if _, err := e.systemManager.GeometrySystem.Register(GEOMETRY_NAME_WATERFALL, e.grid, false); err != nil {
		return err
	}

	if fn := e.gameInstance.FnUpdate; fn != nil {
		if err := fn(delta); err != nil {
			core.LogError("game update failed: %s", err)
			return err
		}
	}

	core.MetricsUpdate(time.Since(frameStart).Seconds())
	core.EventFire(core.EVENT_CODE_GRID_SCROLLED, e, core.EventContext{Payload: frame})

	e.lastTime = currentTime
	return nil
}
