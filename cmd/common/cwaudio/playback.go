package cwaudio

import "context"

// Play sends a finished buffer to the output device. With blocking set it
// returns once playback is done; otherwise playback runs on its own
// goroutine. The sidetone stream is primed with a short silence first so a
// cold device does not swallow the first element. Without a device, or for
// an empty buffer, Play returns immediately.
func (e *Engine) Play(ctx context.Context, buf Buffer, blocking bool) {
	side, ok := e.output()
	if !ok || len(buf) == 0 {
		return
	}
	if blocking {
		e.playNow(ctx, side, buf)
		return
	}
	if !e.startPhrase() {
		return
	}
	go func() {
		defer e.phrases.Done()
		e.playNow(ctx, side, buf)
	}()
}

func (e *Engine) playNow(ctx context.Context, side *Sidetone, buf Buffer) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(e.ctx, cancel)
	defer stop()

	if !side.Prime(ctx, Silence(primeMs)) {
		e.log.Debug("playing phrase without priming")
	}
	if err := e.device.Play(ctx, buf); err != nil {
		e.log.Debug("phrase playback failed", "error", err, "samples", len(buf))
	}
}

// startPhrase registers a background phrase unless the engine is closing.
func (e *Engine) startPhrase() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctx.Err() != nil {
		return false
	}
	e.phrases.Add(1)
	return true
}
