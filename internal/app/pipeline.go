package app

import (
	"log"
	"time"

	"github.com/ayusman/fingerspell/internal/classify"
	"github.com/ayusman/fingerspell/internal/detector"
	"github.com/ayusman/fingerspell/internal/plugin"
	"github.com/ayusman/fingerspell/internal/stabilize"
)

// runPipeline is the frame loop. Every processed frame runs one full
// classify-and-stabilize step before the next is read; the engine is
// never advanced concurrently.
//
// Unlike a motion-triggered pipeline, detection runs in idle mode too: a
// held letter is stationary, so motion alone cannot gate recognition.
// Motion and hand presence only control the frame rate - either keeps
// the camera at ActiveFPS, and IdleTimeoutMs without both drops it back
// to IdleFPS.
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastActivity := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			hands, err := a.Detector().Detect(frame)
			frame.Close()
			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			raw, wristX, handSize, ok := a.observe(hands)
			if !ok {
				// Malformed landmarks; drop the frame rather than
				// feeding the engine a wrong symbol.
				continue
			}

			mutation := a.engine.Advance(raw, wristX, handSize)
			if mutation.Op != stabilize.OpNone {
				a.dispatchCommit(mutation)
			}

			handPresent := raw != classify.SymbolNone
			if handPresent || motionDetected {
				lastActivity = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastActivity) > time.Duration(IdleTimeoutMs)*time.Millisecond {
				activeMode = false
				a.camera.SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to idle mode")
			}
		}
	}
}

// observe classifies the first detected hand, if any. Multi-hand input
// is truncated to the first hand. ok is false only for malformed
// landmark data.
func (a *App) observe(hands []detector.HandLandmarks) (raw classify.Symbol, wristX, handSize float64, ok bool) {
	if len(hands) == 0 {
		return classify.SymbolNone, 0, 0, true
	}

	frame, err := classify.FrameFromLandmarks(&hands[0])
	if err != nil {
		log.Printf("Invalid hand frame: %v", err)
		return classify.SymbolNone, 0, 0, false
	}

	a.mu.RLock()
	c := a.classifier
	a.mu.RUnlock()

	return c.Classify(frame), frame[detector.Wrist].X, classify.HandSize(frame), true
}

// dispatchCommit fans a text mutation out to registered listeners and to
// every discovered plugin. Plugin execution happens off the frame loop.
func (a *App) dispatchCommit(m stabilize.Mutation) {
	text := a.engine.Text()
	log.Printf("Committed %q (transcript: %q)", m.Text, text)

	a.mu.RLock()
	listeners := a.listeners
	a.mu.RUnlock()
	for _, fn := range listeners {
		fn(m, text)
	}

	action := "append"
	if m.Op == stabilize.OpSpace {
		action = "space"
	}

	for _, p := range a.pluginMgr.List() {
		p := p
		go func() {
			req := &plugin.Request{
				Action:     action,
				Text:       m.Text,
				Transcript: text,
			}
			if _, err := a.pluginExec.Execute(p, req); err != nil {
				log.Printf("Plugin %s failed: %v", p.Manifest.Name, err)
			}
		}()
	}
}
