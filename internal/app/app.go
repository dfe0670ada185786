// Package app wires the camera, hand detector, classifier, and
// stabilization engine into the frame-driven recognition loop.
package app

import (
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/fingerspell/internal/capture"
	"github.com/ayusman/fingerspell/internal/classify"
	"github.com/ayusman/fingerspell/internal/detector"
	"github.com/ayusman/fingerspell/internal/plugin"
	"github.com/ayusman/fingerspell/internal/stabilize"
	"github.com/ayusman/fingerspell/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no hand or motion has been seen
	// for a while.
	IdleFPS = 5
	// ActiveFPS is the frame rate while a hand is present or the scene
	// is moving.
	ActiveFPS = 15
	// IdleTimeoutMs is how long without a hand or motion before
	// dropping back to idle FPS.
	IdleTimeoutMs = 2000
)

// ErrEmptyTranscript is returned when saving a transcript with no
// committed text.
var ErrEmptyTranscript = errors.New("transcript is empty")

// CommitListener receives every text mutation along with the full
// transcript after the mutation was applied.
type CommitListener func(m stabilize.Mutation, text string)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	PluginDir    string
	CameraID     int
	MotionThresh float64
	Engine       stabilize.Config
}

// App orchestrates frame capture, hand detection, classification, and
// text stabilization for one recognition session.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *classify.Classifier
	engine     *stabilize.Engine
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	listeners  []CommitListener
	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}
	startedAt  time.Time
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		classifier: classify.NewDefault(),
		engine:     stabilize.New(config.Engine),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(5000), // 5 second plugin timeout
		startedAt:  time.Now(),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables recognition.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether recognition is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetClassifier replaces the classifier, for retuned thresholds.
func (a *App) SetClassifier(c *classify.Classifier) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.classifier = c
}

// OnCommit registers a listener for committed text mutations. Listeners
// run on the pipeline goroutine and must not block.
func (a *App) OnCommit(fn CommitListener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start begins the recognition pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)
	a.startedAt = time.Now()

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Recognition pipeline started")
	return nil
}

// Stop halts the recognition pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Recognition pipeline stopped")
}

// Text returns the current session transcript.
func (a *App) Text() string {
	return a.engine.Text()
}

// Smoothed returns the majority symbol over the recent frame window.
func (a *App) Smoothed() classify.Symbol {
	return a.engine.Smoothed()
}

// Clear empties the transcript.
func (a *App) Clear() {
	a.engine.Clear()
}

// Backspace strips the last character of the transcript.
func (a *App) Backspace() {
	a.engine.Backspace()
}

// SaveTranscript archives the current transcript to the store and
// clears the session. Returns ErrEmptyTranscript when there is nothing
// to save.
func (a *App) SaveTranscript() (*store.Transcript, error) {
	if a.config.Store == nil {
		return nil, errors.New("no store configured")
	}

	text := a.engine.Text()
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyTranscript
	}

	t := &store.Transcript{
		ID:        uuid.New().String(),
		Text:      text,
		StartedAt: a.startedAt,
	}
	if err := a.config.Store.Transcripts().Create(t); err != nil {
		return nil, err
	}

	a.engine.Clear()
	a.mu.Lock()
	a.startedAt = time.Now()
	a.mu.Unlock()

	return t, nil
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Engine returns the stabilization engine.
func (a *App) Engine() *stabilize.Engine {
	return a.engine
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
