// Package app wires the safety gate, emotion classification, mood history,
// and reply generation into one sequential pipeline per user turn.
package app

import (
	"fmt"
	"time"

	"mindwell/internal/emotion"
	"mindwell/pkg/ai"
	"mindwell/pkg/events"
	"mindwell/pkg/quotes"
	"mindwell/pkg/storage"
	"mindwell/pkg/store"
)

const (
	defaultReplyWindow    = 20
	defaultClassifyTurns  = 6
	defaultSessionHistory = 200
)

// Config holds runtime configuration for the core application.
type Config struct {
	Store      store.Store
	Generator  ai.Generator
	Classifier emotion.Classifier
	Publisher  events.Publisher
	Exports    storage.ObjectStore
	Quotes     *quotes.Client

	// ReplyWindow bounds how many recent messages are sent for reply
	// generation; ClassifyTurns bounds the user turns sent for emotion
	// classification. Both bound external-call cost, not correctness.
	ReplyWindow   int
	ClassifyTurns int

	// IntensityScoring multiplies mood scores by the classifier's 1-5
	// intensity, extending the scale to -5..+5.
	IntensityScoring bool

	// Now overrides the clock in tests.
	Now func() time.Time
}

// App is the core application service.
type App struct {
	store            store.Store
	generator        ai.Generator
	classifier       emotion.Classifier
	publisher        events.Publisher
	exports          storage.ObjectStore
	quotes           *quotes.Client
	replyWindow      int
	classifyTurns    int
	intensityScoring bool
	now              func() time.Time
}

// New constructs the application. Store is required; a nil Classifier
// defaults to the keyword strategy, and a nil Generator disables delegated
// calls (every call site falls back to its static value).
func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	classifier := cfg.Classifier
	if classifier == nil {
		if cfg.Generator != nil {
			classifier = emotion.NewModelClassifier(cfg.Generator, cfg.ClassifyTurns)
		} else {
			classifier = emotion.KeywordClassifier{}
		}
	}
	replyWindow := cfg.ReplyWindow
	if replyWindow <= 0 {
		replyWindow = defaultReplyWindow
	}
	classifyTurns := cfg.ClassifyTurns
	if classifyTurns <= 0 {
		classifyTurns = defaultClassifyTurns
	}
	quotesClient := cfg.Quotes
	if quotesClient == nil {
		quotesClient = quotes.NewClient("")
	}
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &App{
		store:            cfg.Store,
		generator:        cfg.Generator,
		classifier:       classifier,
		publisher:        cfg.Publisher,
		exports:          cfg.Exports,
		quotes:           quotesClient,
		replyWindow:      replyWindow,
		classifyTurns:    classifyTurns,
		intensityScoring: cfg.IntensityScoring,
		now:              now,
	}, nil
}
