package media

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/taleweaver/artifact"
	"github.com/hupe1980/taleweaver/logging"
)

// Request describes one coordinated media generation round.
type Request struct {
	Question string
	Answer   string
	Language string
	Image    bool // image subtask requested
	Audio    bool // audio subtask requested
}

// Result carries the outcome of both subtasks. A nil URL means the subtask
// was disabled, produced nothing, or failed; failure is data here, never an
// error.
type Result struct {
	ImageURL *string
	AudioURL *string
}

// Coordinator runs the image and audio subtasks concurrently with branch
// isolation: each subtask gets its own deadline and its failure never
// propagates to the sibling or the caller.
type Coordinator struct {
	image   *ImageClient
	audio   *AudioClient
	store   artifact.Store
	timeout time.Duration
	logger  logging.Logger
}

// CoordinatorOptions configure a Coordinator.
type CoordinatorOptions struct {
	// Timeout bounds each subtask independently. A subtask that exceeds it
	// is treated as failed; no cancellation is propagated beyond the
	// deadline itself.
	Timeout time.Duration
	// Logger receives subtask diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// NewCoordinator constructs a Coordinator. Either client may be nil, in which
// case the corresponding subtask always short-circuits to a nil URL without
// touching the network.
func NewCoordinator(image *ImageClient, audio *AudioClient, store artifact.Store, optFns ...func(o *CoordinatorOptions)) *Coordinator {
	opts := CoordinatorOptions{
		Timeout: DefaultImageTimeout,
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Coordinator{
		image:   image,
		audio:   audio,
		store:   store,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
}

// Generate runs the requested subtasks concurrently and waits for both.
// Relative completion order is unconstrained. Each failure is absorbed into a
// nil URL after logging.
func (c *Coordinator) Generate(ctx context.Context, req Request) Result {
	var (
		wg     sync.WaitGroup
		result Result
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		result.ImageURL = c.runImage(ctx, req)
	}()
	go func() {
		defer wg.Done()
		result.AudioURL = c.runAudio(ctx, req)
	}()
	wg.Wait()

	return result
}

func (c *Coordinator) runImage(ctx context.Context, req Request) *string {
	if !req.Image || c.image == nil {
		return nil
	}

	subCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := ScenePrompt(req.Question, req.Answer)
	if strings.TrimSpace(prompt) == "" {
		// Degraded fallback: derive the prompt from the answer alone.
		prompt = AnswerPrompt(req.Answer)
	}

	start := time.Now()
	data, err := c.image.Generate(subCtx, prompt)
	if err != nil {
		c.logger.LogMediaTask("image", time.Since(start), false, err)
		return nil
	}

	art, err := c.store.Save(artifact.KindImage, artifact.ContentHash(prompt), data)
	if err != nil {
		c.logger.LogMediaTask("image", time.Since(start), false, err)
		return nil
	}

	c.logger.LogMediaTask("image", time.Since(start), true, nil)
	url := art.URL()
	return &url
}

func (c *Coordinator) runAudio(ctx context.Context, req Request) *string {
	if !req.Audio || c.audio == nil {
		return nil
	}

	clean := CleanNarration(req.Answer)
	if strings.TrimSpace(clean) == "" {
		c.logger.Warn("no narratable text after cleaning")
		return nil
	}

	subCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	data, err := c.audio.Generate(subCtx, clean, req.Language)
	if err != nil {
		c.logger.LogMediaTask("audio", time.Since(start), false, err)
		return nil
	}

	art, err := c.store.Save(artifact.KindAudio, artifact.ContentHash(clean), data)
	if err != nil {
		c.logger.LogMediaTask("audio", time.Since(start), false, err)
		return nil
	}

	c.logger.LogMediaTask("audio", time.Since(start), true, nil)
	url := art.URL()
	return &url
}
