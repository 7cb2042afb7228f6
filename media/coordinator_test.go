package media

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/taleweaver/artifact"
	"github.com/hupe1980/taleweaver/logging"
)

func TestCoordinator_BothSubtasksSucceed(t *testing.T) {
	imageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("png"))
	}))
	defer imageSrv.Close()

	audioSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("mp3"))
	}))
	defer audioSrv.Close()

	coordinator := NewCoordinator(NewImageClient(imageSrv.URL), NewAudioClient(audioSrv.URL, ""), artifact.NewInMemoryStore())

	result := coordinator.Generate(context.Background(), Request{
		Question: "Who did Alice meet?",
		Answer:   "Alice met the white rabbit.",
		Language: "en",
		Image:    true,
		Audio:    true,
	})
	require.NotNil(t, result.ImageURL)
	require.NotNil(t, result.AudioURL)
	assert.Contains(t, *result.ImageURL, "/static/images/")
	assert.Contains(t, *result.AudioURL, "/static/audio/")
}

func TestCoordinator_ImageFailureDoesNotAffectAudio(t *testing.T) {
	imageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer imageSrv.Close()

	audioSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("mp3"))
	}))
	defer audioSrv.Close()

	coordinator := NewCoordinator(NewImageClient(imageSrv.URL), NewAudioClient(audioSrv.URL, ""), artifact.NewInMemoryStore())

	result := coordinator.Generate(context.Background(), Request{
		Question: "Who is Alice?",
		Answer:   "Alice is the heroine.",
		Language: "en",
		Image:    true,
		Audio:    true,
	})
	assert.Nil(t, result.ImageURL)
	require.NotNil(t, result.AudioURL)
}

func TestCoordinator_DisabledSubtasksSkipNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("bytes"))
	}))
	defer srv.Close()

	coordinator := NewCoordinator(NewImageClient(srv.URL), NewAudioClient(srv.URL, ""), artifact.NewInMemoryStore())

	result := coordinator.Generate(context.Background(), Request{
		Question: "alice",
		Answer:   "Alice went down the rabbit hole.",
		Language: "en",
	})
	assert.Nil(t, result.ImageURL)
	assert.Nil(t, result.AudioURL)
	assert.Equal(t, int32(0), calls.Load())
}

func TestCoordinator_NilClientsShortCircuit(t *testing.T) {
	coordinator := NewCoordinator(nil, nil, artifact.NewInMemoryStore())

	result := coordinator.Generate(context.Background(), Request{
		Question: "alice",
		Answer:   "Alice.",
		Language: "en",
		Image:    true,
		Audio:    true,
	})
	assert.Nil(t, result.ImageURL)
	assert.Nil(t, result.AudioURL)
}

func TestCoordinator_NoNarratableTextSkipsAudio(t *testing.T) {
	var calls atomic.Int32
	audioSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("mp3"))
	}))
	defer audioSrv.Close()

	coordinator := NewCoordinator(nil, NewAudioClient(audioSrv.URL, ""), artifact.NewInMemoryStore())

	result := coordinator.Generate(context.Background(), Request{
		Question: "emoji",
		Answer:   "🎉✨📚",
		Language: "en",
		Audio:    true,
	})
	assert.Nil(t, result.AudioURL)
	assert.Equal(t, int32(0), calls.Load())
}

func TestCoordinator_AnswerPromptWhenSceneUnusable(t *testing.T) {
	var gotPath string
	imageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte("png"))
	}))
	defer imageSrv.Close()

	coordinator := NewCoordinator(NewImageClient(imageSrv.URL), nil, artifact.NewInMemoryStore())

	result := coordinator.Generate(context.Background(), Request{
		Question: "🤚",
		Answer:   "🎉✨",
		Language: "en",
		Image:    true,
	})
	require.NotNil(t, result.ImageURL)
	assert.Contains(t, gotPath, "whimsical")
}

type taskRecorder struct {
	logging.NoOpLogger
	mu     sync.Mutex
	events []string
}

func (l *taskRecorder) LogMediaTask(kind string, _ time.Duration, success bool, _ error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, fmt.Sprintf("%s:%t", kind, success))
}

func TestCoordinator_RecordsSubtaskOutcomes(t *testing.T) {
	imageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer imageSrv.Close()

	audioSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("mp3"))
	}))
	defer audioSrv.Close()

	rec := &taskRecorder{}
	coordinator := NewCoordinator(
		NewImageClient(imageSrv.URL),
		NewAudioClient(audioSrv.URL, ""),
		artifact.NewInMemoryStore(),
		func(o *CoordinatorOptions) { o.Logger = rec },
	)

	coordinator.Generate(context.Background(), Request{
		Question: "alice",
		Answer:   "Alice met the rabbit.",
		Language: "en",
		Image:    true,
		Audio:    true,
	})
	assert.ElementsMatch(t, []string{"image:false", "audio:true"}, rec.events)
}

func TestCoordinator_IdenticalContentSharesArtifact(t *testing.T) {
	audioSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("mp3"))
	}))
	defer audioSrv.Close()

	coordinator := NewCoordinator(nil, NewAudioClient(audioSrv.URL, ""), artifact.NewInMemoryStore())

	req := Request{Question: "q", Answer: "The same story every time.", Language: "en", Audio: true}
	first := coordinator.Generate(context.Background(), req)
	second := coordinator.Generate(context.Background(), req)
	require.NotNil(t, first.AudioURL)
	require.NotNil(t, second.AudioURL)
	assert.Equal(t, *first.AudioURL, *second.AudioURL)
}
