package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/taleweaver/core"
	"github.com/hupe1980/taleweaver/engine"
	"github.com/hupe1980/taleweaver/model"
	"github.com/hupe1980/taleweaver/transcribe"
)

type fakeRetriever struct {
	chunks []core.Chunk
	ready  bool
}

func (r *fakeRetriever) Search(_ context.Context, _ string, _ int) ([]core.Chunk, error) {
	return r.chunks, nil
}

func (r *fakeRetriever) Ready() bool { return r.ready }

type stubDecoder struct {
	text string
}

func (d *stubDecoder) Decode(_ context.Context, _ string) (string, error) {
	return d.text, nil
}

func newTestHandler(ready bool) *Handler {
	retriever := &fakeRetriever{
		ready: ready,
		chunks: []core.Chunk{
			{Text: "Alice fell down the rabbit hole.", Metadata: map[string]any{"source": "alice.pdf"}, Score: 0.8},
		},
	}
	eng := engine.New(retriever, model.NewMockModel("test-model"))
	return NewHandler(eng, retriever, func(o *HandlerOptions) {
		o.Transcriber = transcribe.NewService(&stubDecoder{text: "Tell me about Alice."})
	})
}

func TestChat(t *testing.T) {
	e := echo.New()
	h := newTestHandler(true)

	body := `{"question": "What happened to Alice?", "generate_image": false, "generate_audio": false}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Chat(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp core.ChatResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsRelevant)
	assert.NotEmpty(t, resp.Answer)
	assert.Len(t, resp.History, 2)
	assert.Nil(t, resp.ImageURL)
	assert.Nil(t, resp.AudioURL)
}

func TestChat_MissingQuestion(t *testing.T) {
	e := echo.New()
	h := newTestHandler(true)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Chat(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_KnowledgeBaseNotReady(t *testing.T) {
	e := echo.New()
	h := newTestHandler(false)

	body := `{"question": "What happened to Alice?"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Chat(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Knowledge base not initialized")
}

func TestLanguages(t *testing.T) {
	e := echo.New()
	h := newTestHandler(true)

	req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Languages(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Languages map[string]string `json:"languages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "English", resp.Languages["en"])
	assert.Equal(t, "Hindi", resp.Languages["hi"])
}

func TestSuggestions(t *testing.T) {
	e := echo.New()
	h := newTestHandler(true)

	req := httptest.NewRequest(http.MethodGet, "/api/suggestions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Suggestions(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Suggestions)
}

func TestHealth(t *testing.T) {
	e := echo.New()
	h := newTestHandler(true)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"initialized":true`)
}

func TestRoot(t *testing.T) {
	e := echo.New()
	h := newTestHandler(true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Root(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"running"`)
}

func TestTranscribe(t *testing.T) {
	e := echo.New()
	h := newTestHandler(true)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", "voice.webm")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), 2048))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Transcribe(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Tell me about Alice.", resp.Text)
}

func TestTranscribe_MissingFile(t *testing.T) {
	e := echo.New()
	h := newTestHandler(true)

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Transcribe(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranscribe_NotConfigured(t *testing.T) {
	e := echo.New()
	retriever := &fakeRetriever{ready: true}
	h := NewHandler(engine.New(retriever, nil), retriever)

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Transcribe(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
