package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/taleweaver/core"
)

func TestRequest_Transcript(t *testing.T) {
	req := Request{
		Instructions: "Answer the question.",
		Messages: []core.Message{
			{Role: core.RoleUser, Content: "Who is Alice?"},
			{Role: core.RoleAssistant, Content: "A curious girl."},
		},
	}

	want := "Previous conversation:\nUser: Who is Alice?\nAssistant: A curious girl.\n"
	assert.Equal(t, want, req.Transcript())
}

func TestRequest_TranscriptEmptyHistory(t *testing.T) {
	req := Request{Instructions: "Answer."}
	assert.Equal(t, "", req.Transcript())
}

func TestMockModel(t *testing.T) {
	m := NewMockModel("test")
	m.AddResponse("prompt-a", "answer-a")

	resp, err := m.Generate(context.Background(), Request{Instructions: "prompt-a"})
	require.NoError(t, err)
	assert.Equal(t, "answer-a", resp)

	resp, err = m.Generate(context.Background(), Request{Instructions: "prompt-b"})
	require.NoError(t, err)
	assert.Contains(t, resp, "prompt-b")
	require.NotNil(t, m.LastRequest())
	assert.Equal(t, "prompt-b", m.LastRequest().Instructions)

	m.FailWith(errors.New("boom"))
	_, err = m.Generate(context.Background(), Request{Instructions: "prompt-a"})
	assert.Error(t, err)

	assert.Equal(t, "mock", m.Info().Provider)
}
