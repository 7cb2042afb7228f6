package media

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestScenePrompt_CollectsMatchesInTableOrder(t *testing.T) {
	prompt := ScenePrompt("What happened at the tea party?", "The Hatter poured tea while Alice watched the rabbit.")

	// "alice" precedes "rabbit" and "hatter" in the table regardless of
	// where the words appear in the text.
	aliceIdx := strings.Index(prompt, "Alice, young Victorian girl")
	rabbitIdx := strings.Index(prompt, "white rabbit wearing waistcoat")
	hatterIdx := strings.Index(prompt, "Mad Hatter at tea party")
	assert.Greater(t, aliceIdx, -1)
	assert.Greater(t, rabbitIdx, aliceIdx)
	assert.Greater(t, hatterIdx, rabbitIdx)
}

func TestScenePrompt_CapsAtThreeScenes(t *testing.T) {
	prompt := ScenePrompt("alice wonderland rabbit queen hatter", "")
	assert.Contains(t, prompt, "Alice, young Victorian girl")
	assert.Contains(t, prompt, "magical Wonderland")
	assert.Contains(t, prompt, "white rabbit")
	assert.NotContains(t, prompt, "Queen of Hearts", "only the first three matches are used")
}

func TestScenePrompt_GenericPlaceholderWhenNoMatch(t *testing.T) {
	prompt := ScenePrompt("What is the weather like?", "It rains.")
	assert.Contains(t, prompt, "classic storybook scene")
}

func TestScenePrompt_AppendsStyleAndTruncates(t *testing.T) {
	prompt := ScenePrompt("alice", "wonderland")
	assert.Contains(t, prompt, "Arthur Rackham style")
	assert.LessOrEqual(t, len(prompt), MaxImagePromptLen)

	long := ScenePrompt(strings.Repeat("alice wonderland rabbit ", 100), strings.Repeat("x", 2000))
	assert.LessOrEqual(t, len(long), MaxImagePromptLen)
}

func TestScenePrompt_CaseInsensitive(t *testing.T) {
	prompt := ScenePrompt("Tell me about ALICE", "")
	assert.Contains(t, prompt, "Alice, young Victorian girl")
}

func TestScenePrompt_EmptyWhenNoUsableText(t *testing.T) {
	assert.Equal(t, "", ScenePrompt("🎉✨", "🤚"))
	assert.Equal(t, "", ScenePrompt("", ""))
	assert.Equal(t, "", ScenePrompt("...", "!!!"))
}

func TestTruncate_CutsOnRuneBoundaries(t *testing.T) {
	out := truncate(strings.Repeat("क", 600), MaxNarrationLen)
	assert.True(t, utf8.ValidString(out))
	assert.Len(t, []rune(out), MaxNarrationLen)

	// ASCII behaves as before.
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "ab", truncate("ab", 3))
}

func TestAnswerPrompt_UsesFirstTwoSentences(t *testing.T) {
	prompt := AnswerPrompt("First sentence. Second sentence. Third sentence never appears.")
	assert.Contains(t, prompt, "First sentence")
	assert.Contains(t, prompt, "Second sentence")
	assert.NotContains(t, prompt, "Third sentence")
	assert.LessOrEqual(t, len(prompt), MaxImagePromptLen)
}

func TestCleanNarration(t *testing.T) {
	assert.Equal(t, "Hello, world! It's fine.", CleanNarration("Hello, world! 🎉✨ It's fine.📚"))
	assert.Equal(t, "", strings.TrimSpace(CleanNarration("🎉✨📚")))
	// Non-Latin scripts survive cleaning.
	assert.Contains(t, CleanNarration("कहानी सुनो! ✨"), "कहानी")
	assert.Contains(t, CleanNarration("¡Qué historia! 🤚"), "historia")
}
