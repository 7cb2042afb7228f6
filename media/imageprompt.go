package media

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxImagePromptLen caps the prompt submitted to the image endpoint.
const MaxImagePromptLen = 800

// sceneKeyword maps a lowercase keyword to a descriptive scene phrase.
// Matches are collected in table order, so the slice order is significant.
type sceneKeyword struct {
	keyword string
	scene   string
}

var sceneKeywords = []sceneKeyword{
	{"alice", "Alice, young Victorian girl in blue dress with white apron"},
	{"wonderland", "magical Wonderland with strange creatures and talking animals"},
	{"rabbit", "white rabbit wearing waistcoat with pocket watch, running"},
	{"queen", "Queen of Hearts with playing card soldiers, red and black"},
	{"hatter", "Mad Hatter at tea party with oversized hat, teacups everywhere"},
	{"cheshire", "Cheshire Cat with wide grin, purple stripes, disappearing"},
	{"caterpillar", "blue caterpillar smoking hookah on giant mushroom"},
	{"gulliver", "Gulliver the explorer in 18th century clothing"},
	{"lilliput", "tiny Lilliputian people, miniature buildings, giant human"},
	{"giant", "enormous giants, Brobdingnagians, tiny human"},
	{"travel", "sailing ship, ocean voyage, exotic lands"},
	{"tea party", "mad tea party with March Hare, Dormouse, chaotic table setting"},
	{"arabian", "Arabian Nights, middle eastern palace, ornate decorations"},
	{"aladdin", "Aladdin with magic lamp, genie, flying carpet"},
	{"sinbad", "Sinbad the sailor, ship, sea monsters"},
	{"scheherazade", "Scheherazade storytelling, sultan, Arabian palace"},
	{"genie", "magical genie emerging from lamp, smoke, wishes"},
}

const sceneStyle = "vintage storybook illustration, detailed ink drawing with watercolor, whimsical fantasy art, Arthur Rackham style, classic children's literature, intricate details, magical atmosphere"

// genericScene is used when no keyword matches.
const genericScene = "classic storybook scene"

// ScenePrompt builds the image generation prompt from the question and
// answer. All matching keywords are collected in table order, the first three
// matches form the scene, and the fixed style suffix is appended. Input with
// no letters or digits at all is unusable and yields ""; the caller falls
// back to an answer-derived prompt.
func ScenePrompt(question, answer string) string {
	combined := strings.ToLower(question + " " + answer)
	if !strings.ContainsFunc(combined, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) {
		return ""
	}

	var found []string
	for _, kw := range sceneKeywords {
		if strings.Contains(combined, kw.keyword) {
			found = append(found, kw.scene)
		}
	}

	scene := genericScene
	if len(found) > 0 {
		if len(found) > 3 {
			found = found[:3]
		}
		scene = strings.Join(found, ", ")
	}

	return truncate(scene+", "+sceneStyle, MaxImagePromptLen)
}

// AnswerPrompt is the degraded fallback when scene synthesis is unusable:
// an illustration prompt derived from the answer text alone.
func AnswerPrompt(answer string) string {
	clean := CleanNarration(answer)
	sentences := strings.SplitN(clean, ".", 3)
	if len(sentences) > 2 {
		sentences = sentences[:2]
	}
	context := strings.TrimSpace(strings.Join(sentences, "."))

	prompt := fmt.Sprintf("A beautiful whimsical storybook illustration of: %s. Art style: fantasy storybook painting, vibrant colors, magical atmosphere, detailed characters, fairy tale aesthetic, classic literature illustration", context)
	return truncate(prompt, MaxImagePromptLen)
}

// truncate cuts on rune boundaries; the budgets are character counts and a
// byte cut would corrupt multibyte text.
func truncate(s string, max int) string {
	if r := []rune(s); len(r) > max {
		return string(r[:max])
	}
	return s
}
