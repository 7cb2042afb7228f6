package engine

// fallbackMessages are the per-language answers used when the retrieved
// context is not relevant enough. Keyed by the same codes the prompt composer
// supports; unknown codes get the English message.
var fallbackMessages = map[string]string{
	"en": "Whoa, hold on! 🤚 That's not in my storybook collection. I'm here to tell tales about Alice's Wonderland adventures and Gulliver's giant troubles - not to solve the mysteries of the universe! Ask me something from the classic stories I actually know! 📚✨",
	"es": "¡Espera, detente! 🤚 Eso no está en mi colección de cuentos. Estoy aquí para contar historias sobre las aventuras de Alicia en el país de las maravillas y los problemas gigantes de Gulliver, ¡no para resolver los misterios del universo! Pregúntame algo de los cuentos clásicos que realmente conozco! 📚✨",
	"fr": "Whoa, arrêtez! 🤚 Ce n'est pas dans ma collection de livres d'histoires. Je suis ici pour raconter des histoires sur les aventures d'Alice au pays des merveilles et les problèmes géants de Gulliver - pas pour résoudre les mystères de l'univers! Demandez-moi quelque chose des histoires classiques que je connais vraiment! 📚✨",
	"de": "Moment mal! 🤚 Das ist nicht in meiner Geschichtenbuch-Sammlung. Ich bin hier, um Geschichten über Alices Abenteuer im Wunderland und Gullivers Riesenprobleme zu erzählen - nicht um die Geheimnisse des Universums zu lösen! Frag mich etwas aus den klassischen Geschichten, die ich wirklich kenne! 📚✨",
	"hi": "रुको, ठहरो! 🤚 यह मेरी कहानियों के संग्रह में नहीं है। मैं यहाँ एलिस के अद्भुत देश के रोमांच और गुलिवर की विशाल समस्याओं की कहानियाँ सुनाने के लिए हूँ - ब्रह्मांड के रहस्यों को सुलझाने के लिए नहीं! मुझसे उन क्लासिक कहानियों के बारे में पूछें जो मैं वास्तव में जानता हूँ! 📚✨",
}

// FallbackMessage returns the off-corpus answer for the given language code,
// defaulting to English.
func FallbackMessage(language string) string {
	if msg, ok := fallbackMessages[language]; ok {
		return msg
	}
	return fallbackMessages["en"]
}
