package server

import (
	"os"
	"strconv"
)

// Config holds the server configuration, loaded from environment variables.
type Config struct {
	// Server settings
	Host string
	Port int

	// Text generation
	LLMProvider     string // "openai", "gemini" or "anthropic"
	OpenAIAPIKey    string
	GeminiAPIKey    string
	AnthropicAPIKey string

	// Media generation
	ImageEnabled     bool
	ImageAPIURL      string
	AudioEnabled     bool
	AudioAPIURL      string
	ElevenLabsAPIKey string
	VoiceID          string

	// Transcription
	WhisperAPIURL string
	WhisperAPIKey string

	// Storage
	StaticDir string
	CorpusDir string

	// Conversation
	MaxTurns int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables with sensible local
// development defaults.
func Load() *Config {
	return &Config{
		Host:             getEnv("API_HOST", "0.0.0.0"),
		Port:             getEnvInt("API_PORT", 8000),
		LLMProvider:      getEnv("LLM_PROVIDER", "gemini"),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		ImageEnabled:     getEnvBool("IMAGE_GENERATION_ENABLED", true),
		ImageAPIURL:      getEnv("IMAGE_API_URL", "https://image.pollinations.ai/prompt"),
		AudioEnabled:     getEnvBool("AUDIO_ENABLED", true),
		AudioAPIURL:      getEnv("AUDIO_API_URL", "https://api.elevenlabs.io/v1/text-to-speech"),
		ElevenLabsAPIKey: getEnv("ELEVENLABS_API_KEY", ""),
		VoiceID:          getEnv("ELEVENLABS_VOICE_ID", "21m00Tcm4TlvDq8ikWAM"),
		WhisperAPIURL:    getEnv("WHISPER_API_URL", ""),
		WhisperAPIKey:    getEnv("WHISPER_API_KEY", ""),
		StaticDir:        getEnv("STATIC_DIR", "static"),
		CorpusDir:        getEnv("CORPUS_DIR", "data/corpus"),
		MaxTurns:         getEnvInt("MAX_CONVERSATION_HISTORY", 10),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}
