package config

import "time"

// Default configuration constants
const (
	DefaultHost            = "0.0.0.0"
	DefaultHTTPPort        = 8080
	DefaultEnvironment     = "development"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultDatabaseDriver = "sqlite3"
	DefaultDatabaseDSN    = "./data/voicemail.db"

	DefaultStorageBackend = "local"
	DefaultAudioDir       = "./public/storage/audio"
	DefaultMinioBucket    = "voicemail-audio"

	DefaultTranscriptionProvider = "whisper_cpp"
	DefaultWhisperLanguage       = "en"
	DefaultOpenAIWhisperModel    = "whisper-1"

	DefaultExtractionProvider = "openai"
	DefaultOpenAIChatModel    = "gpt-4o-mini"
	DefaultGeminiModel        = "gemini-2.0-flash"
	DefaultMaxTokens          = 300
	DefaultCostPer1KTokens    = 0.02

	DefaultMaxConcurrent = 4
	DefaultStageTimeout  = 5 * time.Minute

	DefaultEventsChannel = "vmw:clip-events"

	DefaultLogLevel = "info"
)
