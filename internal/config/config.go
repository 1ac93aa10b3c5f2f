package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultGeminiModel = "gemini-1.5-flash"
	defaultGroqModel   = "llama-3.3-70b-versatile"
)

// Config holds the configuration for the application.
type Config struct {
	// TextProvider selects the completion backend: "gemini" or "groq".
	TextProvider string
	GeminiAPIKey string
	GeminiModel  string
	GroqAPIKey   string
	GroqModel    string

	// DataDir holds the JSON state files; DatabasePath the sqlite file.
	DataDir      string
	DatabasePath string

	// Telegram Config (optional for the CLI, required for the bot)
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	provider := os.Getenv("STUDENTFUEL_TEXT_PROVIDER")
	if provider == "" {
		provider = "gemini"
	}
	if provider != "gemini" && provider != "groq" {
		return nil, fmt.Errorf("unknown STUDENTFUEL_TEXT_PROVIDER %q", provider)
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if provider == "gemini" && geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	groqAPIKey := os.Getenv("GROQ_API_KEY")
	if provider == "groq" && groqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
	}

	geminiModel := os.Getenv("STUDENTFUEL_GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = defaultGeminiModel
	}

	groqModel := os.Getenv("STUDENTFUEL_GROQ_MODEL")
	if groqModel == "" {
		groqModel = defaultGroqModel
	}

	dataDir := os.Getenv("STUDENTFUEL_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	dbPath := os.Getenv("STUDENTFUEL_DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "studentfuel.db")
	}

	allowedIDs, err := parseUserIDs(os.Getenv("TELEGRAM_ALLOWED_USER_IDS"))
	if err != nil {
		return nil, err
	}

	var adminID int64
	if v := os.Getenv("TELEGRAM_ADMIN_ID"); v != "" {
		adminID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_ID %q: %w", v, err)
		}
	}

	return &Config{
		TextProvider:           provider,
		GeminiAPIKey:           geminiAPIKey,
		GeminiModel:            geminiModel,
		GroqAPIKey:             groqAPIKey,
		GroqModel:              groqModel,
		DataDir:                dataDir,
		DatabasePath:           dbPath,
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
		AdminTelegramID:        adminID,
	}, nil
}

func parseUserIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
