package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Load reads .env if present. Real environment variables win over file
// values, so a missing file is not an error.
func Load() {
	_ = godotenv.Load()
}

func GetOpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// StorageBackend selects the conversation store: file (default), bolt, or
// dynamo.
func StorageBackend() string {
	if backend := os.Getenv("OPENAI_IMAGES_STORE"); backend != "" {
		return backend
	}
	return "file"
}

// home is the app-scoped state directory, ~/.openai-images-mcp by default.
func home() string {
	if dir := os.Getenv("OPENAI_IMAGES_HOME"); dir != "" {
		return dir
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".openai-images-mcp"
	}
	return filepath.Join(userHome, ".openai-images-mcp")
}

func StorageDir() string {
	return filepath.Join(home(), "conversations")
}

func BoltPath() string {
	return filepath.Join(home(), "conversations.db")
}

// DownloadsDir is where generated images land.
func DownloadsDir() string {
	if dir := os.Getenv("OPENAI_IMAGES_DOWNLOADS"); dir != "" {
		return dir
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "Downloads"
	}
	return filepath.Join(userHome, "Downloads")
}

func DynamoEndpoint() string {
	if endpoint := os.Getenv("DYNAMO_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

func DynamoRegion() string {
	if region := os.Getenv("DYNAMO_REGION"); region != "" {
		return region
	}
	return "us-east-1"
}

func DynamoTable() string {
	if table := os.Getenv("DYNAMO_TABLE"); table != "" {
		return table
	}
	return "Conversations"
}

func Port() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

func LogLevel() string {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return level
	}
	return "info"
}
