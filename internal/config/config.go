package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr       string
	DBPath           string
	CaptionBackend   string
	OllamaHost       string
	OllamaModel      string
	ClaudeAPIKey     string
	ClaudeModel      string
	GeminiAPIKey     string
	GeminiModel      string
	ArchiveBackend   string
	ArchivePath      string
	S3Bucket         string
	S3Region         string
	S3Endpoint       string
	S3PathStyle      bool
	BootstrapSamples bool
	LogLevel         string
	LogFormat        string
	LogFile          string
}

func Load() *Config {
	return &Config{
		ListenAddr:       getEnv("LISTEN_ADDR", ":8080"),
		DBPath:           getEnv("DB_PATH", "/data/fieldlog.db"),
		CaptionBackend:   getEnv("CAPTION_BACKEND", "none"),
		OllamaHost:       getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:      getEnv("OLLAMA_MODEL", "moondream"),
		ClaudeAPIKey:     getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:      getEnv("CLAUDE_MODEL", "claude-sonnet-4-5"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		ArchiveBackend:   getEnv("ARCHIVE_BACKEND", "local"),
		ArchivePath:      getEnv("ARCHIVE_LOCAL_PATH", "/data/reports"),
		S3Bucket:         getEnv("ARCHIVE_S3_BUCKET", ""),
		S3Region:         getEnv("ARCHIVE_S3_REGION", "us-east-1"),
		S3Endpoint:       getEnv("ARCHIVE_S3_ENDPOINT", ""),
		S3PathStyle:      getBool("ARCHIVE_S3_PATH_STYLE", false),
		BootstrapSamples: getBool("BOOTSTRAP_SAMPLES", true),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		LogFile:          getEnv("LOG_FILE", ""),
	}
}

// LoadDotEnv reads KEY=VALUE pairs from the given files (".env" when none
// are given) into the process environment. Variables already set win, and
// missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Validate checks that the selected backends have what they need.
func (c *Config) Validate() error {
	switch c.CaptionBackend {
	case "none", "ollama":
	case "claude":
		if c.ClaudeAPIKey == "" {
			return fmt.Errorf("CLAUDE_API_KEY is required for the claude caption backend")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini caption backend")
		}
	default:
		return fmt.Errorf("unknown CAPTION_BACKEND %q", c.CaptionBackend)
	}

	switch c.ArchiveBackend {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("ARCHIVE_S3_BUCKET is required for the s3 archive backend")
		}
	default:
		return fmt.Errorf("unknown ARCHIVE_BACKEND %q", c.ArchiveBackend)
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
