package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"

	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

var DefaultKnowledgeFiles = []string{
	"vascular_health_rules.json",
	"lifestyle_rules.json",
	"sleep_rules.json",
	"pointer_lifestyle_evidence.json",
	"sprint_mind_evidence.json",
	"finger_multidomain_evidence.json",
}

// Config is everything that may differ between deployments. Fixed budgets live
// in environmentVariables.go.
type Config struct {
	Prod bool

	Provider string
	Google   ProviderConfig
	OpenAI   ProviderConfig

	Qdrant QdrantConfig

	SearchThreshold        float64
	SearchRelaxedThreshold float64

	KnowledgeDir   string
	KnowledgeFiles []string

	ChatStore     string
	SessionDir    string
	RedisAddr     string
	RedisPassword string

	ListenAddr  string
	AuthToken   string
	CORSOrigins []string
}

type ProviderConfig struct {
	APIKey             string
	ChatModel          string
	EmbeddingModel     string
	EmbeddingDimension int
}

// QdrantConfig with an empty Host selects the in-process index.
type QdrantConfig struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
}

func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{
		Prod:     getEnvAsBool("LOG_PROD", false),
		Provider: strings.ToLower(getEnv("LLM_PROVIDER", ProviderGoogle)),
		Google: ProviderConfig{
			APIKey:             getEnv("GOOGLE_API_KEY", ""),
			ChatModel:          getEnv("GOOGLE_CHAT_MODEL", GeminiModelName),
			EmbeddingModel:     getEnv("GOOGLE_EMBEDDING_MODEL", GoogleEmbeddingModel),
			EmbeddingDimension: getEnvAsInt("GOOGLE_EMBEDDING_DIMENSION", GoogleEmbeddingDimension),
		},
		OpenAI: ProviderConfig{
			APIKey:             getEnv("OPENAI_API_KEY", ""),
			ChatModel:          getEnv("OPENAI_CHAT_MODEL", OpenAIModelName),
			EmbeddingModel:     getEnv("OPENAI_EMBEDDING_MODEL", OpenAIEmbeddingModel),
			EmbeddingDimension: getEnvAsInt("OPENAI_EMBEDDING_DIMENSION", OpenAIEmbeddingDimension),
		},
		Qdrant: QdrantConfig{
			Host:       getEnv("QDRANT_HOST", ""),
			Port:       getEnvAsInt("QDRANT_PORT", QdrantGrpcPort),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			UseTLS:     getEnvAsBool("QDRANT_USE_TLS", false),
			Collection: getEnv("QDRANT_COLLECTION", DefaultCollectionName),
		},
		SearchThreshold:        getEnvAsFloat("SEARCH_THRESHOLD", SearchThreshold),
		SearchRelaxedThreshold: getEnvAsFloat("SEARCH_RELAXED_THRESHOLD", SearchRelaxedThreshold),
		KnowledgeDir:           getEnv("KNOWLEDGE_DIR", "data"),
		KnowledgeFiles:         getEnvAsList("KNOWLEDGE_FILES", DefaultKnowledgeFiles),
		ChatStore:              strings.ToLower(getEnv("CHAT_STORE", StoreFile)),
		SessionDir:             getEnv("CHAT_SESSION_DIR", "data/chat_sessions"),
		RedisAddr:              getEnv("REDIS_ADDR", RedisAddr),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		ListenAddr:             getEnv("LISTEN_ADDR", ServerListenAddr),
		AuthToken:              getEnv("AUTH_TOKEN", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Provider {
	case ProviderGoogle, ProviderOpenAI:
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.Provider))
	}
	switch c.ChatStore {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown CHAT_STORE %q", c.ChatStore))
	}
	if c.SearchThreshold < 0 || c.SearchThreshold > 1 {
		errs = append(errs, fmt.Errorf("SEARCH_THRESHOLD %v outside [0,1]", c.SearchThreshold))
	}
	if c.SearchRelaxedThreshold < 0 || c.SearchRelaxedThreshold > c.SearchThreshold {
		errs = append(errs, fmt.Errorf("SEARCH_RELAXED_THRESHOLD %v must be in [0,%v]", c.SearchRelaxedThreshold, c.SearchThreshold))
	}
	if c.Google.EmbeddingDimension <= 0 || c.OpenAI.EmbeddingDimension <= 0 {
		errs = append(errs, errors.New("embedding dimensions must be positive"))
	}
	return errors.Join(errs...)
}

// Selected returns the settings of the configured provider and of the fallback one.
func (c *Config) Selected() (primary ProviderConfig, fallback ProviderConfig) {
	if c.Provider == ProviderOpenAI {
		return c.OpenAI, c.Google
	}
	return c.Google, c.OpenAI
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
