package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string              `mapstructure:"port"`
	AllowedOrigin       string              `mapstructure:"allowed_origin"`
	CacheDir            string              `mapstructure:"cache_dir"`
	ChunkSize           int                 `mapstructure:"chunk_size"`
	ChunkOverlap        int                 `mapstructure:"chunk_overlap"`
	RetrievalLimit      int                 `mapstructure:"retrieval_limit"`
	AIProvider          string              `mapstructure:"ai_provider"`
	AIEndpoint          string              `mapstructure:"ai_endpoint"`
	Model               string              `mapstructure:"model"`
	Temperature         float32             `mapstructure:"temperature"`
	OpenAIAPIKey        string              `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeys       string              `mapstructure:"GEMINI_API_KEYS"`
	RedisURL            string              `mapstructure:"REDIS_URL"`
	MongoURI            string              `mapstructure:"MONGODB_URI"`
	WeaviateStoreConfig WeaviateStoreConfig `mapstructure:"weaviate_store_config"`
}

type WeaviateStoreConfig struct {
	Host         string       `mapstructure:"host"`
	APIKey       string       `mapstructure:"WEAVIATE_APIKEY"` // Changed to match env var
	Text2Vec     string       `mapstructure:"text2vec"`
	ModuleConfig ModuleConfig `mapstructure:"module_config"`
}

type ModuleConfig map[string]interface{}

// GeminiKeys splits the comma-separated GEMINI_API_KEYS value.
func (c *Config) GeminiKeys() []string {
	var keys []string
	for _, k := range strings.Split(c.GeminiAPIKeys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEYS")
	v.BindEnv("WEAVIATE_APIKEY")
	v.BindEnv("REDIS_URL")
	v.BindEnv("MONGODB_URI")

	v.SetDefault("port", "8000")
	v.SetDefault("allowed_origin", "*")
	v.SetDefault("cache_dir", ".cache")
	v.SetDefault("chunk_size", 1000)
	v.SetDefault("chunk_overlap", 200)
	v.SetDefault("retrieval_limit", 5)
	v.SetDefault("ai_provider", "gemini")
	v.SetDefault("model", "gemini-2.0-flash")
	v.SetDefault("temperature", 0.1)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
