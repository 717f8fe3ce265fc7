package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config 聚合整个服务的配置项。ProviderTimeout 限定每次检索或生成调用的时长。
type Config struct {
	Server          ServerConfig
	AI              AIConfig
	Retrieval       RetrievalConfig
	ProviderTimeout time.Duration
	Debug           bool
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig("PORT", "5000")
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	retrieval := loadRetrievalConfig()

	timeout, err := loadTimeout()
	if err != nil {
		return nil, err
	}

	debug, err := parseBoolEnv("LOG_DEBUG", false)
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Retrieval: retrieval, ProviderTimeout: timeout, Debug: debug}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig(key, defaultPort string) (ServerConfig, error) {
	origins := splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"))

	port := strings.TrimSpace(os.Getenv(key))
	if port == "" {
		port = defaultPort
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":5000" 或 "127.0.0.1:5000"。
		return ServerConfig{Addr: port, AllowedOrigins: origins}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid %s value: %q", key, port)
	}

	return ServerConfig{Addr: ":" + port, AllowedOrigins: origins}, nil
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	APIKey            string
	Model             string
	BaseURL           string
	Region            string
	SystemPrompt      string
	Temperature       *float64
	TopP              *float64
	MaxTokens         *int
	BulletInstruction bool
}

// Enabled reports whether a credential was configured under either accepted name.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credential missing, set ARK_API_KEY or LLM_API_KEY")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

// RetrievalConfig 描述 RAG 服务配置。
type RetrievalConfig struct {
	URL string
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}
	if maxTokens == nil {
		defaultMax := 300
		maxTokens = &defaultMax
	}

	bullets, err := parseBoolEnv("AI_BULLET_INSTRUCTION", true)
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:            firstEnv("ARK_API_KEY", "LLM_API_KEY"),
		Model:             getEnvOrDefault("ARK_MODEL", "doubao-1-5-lite-32k-250115"),
		BaseURL:           getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:            getEnvOrDefault("ARK_REGION", "cn-beijing"),
		SystemPrompt:      strings.TrimSpace(os.Getenv("AI_SYSTEM_PROMPT")),
		Temperature:       temperature,
		TopP:              topP,
		MaxTokens:         maxTokens,
		BulletInstruction: bullets,
	}, nil
}

func loadRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		URL: getEnvOrDefault("RAG_API_URL", "http://localhost:8000/generate"),
	}
}

func loadTimeout() (time.Duration, error) {
	seconds, err := parseOptionalIntEnv("PROVIDER_TIMEOUT_SECONDS")
	if err != nil {
		return 0, err
	}
	if seconds == nil {
		return 30 * time.Second, nil
	}
	if *seconds <= 0 {
		return 0, fmt.Errorf("invalid PROVIDER_TIMEOUT_SECONDS value %d: must be positive", *seconds)
	}
	return time.Duration(*seconds) * time.Second, nil
}

// RAGServerConfig 描述本地检索服务 (cmd/ragserver) 的配置。
type RAGServerConfig struct {
	Server     ServerConfig
	CorpusPath string
	TopN       int
	Debug      bool
}

// LoadRAGServer 从环境变量加载检索服务配置。
func LoadRAGServer() (*RAGServerConfig, error) {
	server, err := loadServerConfig("RAG_ADDR", "8000")
	if err != nil {
		return nil, err
	}

	topN := 3
	if override, err := parseOptionalIntEnv("RAG_TOP_N"); err != nil {
		return nil, err
	} else if override != nil && *override > 0 {
		topN = *override
	}

	debug, err := parseBoolEnv("LOG_DEBUG", false)
	if err != nil {
		return nil, err
	}

	return &RAGServerConfig{
		Server:     server,
		CorpusPath: strings.TrimSpace(os.Getenv("RAG_CORPUS_PATH")),
		TopN:       topN,
		Debug:      debug,
	}, nil
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
