package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported LLM providers.
const (
	ProviderArk    = "ark"
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
)

const (
	DefaultOpenAIModel = "gpt-4o"
	DefaultGroqModel   = "llama-3.1-8b-instant"
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
)

// ErrUnsupportedProvider is returned when LLM_PROVIDER names an unknown backend.
var ErrUnsupportedProvider = errors.New("unsupported llm provider")

// Config 聚合整个服务的配置项。
type Config struct {
	Server   ServerConfig
	Insights InsightsConfig
	LLM      LLMConfig
	Log      LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	insights, err := loadInsightsConfig()
	if err != nil {
		return nil, err
	}

	llm, err := loadLLMConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Insights: insights, LLM: llm, Log: loadLogConfig()}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
	// StaticDir, when set, serves index.html from disk instead of the embedded page.
	StaticDir string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	staticDir := strings.TrimSpace(os.Getenv("STATIC_DIR"))

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port, StaticDir: staticDir}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, StaticDir: staticDir}, nil
}

// InsightsConfig 描述上游 insights 服务。
type InsightsConfig struct {
	UpstreamURL string
	Timeout     time.Duration
}

// Enabled reports whether an upstream insights service was configured.
func (c InsightsConfig) Enabled() bool {
	return c.UpstreamURL != ""
}

func loadInsightsConfig() (InsightsConfig, error) {
	raw := strings.TrimSpace(os.Getenv("INSIGHTS_UPSTREAM_URL"))
	if raw != "" {
		u, err := url.Parse(raw)
		if err != nil {
			return InsightsConfig{}, fmt.Errorf("invalid INSIGHTS_UPSTREAM_URL value %q: %w", raw, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return InsightsConfig{}, fmt.Errorf("invalid INSIGHTS_UPSTREAM_URL value %q: scheme must be http or https", raw)
		}
	}

	timeout, err := parseDurationEnv("INSIGHTS_UPSTREAM_TIMEOUT", 60*time.Second)
	if err != nil {
		return InsightsConfig{}, err
	}

	return InsightsConfig{UpstreamURL: raw, Timeout: timeout}, nil
}

// LLMConfig 描述大模型相关配置。
type LLMConfig struct {
	Provider string

	// Ark
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int

	// OpenAI compatible (openai, groq)
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GroqAPIKey    string
	ModelName     string
}

// Enabled 表示所选 provider 的必需密钥是否齐全。
func (c LLMConfig) Enabled() bool {
	switch c.Provider {
	case ProviderArk:
		return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
	case ProviderOpenAI:
		return c.OpenAIAPIKey != ""
	case ProviderGroq:
		return c.GroqAPIKey != ""
	default:
		return false
	}
}

// CompatModel returns the model name used with an OpenAI-compatible provider.
func (c LLMConfig) CompatModel() string {
	if c.ModelName != "" {
		return c.ModelName
	}
	if c.Provider == ProviderGroq {
		return DefaultGroqModel
	}
	return DefaultOpenAIModel
}

func loadLLMConfig() (LLMConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return LLMConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return LLMConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return LLMConfig{}, err
	}

	cfg := LLMConfig{
		APIKey:        strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:     strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:     strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:         strings.TrimSpace(os.Getenv("Model")),
		BaseURL:       getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:        getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:   temperature,
		TopP:          topP,
		MaxTokens:     maxTokens,
		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		GroqAPIKey:    strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
		ModelName:     strings.TrimSpace(os.Getenv("LLM_MODEL")),
	}

	provider, err := resolveProvider(strings.TrimSpace(os.Getenv("LLM_PROVIDER")), cfg)
	if err != nil {
		return LLMConfig{}, err
	}
	cfg.Provider = provider

	if cfg.Provider == ProviderGroq && cfg.OpenAIBaseURL == "" {
		cfg.OpenAIBaseURL = DefaultGroqBaseURL
	}

	return cfg, nil
}

// resolveProvider normalizes LLM_PROVIDER. An empty value picks whichever
// provider has credentials, preferring Ark, and may resolve to "".
func resolveProvider(raw string, cfg LLMConfig) (string, error) {
	switch strings.ToLower(raw) {
	case "":
		cfg.Provider = ProviderArk
		if cfg.Enabled() {
			return ProviderArk, nil
		}
		if cfg.OpenAIAPIKey != "" {
			return ProviderOpenAI, nil
		}
		return "", nil
	case ProviderArk:
		return ProviderArk, nil
	case ProviderOpenAI, "gpt":
		return ProviderOpenAI, nil
	case ProviderGroq:
		return ProviderGroq, nil
	default:
		return "", fmt.Errorf("invalid LLM_PROVIDER value %q: %w", raw, ErrUnsupportedProvider)
	}
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level string
	File  string
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level: getEnvOrDefault("LOG_LEVEL", "info"),
		File:  strings.TrimSpace(os.Getenv("LOG_FILE")),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
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
