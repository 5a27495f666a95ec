package config

import (
	"errors"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STATIC_DIR", "INSIGHTS_UPSTREAM_URL", "INSIGHTS_UPSTREAM_TIMEOUT",
		"LLM_PROVIDER", "LLM_MODEL", "ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY", "Model",
		"ARK_TEMPERATURE", "ARK_TOP_P", "ARK_MAX_TOKENS", "OPENAI_API_KEY", "OPENAI_BASE_URL",
		"GROQ_API_KEY", "LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Insights.Enabled() {
		t.Fatal("expected upstream disabled")
	}
	if cfg.Insights.Timeout != 60*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Insights.Timeout)
	}
	if cfg.LLM.Provider != "" || cfg.LLM.Enabled() {
		t.Fatalf("expected llm disabled, got provider %q", cfg.LLM.Provider)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected info log level, got %s", cfg.Log.Level)
	}
}

func TestLoadPortWithHost(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %s", cfg.Server.Addr)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "80 80")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid PORT")
	}
}

func TestLoadUpstream(t *testing.T) {
	clearEnv(t)
	t.Setenv("INSIGHTS_UPSTREAM_URL", "http://analysis:8000/insights")
	t.Setenv("INSIGHTS_UPSTREAM_TIMEOUT", "15s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if !cfg.Insights.Enabled() {
		t.Fatal("expected upstream enabled")
	}
	if cfg.Insights.Timeout != 15*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.Insights.Timeout)
	}
}

func TestLoadUpstreamRejectsScheme(t *testing.T) {
	clearEnv(t)
	t.Setenv("INSIGHTS_UPSTREAM_URL", "ftp://analysis/insights")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-http upstream")
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("INSIGHTS_UPSTREAM_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid timeout")
	}
}

func TestLoadProviderSelection(t *testing.T) {
	cases := []struct {
		name     string
		env      map[string]string
		provider string
		enabled  bool
		model    string
	}{
		{
			name:     "ark inferred from credentials",
			env:      map[string]string{"ARK_API_KEY": "k", "Model": "ep-1"},
			provider: ProviderArk,
			enabled:  true,
		},
		{
			name:     "openai inferred from key",
			env:      map[string]string{"OPENAI_API_KEY": "sk"},
			provider: ProviderOpenAI,
			enabled:  true,
			model:    DefaultOpenAIModel,
		},
		{
			name:     "gpt alias",
			env:      map[string]string{"LLM_PROVIDER": "GPT", "OPENAI_API_KEY": "sk"},
			provider: ProviderOpenAI,
			enabled:  true,
			model:    DefaultOpenAIModel,
		},
		{
			name:     "groq without key",
			env:      map[string]string{"LLM_PROVIDER": "groq"},
			provider: ProviderGroq,
			enabled:  false,
			model:    DefaultGroqModel,
		},
		{
			name:     "model override",
			env:      map[string]string{"LLM_PROVIDER": "groq", "GROQ_API_KEY": "g", "LLM_MODEL": "mixtral"},
			provider: ProviderGroq,
			enabled:  true,
			model:    "mixtral",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load err: %v", err)
			}
			if cfg.LLM.Provider != tc.provider {
				t.Fatalf("expected provider %q, got %q", tc.provider, cfg.LLM.Provider)
			}
			if cfg.LLM.Enabled() != tc.enabled {
				t.Fatalf("expected enabled=%v", tc.enabled)
			}
			if tc.model != "" && cfg.LLM.CompatModel() != tc.model {
				t.Fatalf("expected model %q, got %q", tc.model, cfg.LLM.CompatModel())
			}
		})
	}
}

func TestLoadGroqDefaultBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "groq")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.LLM.OpenAIBaseURL != DefaultGroqBaseURL {
		t.Fatalf("unexpected base url %q", cfg.LLM.OpenAIBaseURL)
	}
}

func TestLoadUnsupportedProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "claude")

	_, err := Load()
	if !errors.Is(err, ErrUnsupportedProvider) {
		t.Fatalf("expected ErrUnsupportedProvider, got %v", err)
	}
}

func TestLoadInvalidTemperature(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARK_TEMPERATURE", "hot")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid ARK_TEMPERATURE")
	}
}
