package config_test

import (
	"testing"
	"time"

	cfg "github.com/mkoval24/printflow/config"
)

// TestLoadWithPrefix_Defaults — проверка значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	c, err := cfg.LoadWithPrefix("PRINT_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" {
		t.Fatalf("HTTP.Addr: want :8080, got %q", c.HTTP.Addr)
	}
	if c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP.GinMode: want debug, got %q", c.HTTP.GinMode)
	}

	// Pipeline: окно по умолчанию 3 дня
	if c.Pipeline.LookbackDays != 3 {
		t.Fatalf("Pipeline.LookbackDays: want 3, got %d", c.Pipeline.LookbackDays)
	}
	if c.Pipeline.HealthTimeout != 5*time.Second {
		t.Fatalf("Pipeline.HealthTimeout: want 5s, got %v", c.Pipeline.HealthTimeout)
	}

	// Cache: TTL уровней 300s / 1800s
	if c.Cache.MemoryTTL != 300*time.Second {
		t.Fatalf("Cache.MemoryTTL: want 300s, got %v", c.Cache.MemoryTTL)
	}
	if c.Cache.FileTTL != 1800*time.Second {
		t.Fatalf("Cache.FileTTL: want 1800s, got %v", c.Cache.FileTTL)
	}

	// Retry: 3 попытки / 1s / x2.0
	if c.Retry.MaxAttempts != 3 || c.Retry.InitialDelay != time.Second || c.Retry.Multiplier != 2.0 {
		t.Fatalf("Retry defaults wrong: %+v", c.Retry)
	}

	// Baselinker
	if c.Baselinker.Timeout != 30*time.Second {
		t.Fatalf("Baselinker.Timeout: want 30s, got %v", c.Baselinker.Timeout)
	}
	if len(c.Baselinker.ExcludeNames) != 1 || c.Baselinker.ExcludeNames[0] != "Skarpety" {
		t.Fatalf("Baselinker.ExcludeNames default wrong: %v", c.Baselinker.ExcludeNames)
	}

	// Kafka отключена по умолчанию
	if c.Kafka.Enabled {
		t.Fatal("Kafka.Enabled: want false")
	}

	// Tracing отключён по умолчанию
	if c.Tracing.Enabled {
		t.Fatal("Tracing.Enabled: want false")
	}
}

// TestLoadWithPrefix_Overrides — переменные окружения перекрывают дефолты.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	t.Setenv("PRINT_TEST_OVR_PIPELINE_LOOKBACK_DAYS", "7")
	t.Setenv("PRINT_TEST_OVR_CACHE_MEMORY_TTL", "30s")
	t.Setenv("PRINT_TEST_OVR_KAFKA_BROKERS", "b1:9092,b2:9092")

	c, err := cfg.LoadWithPrefix("PRINT_TEST_OVR")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}
	if c.Pipeline.LookbackDays != 7 {
		t.Fatalf("LookbackDays: want 7, got %d", c.Pipeline.LookbackDays)
	}
	if c.Cache.MemoryTTL != 30*time.Second {
		t.Fatalf("MemoryTTL: want 30s, got %v", c.Cache.MemoryTTL)
	}
	if len(c.Kafka.Brokers) != 2 || c.Kafka.Brokers[1] != "b2:9092" {
		t.Fatalf("Kafka.Brokers: want 2 brokers, got %v", c.Kafka.Brokers)
	}
}
