package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"10s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"5s" envconfig:"GRACEFUL_TIMEOUT"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type Pipeline struct {
	LookbackDays  int           `default:"3" envconfig:"LOOKBACK_DAYS"`
	HealthTimeout time.Duration `default:"5s" envconfig:"HEALTH_TIMEOUT"`
}

type Cache struct {
	Dir             string        `default:"./cache" envconfig:"DIR"`
	MemoryTTL       time.Duration `default:"300s" envconfig:"MEMORY_TTL"`
	FileTTL         time.Duration `default:"1800s" envconfig:"FILE_TTL"`
	JanitorInterval time.Duration `default:"5m" envconfig:"JANITOR_INTERVAL"` // 0 = без фоновой уборки
}

type Retry struct {
	MaxAttempts  int           `default:"3" envconfig:"MAX_ATTEMPTS"`
	InitialDelay time.Duration `default:"1s" envconfig:"INITIAL_DELAY"`
	Multiplier   float64       `default:"2.0" envconfig:"MULTIPLIER"`
}

type Baselinker struct {
	APIURL            string        `default:"https://api.baselinker.com/connector.php" envconfig:"API_URL"`
	Token             string        `envconfig:"TOKEN"`
	SourceStatusID    string        `default:"219626" envconfig:"SOURCE_STATUS_ID"`
	ProcessedStatusID string        `envconfig:"PROCESSED_STATUS_ID"`
	Timeout           time.Duration `default:"30s" envconfig:"TIMEOUT"`
	ExcludeNames      []string      `default:"Skarpety" envconfig:"EXCLUDE_NAMES"`
}

type Storage struct {
	Endpoint  string        `default:"localhost:9000" envconfig:"ENDPOINT"`
	AccessKey string        `envconfig:"ACCESS_KEY"`
	SecretKey string        `envconfig:"SECRET_KEY"`
	UseSSL    bool          `default:"false" envconfig:"USE_SSL"`
	Bucket    string        `default:"print-files" envconfig:"BUCKET"`
	Prefix    string        `default:"" envconfig:"PREFIX"`
	LinkTTL   time.Duration `default:"168h" envconfig:"LINK_TTL"`
}

type Mail struct {
	SMTPHost       string `default:"smtp.gmail.com" envconfig:"SMTP_HOST"`
	SMTPPort       int    `default:"465" envconfig:"SMTP_PORT"`
	Username       string `envconfig:"USERNAME"`
	Password       string `envconfig:"PASSWORD"`
	From           string `envconfig:"FROM"`
	PrintRecipient string `envconfig:"PRINT_RECIPIENT"`
	AdminRecipient string `envconfig:"ADMIN_RECIPIENT"`
	ShareRecipient string `envconfig:"SHARE_RECIPIENT"` // кому выдаётся доступ к найденным файлам
}

type Kafka struct {
	Enabled     bool          `default:"false" envconfig:"ENABLED"`
	Brokers     []string      `default:"kafka:9092" envconfig:"BROKERS"`
	Topic       string        `default:"print-triggers" envconfig:"TOPIC"`
	GroupID     string        `default:"print-orchestrator" envconfig:"GROUP_ID"`
	StartOffset string        `default:"last" envconfig:"START_OFFSET"`
	RunTimeout  time.Duration `default:"2m" envconfig:"RUN_TIMEOUT"`
	RetryInit   time.Duration `default:"1s" envconfig:"RETRY_INITIAL"`
	RetryMax    time.Duration `default:"30s" envconfig:"RETRY_MAX"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"ENABLED"`
	ServiceName string  `default:"print-orchestrator" envconfig:"SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"SAMPLE_RATIO"`
}

type Config struct {
	HTTP       HTTP
	Logger     Logger
	Pipeline   Pipeline
	Cache      Cache
	Retry      Retry
	Baselinker Baselinker
	Storage    Storage
	Mail       Mail
	Kafka      Kafka
	Tracing    Tracing
}

// Load читает конфигурацию с префиксом PRINT (PRINT_HTTP_ADDR и т.д.).
func Load() (Config, error) { return LoadWithPrefix("PRINT") }

// LoadWithPrefix — то же с произвольным префиксом (для тестов).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config
	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
