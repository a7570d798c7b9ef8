package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, database connection,
// the model provider, document storage, the fill pipeline, background workers
// and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default level, e.g. "info"
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8000" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"2m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response.
		// The synchronous fill route runs the whole pipeline, so keep it generous.
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// FillTimeout replaces RequestTimeout on the synchronous fill routes
		FillTimeout time.Duration `env:"HTTP_FILL_TIMEOUT" env-default:"10m" yaml:"fillTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxUploadBytes limits the body of upload requests
		MaxUploadBytes int64 `env:"HTTP_MAX_UPLOAD_BYTES" env-default:"209715200" yaml:"maxUploadBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// CORSOrigins lists allowed browser origins, comma separated; empty allows any origin
		CORSOrigins []string `env:"HTTP_CORS_ORIGINS" env-separator:"," yaml:"corsOrigins"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"hsdt" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// JWT holds PEM encoded RSA keys. Authentication is disabled when PublicKey is empty.
	JWT struct {
		PublicKey  string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
		// Issuer is stamped on issued tokens and, when set, required on incoming ones
		Issuer string `env:"JWT_ISSUER" env-default:"hsdt" yaml:"issuer"`
	} `yaml:"jwt"`

	// OpenAI configures the model provider
	OpenAI struct {
		APIKey  string `env:"OPENAI_API_KEY" yaml:"apiKey"`
		BaseURL string `env:"OPENAI_BASE_URL" yaml:"baseURL"`
		Model   string `env:"OPENAI_MODEL" env-default:"gpt-4o" yaml:"model"`
		// Timeout bounds a single completion request
		Timeout    time.Duration `env:"OPENAI_TIMEOUT" env-default:"3m" yaml:"timeout"`
		MaxRetries int           `env:"OPENAI_MAX_RETRIES" env-default:"2" yaml:"maxRetries"`
		// RequestsPerSecond and Burst configure the limiter shared by every fill in the process
		RequestsPerSecond float64 `env:"OPENAI_REQUESTS_PER_SECOND" env-default:"2" yaml:"requestsPerSecond"`
		Burst             int     `env:"OPENAI_BURST" env-default:"4" yaml:"burst"`
	} `yaml:"openai"`

	// Redis configures the model response cache. The cache is disabled when URL is empty.
	Redis struct {
		URL      string        `env:"REDIS_URL" yaml:"url"`
		CacheTTL time.Duration `env:"REDIS_CACHE_TTL" env-default:"24h" yaml:"cacheTTL"`
	} `yaml:"redis"`

	// Storage configures where documents live on disk
	Storage struct {
		// BlobDir keeps uploads, outputs and artifacts of asynchronous fills
		BlobDir string `env:"STORAGE_BLOB_DIR" env-default:"data/blobs" yaml:"blobDir"`
		// WorkspaceDir holds the temporary folders a pipeline run works in
		WorkspaceDir string `env:"STORAGE_WORKSPACE_DIR" env-default:"data/work" yaml:"workspaceDir"`
	} `yaml:"storage"`

	Templates struct {
		// Dir holds the templates and the premade procedure step documents
		Dir string `env:"TEMPLATES_DIR" env-default:"templates" yaml:"dir"`
	} `yaml:"templates"`

	Prompts struct {
		// Path is an optional TOML file overriding the built-in prompts
		Path string `env:"PROMPTS_PATH" yaml:"path"`
	} `yaml:"prompts"`

	Pipeline struct {
		// Concurrency bounds extractions and model calls within one fill
		Concurrency int `env:"PIPELINE_CONCURRENCY" env-default:"4" yaml:"concurrency"`
		// StepsFallback extracts the procedure section when no premade step document matches
		StepsFallback bool `env:"PIPELINE_STEPS_FALLBACK" env-default:"false" yaml:"stepsFallback"`
		// KeepArtifacts stores the intermediate text, model output and fragments of every step
		KeepArtifacts bool `env:"PIPELINE_KEEP_ARTIFACTS" env-default:"false" yaml:"keepArtifacts"`
		// PDFToTextPath enables the poppler reader when set, e.g. "pdftotext"
		PDFToTextPath string `env:"PIPELINE_PDFTOTEXT_PATH" yaml:"pdfToTextPath"`
	} `yaml:"pipeline"`

	Worker struct {
		// MaxWorkers is the number of fills processed concurrently
		MaxWorkers int `env:"WORKER_MAX_WORKERS" env-default:"4" yaml:"maxWorkers"`
		// MaxAttempts is the number of pipeline runs before a fill is marked failed
		MaxAttempts int `env:"WORKER_MAX_ATTEMPTS" env-default:"3" yaml:"maxAttempts"`
		// JobTimeout bounds a single pipeline run
		JobTimeout time.Duration `env:"WORKER_JOB_TIMEOUT" env-default:"15m" yaml:"jobTimeout"`
	} `yaml:"worker"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"30s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}

// LoadEnv fills a Config from the environment and defaults only.
func LoadEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read environment: %w", err)
	}

	return &cfg, nil
}

// Validate reports the settings every command that fills documents needs.
func (c *Config) Validate() error {
	var errs []error
	if c.OpenAI.APIKey == "" {
		errs = append(errs, errors.New("OPENAI_API_KEY is not set"))
	}
	if c.Templates.Dir == "" {
		errs = append(errs, errors.New("templates directory is not set"))
	}
	if c.Pipeline.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("pipeline concurrency must be positive, got %d", c.Pipeline.Concurrency))
	}
	if c.Worker.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("worker max attempts must be positive, got %d", c.Worker.MaxAttempts))
	}

	return errors.Join(errs...)
}
