package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SchedulerConfig holds spaced-repetition scheduling parameters.
type SchedulerConfig struct {
	// LadderRaw is the checkpoint ladder as "checkpoint:thresholdDays" pairs,
	// comma-separated, ascending by checkpoint.
	LadderRaw            string `yaml:"ladder"                  env:"SCHED_LADDER"                 env-default:"0:1,1:1,2:5,7:7,14:16"`
	NewItemsPerSelection int    `yaml:"new_items_per_selection" env:"SCHED_NEW_ITEMS_PER_SELECTION" env-default:"3"`
	// ReferenceTimezone is the fixed zone used for the AGAIN-today selection
	// tier. All other day comparisons use the server's local zone.
	ReferenceTimezone string `yaml:"reference_timezone" env:"SCHED_REFERENCE_TIMEZONE" env-default:"Europe/Kyiv"`
	DefaultModality   string `yaml:"default_modality"   env:"SCHED_DEFAULT_MODALITY"   env-default:"TRANSLATE_SENTENCE"`

	// Ladder is parsed from LadderRaw during validation.
	Ladder []LadderRung `yaml:"-" env:"-"`
}

// LadderRung is one parsed entry of SchedulerConfig.LadderRaw.
type LadderRung struct {
	Checkpoint    int
	ThresholdDays int
}

// OpenAIConfig holds settings for the exercise generation and TTS provider.
type OpenAIConfig struct {
	APIKey        string        `yaml:"api_key"        env:"OPENAI_API_KEY"        env-required:"true"`
	BaseURL       string        `yaml:"base_url"       env:"OPENAI_BASE_URL"       env-default:"https://api.openai.com/v1"`
	Model         string        `yaml:"model"          env:"OPENAI_MODEL"          env-default:"gpt-4.1-mini"`
	SpeechModel   string        `yaml:"speech_model"   env:"OPENAI_SPEECH_MODEL"   env-default:"gpt-4o-mini-tts"`
	SpeechVoice   string        `yaml:"speech_voice"   env:"OPENAI_SPEECH_VOICE"   env-default:"marin"`
	Timeout       time.Duration `yaml:"timeout"        env:"OPENAI_TIMEOUT"        env-default:"60s"`
	SpeechTimeout time.Duration `yaml:"speech_timeout" env:"OPENAI_SPEECH_TIMEOUT" env-default:"120s"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
