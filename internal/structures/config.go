package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type UploadConfig struct {
	MaxFileSize   int64         `yaml:"maxFileSize" validate:"required|min:1"`
	MaxFiles      int           `yaml:"maxFiles" validate:"required|min:1"`
	Stage         bool          `yaml:"stage"`
	TempDir       string        `yaml:"tempDir" validate:"required|unixPath"`
	SweepInterval time.Duration `yaml:"sweepInterval" validate:"required|min:1"`
	StaleAfter    time.Duration `yaml:"staleAfter" validate:"required|min:1"`
}

type SessionConfig struct {
	Size int           `yaml:"size" validate:"required|min:1"`
	TTL  time.Duration `yaml:"ttl" validate:"required|min:1"`
}

type AggregationConfig struct {
	TopN        int `yaml:"topN"`
	PreviewRows int `yaml:"previewRows"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server            `yaml:"webServer"`
	Logger      LoggerConfig      `yaml:"logger"`
	Upload      UploadConfig      `yaml:"upload"`
	Session     SessionConfig     `yaml:"session"`
	Aggregation AggregationConfig `yaml:"aggregation"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}
