package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"exportlens/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8090,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Upload: structures.UploadConfig{
			MaxFileSize:   20 * 1024 * 1024,
			MaxFiles:      10,
			TempDir:       "/tmp/exportlens",
			SweepInterval: 10 * time.Minute,
			StaleAfter:    30 * time.Minute,
		},
		Session: structures.SessionConfig{
			Size: 64,
			TTL:  time.Hour,
		},
		Aggregation: structures.AggregationConfig{TopN: 10, PreviewRows: 10},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_Invalid(t *testing.T) {
	tests := map[string]func(c *structures.Config){
		"empty host":          func(c *structures.Config) { c.WebServer.Host = "" },
		"zero port":           func(c *structures.Config) { c.WebServer.Port = 0 },
		"empty log level":     func(c *structures.Config) { c.Logger.Level = "" },
		"invalid log level":   func(c *structures.Config) { c.Logger.Level = "verbose" },
		"zero max file size":  func(c *structures.Config) { c.Upload.MaxFileSize = 0 },
		"zero max files":      func(c *structures.Config) { c.Upload.MaxFiles = 0 },
		"missing temp dir":    func(c *structures.Config) { c.Upload.TempDir = "" },
		"zero session size":   func(c *structures.Config) { c.Session.Size = 0 },
		"zero session ttl":    func(c *structures.Config) { c.Session.TTL = 0 },
		"negative top n":      func(c *structures.Config) { c.Aggregation.TopN = -1 },
		"negative preview":    func(c *structures.Config) { c.Aggregation.PreviewRows = -5 },
		"zero sweep interval": func(c *structures.Config) { c.Upload.SweepInterval = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := validConfig()
			mutate(c)
			assert.Error(t, NewCnfValidator(c).Validate())
		})
	}
}
