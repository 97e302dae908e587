package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"exportlens/internal/structures"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8090)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("upload.maxFileSize", 20*1024*1024)
	v.SetDefault("upload.maxFiles", 10)
	v.SetDefault("upload.stage", false)
	v.SetDefault("upload.sweepInterval", 10*time.Minute)
	v.SetDefault("upload.staleAfter", 30*time.Minute)
	v.SetDefault("session.size", 64)
	v.SetDefault("session.ttl", time.Hour)
	v.SetDefault("aggregation.topN", 10)
	v.SetDefault("aggregation.previewRows", 10)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "EXPORTLENS_LOG_LEVEL")
	v.BindEnv("webServer.port", "EXPORTLENS_PORT")
	v.BindEnv("upload.stage", "EXPORTLENS_STAGE_UPLOADS")
	v.BindEnv("upload.tempDir", "EXPORTLENS_TEMP_DIR")
	v.BindEnv("session.size", "EXPORTLENS_SESSION_SIZE")
	v.BindEnv("metrics.enabled", "EXPORTLENS_METRICS_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ExportLens"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
