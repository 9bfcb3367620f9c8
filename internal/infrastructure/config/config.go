package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	vo "github.com/fieldserv-inc/fieldserv/internal/domain/ticket/valueobjects"
	sharedConfig "github.com/fieldserv-inc/fieldserv/internal/shared/config"
	"github.com/fieldserv-inc/fieldserv/internal/shared/utils"
)

var (
	appConfig   *sharedConfig.Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string, configPath string) (*sharedConfig.Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath("../configs")
		viper.AddConfigPath("../../configs")
	}

	viper.SetEnvPrefix("FIELDSERV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config sharedConfig.Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := utils.ValidateStruct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *sharedConfig.Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// BuildSLAPolicy turns the configured tier table into a domain SLA policy.
// A standalone policy file takes precedence over inline tiers; with neither
// present, tickets get no deadlines.
func BuildSLAPolicy(cfg *sharedConfig.SLAConfig) (ticket.SLAPolicy, error) {
	tiers := cfg.Tiers

	if cfg.PolicyFile != "" {
		fileTiers, err := loadPolicyFile(cfg.PolicyFile)
		if err != nil {
			return nil, err
		}
		tiers = fileTiers
	}

	if len(tiers) == 0 {
		return ticket.NoSLAPolicy{}, nil
	}

	table := make(map[vo.Priority]ticket.SLATier, len(tiers))
	for name, tier := range tiers {
		priority, err := vo.NewPriority(strings.ToLower(name))
		if err != nil {
			return nil, fmt.Errorf("invalid SLA tier priority %q: %w", name, err)
		}
		table[priority] = ticket.SLATier{
			Response:   tier.ResponseDuration(),
			Resolution: tier.ResolutionDuration(),
		}
	}

	return ticket.NewTableSLAPolicy(table), nil
}

func loadPolicyFile(path string) (map[string]sharedConfig.SLATierConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read SLA policy file: %w", err)
	}

	var doc struct {
		Tiers map[string]sharedConfig.SLATierConfig `yaml:"tiers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse SLA policy file: %w", err)
	}

	return doc.Tiers, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "fieldserv_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("auth.jwt_secret", "change-me-in-production")

	viper.SetDefault("settlement.payment_due_days", 30)
	viper.SetDefault("settlement.overdue_scan_minutes", 60)

	viper.SetDefault("timezone", "UTC")
}
