package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port" validate:"gte=1,lte=65535"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=8"`
}

// SLATierConfig holds the deadline durations for a single priority tier.
// The values are deliberately not defaulted in code: the per-priority table
// is an operator decision and must come from configuration.
type SLATierConfig struct {
	ResponseMinutes   int `mapstructure:"response_minutes" yaml:"response_minutes"`
	ResolutionMinutes int `mapstructure:"resolution_minutes" yaml:"resolution_minutes"`
}

func (t SLATierConfig) ResponseDuration() time.Duration {
	return time.Duration(t.ResponseMinutes) * time.Minute
}

func (t SLATierConfig) ResolutionDuration() time.Duration {
	return time.Duration(t.ResolutionMinutes) * time.Minute
}

// SLAConfig maps priority names (low/medium/high/critical/urgent) to tiers.
// PolicyFile optionally points at a standalone YAML table that overrides the
// inline tiers.
type SLAConfig struct {
	PolicyFile string                   `mapstructure:"policy_file"`
	Tiers      map[string]SLATierConfig `mapstructure:"tiers"`
}

// SettlementConfig controls invoice payment SLA used by the overdue marker.
type SettlementConfig struct {
	PaymentDueDays  int `mapstructure:"payment_due_days" validate:"gte=1"`
	OverdueScanMins int `mapstructure:"overdue_scan_minutes" validate:"gte=1"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logger     LoggerConfig     `mapstructure:"logger"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	SLA        SLAConfig        `mapstructure:"sla"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	Timezone   string           `mapstructure:"timezone"`
}
