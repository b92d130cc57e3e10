package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"facilitator/adapters/myredis"
	"facilitator/service"

	"gopkg.in/yaml.v3"
)

const (
	defaultListenHost = "0.0.0.0"
	defaultListenPort = 9002
	defaultLogFile    = "facilitator.log"
)

// Env variable names.
const (
	envConfigPath     = "CONFIG_PATH"
	envStoreBackend   = "STORE_BACKEND"
	envRedisAddr      = "REDIS_ADDR"
	envRedisKeyPrefix = "REDIS_KEY_PREFIX"
	envMetricsAddr    = "METRICS_ADDR"
)

// Store backends.
const (
	storeBackendMemory = "memory"
	storeBackendRedis  = "redis"
)

// FacilitatorConfig holds the resolved process configuration.
// LogFile empty means log to stdout.
type FacilitatorConfig struct {
	ListenHost   string
	ListenPort   int
	LogFile      string
	Daemonize    bool
	StoreBackend string
	Redis        myredis.RedisConfig
	MetricsAddr  string
}

// ListenAddr is the address the broker listener binds to.
func (c *FacilitatorConfig) ListenAddr() string {
	return net.JoinHostPort(c.ListenHost, strconv.Itoa(c.ListenPort))
}

// cliOptions are the values of the command line flags.
// LogFileSet reports whether --log was given explicitly.
type cliOptions struct {
	Debug       bool
	LogFile     string
	LogFileSet  bool
	ConfigPath  string
	MetricsAddr string
}

// yamlConfig is the root struct for YAML unmarshalling. Absent keys keep the defaults.
type yamlConfig struct {
	Listen struct {
		Host *string `yaml:"host"`
		Port *int    `yaml:"port"`
	} `yaml:"listen"`
	LogFile   *string `yaml:"log_file"`
	Daemonize *bool   `yaml:"daemonize"`
	Store     struct {
		Backend *string             `yaml:"backend"`
		Redis   myredis.RedisConfig `yaml:"redis"`
	} `yaml:"store"`
	MetricsAddr *string `yaml:"metrics_addr"`
}

func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds the configuration from defaults, the optional YAML file (--config or
// CONFIG_PATH), environment variables (STORE_BACKEND, REDIS_ADDR, REDIS_KEY_PREFIX, METRICS_ADDR)
// and finally the command line, later sources winning. args are the positional [HOST] [PORT].
func LoadConfig(args []string, opts cliOptions) (*FacilitatorConfig, error) {
	config := &FacilitatorConfig{
		ListenHost:   defaultListenHost,
		ListenPort:   defaultListenPort,
		LogFile:      defaultLogFile,
		Daemonize:    true,
		StoreBackend: storeBackendMemory,
		Redis: myredis.RedisConfig{
			KeyPrefix: myredis.DefaultKeyPrefix,
		},
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = strings.TrimSpace(os.Getenv(envConfigPath))
	}
	if configPath != "" {
		if !filepath.IsAbs(configPath) {
			abs, err := filepath.Abs(configPath)
			if err != nil {
				return nil, err
			}
			configPath = abs
		}
		raw, err := loadYAMLConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
		applyYAMLConfig(config, raw)
	}

	if v := os.Getenv(envStoreBackend); v != "" {
		config.StoreBackend = v
	}
	if v := os.Getenv(envRedisAddr); v != "" {
		config.Redis.Addr = v
	}
	if v := os.Getenv(envRedisKeyPrefix); v != "" {
		config.Redis.KeyPrefix = v
	}
	if v := os.Getenv(envMetricsAddr); v != "" {
		config.MetricsAddr = v
	}

	if opts.MetricsAddr != "" {
		config.MetricsAddr = opts.MetricsAddr
	}
	if opts.Debug {
		config.Daemonize = false
		config.LogFile = ""
	}
	if opts.LogFileSet {
		config.LogFile = opts.LogFile
	}

	if err := applyListenArgs(config, args); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func applyYAMLConfig(config *FacilitatorConfig, raw *yamlConfig) {
	config.ListenHost = service.ValueOr(raw.Listen.Host, config.ListenHost)
	config.ListenPort = service.ValueOr(raw.Listen.Port, config.ListenPort)
	config.LogFile = service.ValueOr(raw.LogFile, config.LogFile)
	config.Daemonize = service.ValueOr(raw.Daemonize, config.Daemonize)
	config.StoreBackend = service.ValueOr(raw.Store.Backend, config.StoreBackend)
	config.MetricsAddr = service.ValueOr(raw.MetricsAddr, config.MetricsAddr)
	if raw.Store.Redis.Addr != "" {
		config.Redis.Addr = raw.Store.Redis.Addr
	}
	if raw.Store.Redis.KeyPrefix != "" {
		config.Redis.KeyPrefix = raw.Store.Redis.KeyPrefix
	}
}

// applyListenArgs interprets the positional arguments: none keeps the configured address,
// a single all-digit token is a port, any other single token is a host, two tokens are
// host and port.
func applyListenArgs(config *FacilitatorConfig, args []string) error {
	switch len(args) {
	case 0:
		return nil
	case 1:
		if isDigits(args[0]) {
			return setListenPort(config, args[0])
		}
		config.ListenHost = args[0]
		return nil
	case 2:
		config.ListenHost = args[0]
		return setListenPort(config, args[1])
	default:
		return fmt.Errorf("at most two arguments [HOST] [PORT] are accepted, got %d", len(args))
	}
}

func setListenPort(config *FacilitatorConfig, s string) error {
	port, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid PORT %q: %w", s, err)
	}
	config.ListenPort = port
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateConfig(config *FacilitatorConfig) error {
	if config.ListenPort <= 0 || config.ListenPort > 65535 {
		return fmt.Errorf("listen port must be 1-65535, got %d", config.ListenPort)
	}
	switch config.StoreBackend {
	case storeBackendMemory:
	case storeBackendRedis:
		if config.Redis.Addr == "" {
			return fmt.Errorf("%s is required when %s=%s", envRedisAddr, envStoreBackend, storeBackendRedis)
		}
	default:
		return fmt.Errorf("unknown %s %q (want %s or %s)", envStoreBackend, config.StoreBackend, storeBackendMemory, storeBackendRedis)
	}
	return nil
}
