// Package config loads settings for the labels tools from a YAML file, a .env file and the
// process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBucket        = "outposts-fotos"
	DefaultResultsPrefix = "results/"
	DefaultParallel      = 4
)

// ErrMissingBucket is returned when results must be stored but no bucket is configured
var ErrMissingBucket = errors.New("no results bucket configured")

// AWS holds the settings shared by the Textract and S3 clients
type AWS struct {
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// DocumentAI holds the Google Document AI processor settings
type DocumentAI struct {
	ProjectID   string `yaml:"project_id"`
	Location    string `yaml:"location"`
	ProcessorID string `yaml:"processor_id"`
}

// Config is the full tool configuration
type Config struct {
	AWS           AWS        `yaml:"aws"`
	DocumentAI    DocumentAI `yaml:"gdocai"`
	Bucket        string     `yaml:"bucket"`
	ResultsBucket string     `yaml:"results_bucket"`
	ResultsPrefix string     `yaml:"results_prefix"`
	Parallel      int        `yaml:"parallel"`
	Debug         bool       `yaml:"debug"`
}

// Load reads the YAML file at path (skipped when path is empty), then applies a .env file
// from the working directory if present, then environment overrides, then defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	cfg.applyEnv()
	cfg.applyDefaults()

	return cfg, nil
}

// RequireResultsBucket returns ErrMissingBucket when no results bucket is set
func (c *Config) RequireResultsBucket() error {
	if c.ResultsBucket == "" {
		return ErrMissingBucket
	}
	return nil
}

func (c *Config) applyEnv() {
	c.AWS.Region = envString("AWS_REGION", c.AWS.Region)
	c.AWS.Endpoint = envString("AWS_ENDPOINT", c.AWS.Endpoint)
	c.AWS.AccessKey = envString("AWS_ACCESS_KEY", c.AWS.AccessKey)
	c.AWS.SecretKey = envString("AWS_SECRET_KEY", c.AWS.SecretKey)
	c.Bucket = envString("LABELS_BUCKET", c.Bucket)
	c.ResultsBucket = envString("LABELS_RESULTS_BUCKET", c.ResultsBucket)
	c.ResultsPrefix = envString("LABELS_RESULTS_PREFIX", c.ResultsPrefix)
	c.Parallel = envInt("LABELS_PARALLEL", c.Parallel)
	c.Debug = envBool("LABELS_DEBUG", c.Debug)
}

func (c *Config) applyDefaults() {
	if c.Bucket == "" {
		c.Bucket = DefaultBucket
	}
	if c.ResultsPrefix == "" {
		c.ResultsPrefix = DefaultResultsPrefix
	}
	if !strings.HasSuffix(c.ResultsPrefix, "/") {
		c.ResultsPrefix += "/"
	}
	if c.Parallel <= 0 {
		c.Parallel = DefaultParallel
	}
}

func envString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}
