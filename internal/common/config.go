package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	AWS       AWSConfig
	Ingest    IngestConfig
	Scheduler SchedulerConfig
	Notify    NotifyConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string
}

// AWSConfig holds the S3/Textract/SES settings.
type AWSConfig struct {
	Region string
	Bucket string
}

// IngestConfig bounds the detection poll loop.
type IngestConfig struct {
	PollInterval time.Duration
	MaxPolls     int
}

// SchedulerConfig holds the assignment sweep cadence and windows.
type SchedulerConfig struct {
	ArchiveEvery time.Duration
	ArchiveAfter time.Duration
	PurgeEvery   time.Duration
	PurgeAfter   time.Duration
}

// NotifyConfig holds notification sender configuration.
type NotifyConfig struct {
	FromAddress string
	Workers     int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", ""),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Server: ServerConfig{
			GRPCAddr: getEnv("GRPC_ADDR", ":8080"),
		},
		AWS: AWSConfig{
			Region: getEnv("AWS_REGION", ""),
			Bucket: getEnv("S3_BUCKET_NAME", ""),
		},
		Ingest: IngestConfig{
			PollInterval: getEnvAsDuration("DETECT_POLL_INTERVAL", 2*time.Second),
			MaxPolls:     getEnvAsInt("DETECT_MAX_POLLS", 30),
		},
		Scheduler: SchedulerConfig{
			ArchiveEvery: getEnvAsDuration("ASSIGNMENT_ARCHIVE_EVERY", time.Hour),
			ArchiveAfter: getEnvAsDuration("ASSIGNMENT_ARCHIVE_AFTER", 24*time.Hour),
			PurgeEvery:   getEnvAsDuration("ASSIGNMENT_PURGE_EVERY", 24*time.Hour),
			PurgeAfter:   getEnvAsDuration("ASSIGNMENT_PURGE_AFTER", 30*24*time.Hour),
		},
		Notify: NotifyConfig{
			FromAddress: getEnv("NOTIFY_FROM_ADDRESS", ""),
			Workers:     getEnvAsInt("NOTIFY_WORKERS", 2),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(n)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
