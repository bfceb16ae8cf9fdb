package config

import (
	"fmt"
	"strings"
)

// WithEnv applies environment variable overrides using the provided prefix.
//
// Environment variable mapping:
//
//	PORT         - Server port (default: "8080")
//	ENVIRONMENT  - Runtime environment (default: "development")
//
//	DATABASE_URL - Connection string ("memory", empty, or "postgresql://...")
//
//	STORAGE_TYPE     - "memory" or "s3"
//	S3_REGION        - AWS region
//	S3_BUCKET        - S3 bucket name
//	S3_ENDPOINT      - Custom endpoint for S3-compatible services
//	S3_ACCESS_KEY_ID / S3_SECRET_ACCESS_KEY - Static credentials
//	S3_URL_PREFIX    - Public URL prefix (CDN or static host)
//
//	FALLBACK_DIR - Local fallback directory (default: "uploads")
//	FALLBACK_URL - URL prefix the fallback files are served under
//
//	UPLOAD_WORKERS - Parallel upload pool width
func WithEnv(prefix string, lookup func(string) (string, bool)) Option {
	return func(c *ServerConfig) error {
		get := func(key string) (string, bool) {
			if prefix != "" {
				key = prefix + "_" + key
			}
			return lookup(key)
		}

		if v, ok := get("PORT"); ok && v != "" {
			c.Port = v
		}
		if v, ok := get("ENVIRONMENT"); ok && v != "" {
			c.Environment = v
		}

		if err := applyDatabaseEnv(get, c); err != nil {
			return err
		}

		if v, ok := get("STORAGE_TYPE"); ok && v != "" {
			c.StorageType = v
		}
		if v, ok := get("S3_REGION"); ok {
			c.S3.Region = v
		}
		if v, ok := get("S3_BUCKET"); ok {
			c.S3.Bucket = v
		}
		if v, ok := get("S3_ENDPOINT"); ok {
			c.S3.Endpoint = v
			c.S3.UsePathStyle = true
		}
		if v, ok := get("S3_ACCESS_KEY_ID"); ok {
			c.S3.AccessKeyID = v
		}
		if v, ok := get("S3_SECRET_ACCESS_KEY"); ok {
			c.S3.SecretAccessKey = v
		}
		if v, ok := get("S3_URL_PREFIX"); ok {
			c.S3.URLPrefix = v
		}

		if v, ok := get("FALLBACK_DIR"); ok && v != "" {
			c.FallbackDir = v
		}
		if v, ok := get("FALLBACK_URL"); ok && v != "" {
			c.FallbackURL = v
		}

		if v, ok := get("UPLOAD_WORKERS"); ok && v != "" {
			var workers int
			if _, err := fmt.Sscanf(v, "%d", &workers); err != nil || workers < 1 {
				return fmt.Errorf("invalid UPLOAD_WORKERS value: %s", v)
			}
			c.UploadWorkers = workers
		}

		return nil
	}
}

// applyDatabaseEnv applies database configuration from environment
func applyDatabaseEnv(get func(string) (string, bool), c *ServerConfig) error {
	dbURL, hasURL := get("DATABASE_URL")

	if !hasURL || dbURL == "" || dbURL == "memory" {
		// Default to memory
		c.DatabaseType = "memory"
		c.DatabaseURL = ""
		return nil
	}

	// Auto-detect database type from URL
	if strings.HasPrefix(dbURL, "postgresql://") || strings.HasPrefix(dbURL, "postgres://") {
		c.DatabaseType = "postgres"
		c.DatabaseURL = dbURL
		return nil
	}

	return fmt.Errorf("unsupported DATABASE_URL format: %s (use 'memory' or 'postgresql://...')", dbURL)
}
