// Package s3 provides an S3-compatible storage backend for hosted document
// files.
package s3

import "fmt"

// Config contains configuration for the S3 storage adapter.
type Config struct {
	Endpoint  string `hcl:"endpoint,optional"` // Custom endpoint (MinIO etc); empty for AWS
	Region    string `hcl:"region"`
	Bucket    string `hcl:"bucket"`
	Prefix    string `hcl:"prefix,optional"` // Optional key prefix, e.g. "ppk/"
	AccessKey string `hcl:"access_key,optional"`
	SecretKey string `hcl:"secret_key,optional"`

	// PublicURL is the base URL files are served from (CDN or bucket
	// website). Defaults to the bucket's virtual-hosted URL.
	PublicURL string `hcl:"public_url,optional"`

	// RetryMaxAttempts bounds upload retries (default: 3).
	RetryMaxAttempts int `hcl:"retry_max_attempts,optional"`
}

// Validate validates the S3 configuration.
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	return nil
}

// SetDefaults sets default values for optional configuration fields.
func (c *Config) SetDefaults() {
	if c.RetryMaxAttempts == 0 {
		c.RetryMaxAttempts = 3
	}
	if c.PublicURL == "" {
		c.PublicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
	}
}
