package config

import (
	"os"
	"slices"
	"strings"
)

const EnvUploadsAllowedExtensions = "PROCURE_UPLOADS_ALLOWED_EXTENSIONS"

// UploadsConfig holds upload intake settings.
type UploadsConfig struct {
	AllowedExtensions []string `toml:"allowed_extensions"`
}

// Allowed reports whether the given filename extension (with or without a
// leading dot) is accepted for upload.
func (c *UploadsConfig) Allowed(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return slices.Contains(c.AllowedExtensions, ext)
}

// Finalize applies defaults and environment variable overrides.
func (c *UploadsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *UploadsConfig) Merge(overlay *UploadsConfig) {
	if overlay.AllowedExtensions != nil {
		c.AllowedExtensions = overlay.AllowedExtensions
	}
}

func (c *UploadsConfig) loadDefaults() {
	if len(c.AllowedExtensions) == 0 {
		c.AllowedExtensions = []string{"pdf", "xlsx", "xls", "csv", "doc", "docx"}
	}
}

func (c *UploadsConfig) loadEnv() {
	if v := os.Getenv(EnvUploadsAllowedExtensions); v != "" {
		exts := strings.Split(v, ",")
		c.AllowedExtensions = make([]string, 0, len(exts))
		for _, ext := range exts {
			if trimmed := strings.ToLower(strings.TrimSpace(ext)); trimmed != "" {
				c.AllowedExtensions = append(c.AllowedExtensions, trimmed)
			}
		}
	}
}
