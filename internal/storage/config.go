package storage

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// WithDefaults fills the bucket name when it is unset.
func (c MinIOConfig) WithDefaults() MinIOConfig {
	if c.Bucket == "" {
		c.Bucket = "fruitstore"
	}
	return c
}
