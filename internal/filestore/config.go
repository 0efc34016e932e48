package filestore

// Provider identifies the blob storage backend.
type Provider string

const (
	ProviderMemory Provider = "memory"
	ProviderMinIO  Provider = "minio"
)

// DefaultBucket is the storage bucket that holds every blob when none is configured.
const DefaultBucket = "taskrepo-blobs"

// Config holds all settings needed to connect to a blob storage backend.
type Config struct {
	// Provider is the storage backend (e.g. ProviderMinIO).
	Provider Provider

	// Endpoint is the host:port of the storage server.
	// Example: "localhost:9000" for local MinIO.
	Endpoint string

	// AccessKey is the access key ID (MinIO / S3 style).
	AccessKey string

	// SecretKey is the secret access key.
	SecretKey string

	// UseSSL controls whether TLS is used for the connection.
	UseSSL bool

	// Region is used by region-aware backends (e.g. AWS S3).
	// Leave empty for MinIO.
	Region string

	// Bucket is the single storage bucket all blobs are written to.
	// It is created on startup when missing.
	Bucket string
}

// DefaultConfig returns a sensible local-dev config for MinIO.
func DefaultConfig(endpoint, accessKey, secretKey string) *Config {
	return &Config{
		Provider:  ProviderMinIO,
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
		Bucket:    DefaultBucket,
	}
}
