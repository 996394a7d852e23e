// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Download defaults - format, sink and quality behaviour of the get command.
const (
	DownloadFormat           = "download.format"
	DownloadOutput           = "download.output"
	DownloadRememberQuality  = "download.remember_quality"
	DownloadAllowQualityDrop = "download.allow_quality_drop"
)

// Batch inputs - naming and fan-out of multi-item downloads.
const (
	BatchFilenameFormat = "batch.filename_format"
	BatchMaxItems       = "batch.max_items"
	BatchConcurrency    = "batch.concurrency"
)

// Assets - extra files attached to every batch.
const (
	AssetsDefault = "assets.default"
)

// Provider API endpoints.
const (
	APIBaseURL     = "api.base_url"
	APIPageBaseURL = "api.page_base_url"
)

// Network transport.
const (
	NetworkTLSFingerprint = "network.tls_fingerprint"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
	IconsVariant    = "icons.variant"
)
