package config

const (
	// MaxNodeNameLength is the maximum length for folder and file names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxNodeNameLength = 255

	// MaxURLLength is the maximum length for blob-store URLs.
	MaxURLLength = 2048

	// MaxTreeDepth bounds every upward walk (breadcrumbs, cycle checks).
	// Real trees here are shallow (department -> course -> user nesting),
	// so exceeding this indicates malformed data rather than deep usage.
	MaxTreeDepth = 32
)
