package policy

// ScopePolicy holds the provisioning defaults for one scope kind.
type ScopePolicy struct {
	// RootName is the display name given to the provisioned system root.
	RootName string `yaml:"root_name"`

	// AllowUploads is the default upload policy for the system root:
	// "only_me" or "anyone".
	AllowUploads string `yaml:"allow_uploads"`
}

// CachePolicy configures the optional listing cache.
type CachePolicy struct {
	ListingTTLSeconds int `yaml:"listing_ttl_seconds"`
}

// Policies is the root of the embedded YAML policy file.
type Policies struct {
	Scopes map[string]ScopePolicy `yaml:"scopes"`
	Cache  CachePolicy            `yaml:"cache"`
}
