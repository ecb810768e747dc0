package policy

import (
	"embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"campuscloud/internal/domain/models/content"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry exposes scope provisioning defaults loaded from the embedded
// YAML policy file. It is read-only after construction.
type Registry struct {
	policies Policies
}

// NewRegistry creates a policy registry from the embedded YAML files
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/scopes.yaml")
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}

	var p Policies
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal policy file: %w", err)
	}

	for kind, sp := range p.Scopes {
		if !content.ScopeKind(kind).Valid() {
			return nil, fmt.Errorf("unknown scope kind in policy file: %s", kind)
		}
		if !content.UploadPolicy(sp.AllowUploads).Valid() {
			return nil, fmt.Errorf("invalid allow_uploads %q for scope kind %s", sp.AllowUploads, kind)
		}
		if sp.RootName == "" {
			return nil, fmt.Errorf("empty root_name for scope kind %s", kind)
		}
	}

	return &Registry{policies: p}, nil
}

// RootName returns the display name for a scope kind's system root
func (r *Registry) RootName(kind content.ScopeKind) string {
	if sp, ok := r.policies.Scopes[string(kind)]; ok {
		return sp.RootName
	}
	return "Root"
}

// DefaultUploadPolicy returns the upload policy a provisioned root starts with
func (r *Registry) DefaultUploadPolicy(kind content.ScopeKind) content.UploadPolicy {
	if sp, ok := r.policies.Scopes[string(kind)]; ok {
		return content.UploadPolicy(sp.AllowUploads)
	}
	return content.UploadOnlyMe
}

// ListingTTL returns how long cached listings stay fresh.
// Zero disables caching regardless of the Redis configuration.
func (r *Registry) ListingTTL() time.Duration {
	return time.Duration(r.policies.Cache.ListingTTLSeconds) * time.Second
}
