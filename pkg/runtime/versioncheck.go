package runtime

import (
	"fmt"

	version "github.com/hashicorp/go-version"

	"github.com/vessel-labs/vessel/pkg/condition"
	"github.com/vessel-labs/vessel/pkg/env"
	"github.com/vessel-labs/vessel/pkg/event"
	"github.com/vessel-labs/vessel/pkg/lifecycle"
	"github.com/vessel-labs/vessel/pkg/log"
	"github.com/vessel-labs/vessel/pkg/order"
	"github.com/vessel-labs/vessel/pkg/registry"
)

// validateModuleVersions checks that all module versions are compatible.
// Returns an error if any module version is below its minimum compatible
// version.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"condition": {condition.Version, condition.MinCompatibleVersion},
		"order":     {order.Version, order.MinCompatibleVersion},
		"lifecycle": {lifecycle.Version, lifecycle.MinCompatibleVersion},
		"event":     {event.Version, event.MinCompatibleVersion},
		"registry":  {registry.Version, registry.MinCompatibleVersion},
		"env":       {env.Version, env.MinCompatibleVersion},
		"log":       {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		current, err := version.NewVersion(m.version)
		if err != nil {
			return fmt.Errorf("runtime: module %s has malformed version %q: %w", name, m.version, err)
		}
		min, err := version.NewVersion(m.minVersion)
		if err != nil {
			return fmt.Errorf("runtime: module %s has malformed minimum version %q: %w", name, m.minVersion, err)
		}
		if current.LessThan(min) {
			return fmt.Errorf("runtime: module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}
	return nil
}
