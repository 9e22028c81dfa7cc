// control/configfile.go
// Author: momentics <momentics@gmail.com>
//
// YAML configuration file loading into the ConfigStore.

package control

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML document of scalar tunables and merges it into the
// store, firing reload listeners once.
func (cs *ConfigStore) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("control: read config %s: %w", path, err)
	}
	return cs.LoadYAML(raw)
}

// LoadYAML merges a YAML document into the store. A successful merge fires
// the store's own listeners and then the process-wide reload hooks, so
// components that watch neither the store nor a specific key still observe
// configuration changes.
func (cs *ConfigStore) LoadYAML(raw []byte) error {
	values := make(map[string]any)
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return fmt.Errorf("control: parse config: %w", err)
	}
	cs.SetConfig(values)
	TriggerReload()
	return nil
}
