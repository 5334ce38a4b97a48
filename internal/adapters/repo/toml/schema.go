package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int            `toml:"version"`
	Settings settingsSchema `toml:"settings"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported settings schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type settingsSchema struct {
	ManagerRoleID    string   `toml:"manager_role_id,omitempty"`
	PrivilegedActors []string `toml:"privileged_actors,omitempty"`
	UpdatedAt        string   `toml:"updated_at,omitempty"`
}
