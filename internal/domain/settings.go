package domain

import (
	"strings"
	"time"
)

type Settings struct {
	ManagerRoleID    string
	PrivilegedActors []ActorID
	UpdatedAt        time.Time
}

func (s *Settings) NormalizePrivilegedActors() {
	if s == nil {
		return
	}

	actors := make([]ActorID, 0, len(s.PrivilegedActors))
	seen := make(map[ActorID]struct{}, len(s.PrivilegedActors))
	for _, actor := range s.PrivilegedActors {
		trimmed := ActorID(strings.TrimSpace(string(actor)))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		actors = append(actors, trimmed)
	}

	s.PrivilegedActors = actors
}

func (s Settings) IsPrivilegedActor(id ActorID) bool {
	for _, actor := range s.PrivilegedActors {
		if actor == id {
			return true
		}
	}

	return false
}
