package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// ActorID is the numeric identifier rendered inside a mention token.
type ActorID string

var actorIDPattern = regexp.MustCompile(`^[0-9]+$`)

func (id ActorID) Validate() error {
	if !actorIDPattern.MatchString(string(id)) {
		return fmt.Errorf("%w %q", ErrInvalidActor, string(id))
	}

	return nil
}

// Mention returns the token written into slot lines for this actor.
func (id ActorID) Mention() string {
	return "<@!" + string(id) + ">"
}

type Actor struct {
	ID    ActorID
	Roles []string
	Admin bool
}

func (a Actor) HasRole(roleID string) bool {
	trimmed := strings.TrimSpace(roleID)
	if trimmed == "" {
		return false
	}
	for _, role := range a.Roles {
		if strings.TrimSpace(role) == trimmed {
			return true
		}
	}

	return false
}
