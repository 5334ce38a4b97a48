package application

import "github.com/bnema/slotbot/internal/domain"

type RequestKind string

const (
	RequestSignUp         RequestKind = "signup"
	RequestLeave          RequestKind = "leave"
	RequestBatchSignUp    RequestKind = "signup_batch"
	RequestBatchLeave     RequestKind = "leave_batch"
	RequestCreateEvent    RequestKind = "event_create"
	RequestEditEvent      RequestKind = "event_edit"
	RequestSetManagerRole RequestKind = "role_set"
	RequestGrantPrivilege RequestKind = "role_grant"
)

func (k RequestKind) Valid() bool {
	switch k {
	case RequestSignUp, RequestLeave, RequestBatchSignUp, RequestBatchLeave,
		RequestCreateEvent, RequestEditEvent, RequestSetManagerRole, RequestGrantPrivilege:
		return true
	default:
		return false
	}
}

func (k RequestKind) Privileged() bool {
	switch k {
	case RequestCreateEvent, RequestEditEvent:
		return true
	default:
		return false
	}
}

func (k RequestKind) AdminOnly() bool {
	return k == RequestSetManagerRole || k == RequestGrantPrivilege
}

func (k RequestKind) opKind() domain.OpKind {
	switch k {
	case RequestLeave, RequestBatchLeave:
		return domain.OpLeave
	default:
		return domain.OpJoin
	}
}

// Request is one inbound actor interaction. Slot is a zero-based index.
type Request struct {
	Kind     RequestKind
	Actor    domain.Actor
	Document domain.DocumentID
	Slot     int

	Event  domain.EventSpec
	Text   string
	RoleID string
	Target domain.ActorID
}
