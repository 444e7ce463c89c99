package permissions

import "time"

// Type classifies what a permission guards.
type Type string

const (
	TypeSystem   Type = "SYSTEM"
	TypeResource Type = "RESOURCE"
	TypeFeature  Type = "FEATURE"
)

// Valid reports whether t is a known permission type.
func (t Type) Valid() bool {
	switch t {
	case TypeSystem, TypeResource, TypeFeature:
		return true
	}
	return false
}

// Action is the operation a RESOURCE or FEATURE permission allows.
type Action string

const (
	ActionCreate  Action = "CREATE"
	ActionRead    Action = "READ"
	ActionUpdate  Action = "UPDATE"
	ActionDelete  Action = "DELETE"
	ActionExecute Action = "EXECUTE"
	ActionApprove Action = "APPROVE"
	ActionReject  Action = "REJECT"
)

// Valid reports whether a is a known action. The empty action is allowed
// because SYSTEM permissions carry none.
func (a Action) Valid() bool {
	switch a {
	case "", ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionExecute, ActionApprove, ActionReject:
		return true
	}
	return false
}

// Permission represents an atomic capability, e.g. "read user resource".
type Permission struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        Type      `json:"type"`
	Resource    string    `json:"resource,omitempty"`
	Action      Action    `json:"action,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
