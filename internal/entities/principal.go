package entities

type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleSystem Role = "system"
)

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID string
	Role   Role
}

// SystemPrincipal is used by trusted internal consumers (e.g. the callback topic).
var SystemPrincipal = Principal{UserID: "system", Role: RoleSystem}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) Privileged() bool {
	return p.Role == RoleAdmin || p.Role == RoleSystem
}
