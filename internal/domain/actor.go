package domain

// ActorType differentiates the four principal kinds tokens can name.
type ActorType string

const (
	ActorTypeAdmin    ActorType = "ADMIN"
	ActorTypeSubadmin ActorType = "SUBADMIN"
	ActorTypeEmployee ActorType = "EMPLOYEE"
	ActorTypeUser     ActorType = "USER"
)

// Role is the authorization-facing role carried in tokens. Admins carry the
// fixed "admin" role; the remaining actors derive their role from the actor type.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSubadmin Role = "subadmin"
	RoleEmployee Role = "employee"
	RoleUser     Role = "user"
)

// RoleFor maps an actor type to its role.
func RoleFor(actor ActorType) Role {
	switch actor {
	case ActorTypeAdmin:
		return RoleAdmin
	case ActorTypeSubadmin:
		return RoleSubadmin
	case ActorTypeEmployee:
		return RoleEmployee
	default:
		return RoleUser
	}
}
