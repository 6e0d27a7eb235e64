package models

import "strings"

// Role is the access level of the caller. Guest means unauthenticated.
type Role int

const (
	RoleGuest Role = iota
	RoleClient
	RoleManager
	RoleAdmin
)

// Capability is an action a role may or may not perform.
type Capability int

const (
	CapBrowseProducts Capability = iota
	CapFilterProducts
	CapViewOrders
	CapManageProducts
	CapManageOrders
)

var roleCodes = map[Role]string{
	RoleGuest:   "guest",
	RoleClient:  "client",
	RoleManager: "manager",
	RoleAdmin:   "admin",
}

var capabilities = map[Capability][]Role{
	CapBrowseProducts: {RoleGuest, RoleClient, RoleManager, RoleAdmin},
	CapFilterProducts: {RoleManager, RoleAdmin},
	CapViewOrders:     {RoleManager, RoleAdmin},
	CapManageProducts: {RoleAdmin},
	CapManageOrders:   {RoleAdmin},
}

// ParseRole maps a stored role code to a Role. An empty code is a guest;
// any other unknown code is treated as a client.
func ParseRole(code string) Role {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return RoleGuest
	}
	for role, c := range roleCodes {
		if c == code {
			return role
		}
	}
	return RoleClient
}

// Code returns the storage code of the role.
func (r Role) Code() string {
	if c, ok := roleCodes[r]; ok {
		return c
	}
	return roleCodes[RoleGuest]
}

func (r Role) String() string {
	return r.Code()
}

// Can reports whether the role holds the capability.
func (r Role) Can(c Capability) bool {
	for _, allowed := range capabilities[c] {
		if allowed == r {
			return true
		}
	}
	return false
}

func (c Capability) String() string {
	switch c {
	case CapBrowseProducts:
		return "browse_products"
	case CapFilterProducts:
		return "filter_products"
	case CapViewOrders:
		return "view_orders"
	case CapManageProducts:
		return "manage_products"
	case CapManageOrders:
		return "manage_orders"
	default:
		return "unknown"
	}
}
