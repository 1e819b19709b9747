package authz

import "go-sweetshop/internal/model"

// Capability is a named permission checked before a service operation.
type Capability string

const (
	CapabilityBuy     Capability = "sweet:buy"
	CapabilityRestock Capability = "sweet:restock"
	CapabilityManage  Capability = "sweet:manage"
)

// Allow is a pure role -> capability decision. It performs no I/O so it can
// run before any locking or store access and fail fast.
func Allow(role string, capability Capability) bool {
	switch capability {
	case CapabilityBuy:
		return role == model.RoleUser || role == model.RoleAdmin
	case CapabilityRestock, CapabilityManage:
		return role == model.RoleAdmin
	default:
		return false
	}
}
