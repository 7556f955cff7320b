package models

import "fmt"

// SetupReaction is the payload cached while a setup prompt awaits its emoji
type SetupReaction struct {
	RoleID string `json:"role_id"`
	User   *User  `json:"user"`
}

// CacheKey func
func (sr *SetupReaction) CacheKey(base, messageID string) string {
	return fmt.Sprintf("%s:%s", base, messageID)
}
