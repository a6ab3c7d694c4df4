package entity

// UserAuth is the caller identity derived from a dashboard JWT. The core
// treats it as an opaque id/role pair; it only decides agent attribution on
// agent-originated sends.
type UserAuth struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
}

// IsAgent reports whether the caller is a regular agent, whose chat list is
// restricted to assigned chats.
func (u *UserAuth) IsAgent() bool {
	return u != nil && u.Role == "agent"
}
