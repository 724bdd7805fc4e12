package types

// EventRoleGranted is emitted when the admin grants a role.
type EventRoleGranted struct {
	Role    string `json:"role"`
	Address string `json:"address"`
	Granter string `json:"granter"`
}

func (EventRoleGranted) EventType() string { return "guard.role_granted" }

// EventRoleRevoked is emitted when the admin revokes a role.
type EventRoleRevoked struct {
	Role    string `json:"role"`
	Address string `json:"address"`
	Revoker string `json:"revoker"`
}

func (EventRoleRevoked) EventType() string { return "guard.role_revoked" }

// EventPaused is emitted when the global pause flag is set.
type EventPaused struct {
	By string `json:"by"`
}

func (EventPaused) EventType() string { return "guard.paused" }

// EventUnpaused is emitted when the global pause flag is cleared.
type EventUnpaused struct {
	By string `json:"by"`
}

func (EventUnpaused) EventType() string { return "guard.unpaused" }
