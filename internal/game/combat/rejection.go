package combat

import (
	"errors"
	"fmt"
)

// Reason is a stable code describing why an action was refused.
type Reason string

const (
	ReasonInsufficientMana Reason = "insufficient_mana"
	ReasonActorDefeated    Reason = "actor_defeated"
	ReasonTargetDefeated   Reason = "target_defeated"
	ReasonBattleOver       Reason = "battle_over"
	ReasonUnknownSkill     Reason = "unknown_skill"
	ReasonSkillNotKnown    Reason = "skill_not_known"
	ReasonSkillLocked      Reason = "skill_locked"
	ReasonUnknownWeapon    Reason = "unknown_weapon"
	ReasonWeaponLocked     Reason = "weapon_locked"
	ReasonUnknownAction    Reason = "unknown_action"
)

// Rejection is returned when an action is refused before any state changes.
// It is an expected gameplay outcome, not a fault.
type Rejection struct {
	Reason Reason
	Detail string
}

func (r *Rejection) Error() string {
	if r.Detail == "" {
		return "action rejected: " + string(r.Reason)
	}
	return fmt.Sprintf("action rejected: %s: %s", r.Reason, r.Detail)
}

// Reject builds a Rejection with a formatted detail message.
func Reject(reason Reason, format string, args ...any) *Rejection {
	return &Rejection{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// AsRejection unwraps err into a Rejection if it is one.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// IsRejected reports whether err is a Rejection with the given reason.
func IsRejected(err error, reason Reason) bool {
	r, ok := AsRejection(err)
	return ok && r.Reason == reason
}
