package combat

import (
	"errors"
	"fmt"

	"github.com/udisondev/rpgbattle/internal/data"
	"github.com/udisondev/rpgbattle/internal/model"
)

// ValidateAttack checks that both sides can take part in an attack.
// It returns a Rejection and never mutates state.
func ValidateAttack(attacker, target *model.Entity) error {
	if attacker.IsDefeated() {
		return Reject(ReasonActorDefeated, "%s is defeated", attacker)
	}
	if target.IsDefeated() {
		return Reject(ReasonTargetDefeated, "%s is already defeated", target)
	}
	return nil
}

// ValidateContent compiles every weapon on-hit hook and enemy policy in c,
// so bad keys or parameters surface at startup rather than mid-battle.
func ValidateContent(c *data.Content) error {
	var errs []error
	for _, w := range c.Weapons() {
		if _, err := NewHook(w.OnHit, w.Params); err != nil {
			errs = append(errs, fmt.Errorf("weapon %q: %w", w.ID, err))
		}
	}
	for _, e := range c.Enemies() {
		if _, err := NewHook(e.Policy, e.Params); err != nil {
			errs = append(errs, fmt.Errorf("enemy %q: %w", e.ID, err))
		}
	}
	return errors.Join(errs...)
}
