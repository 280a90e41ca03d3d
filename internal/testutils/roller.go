package testutils

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// ScriptedRoller is a dice.Roller that returns a fixed sequence of values.
// It fails the roll if the script runs out or a value does not fit the die.
type ScriptedRoller struct {
	values []int
	next   int
}

// NewScriptedRoller creates a roller that plays back values in order
func NewScriptedRoller(values ...int) *ScriptedRoller {
	return &ScriptedRoller{values: values}
}

// Roll returns the next scripted value
func (r *ScriptedRoller) Roll(size int) (int, error) {
	if r.next >= len(r.values) {
		return 0, fmt.Errorf("scripted roller exhausted after %d rolls", r.next)
	}
	v := r.values[r.next]
	r.next++
	if v < 1 || v > size {
		return 0, fmt.Errorf("scripted value %d does not fit a d%d", v, size)
	}
	return v, nil
}

// RollN returns the next count scripted values
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Rolls reports how many values have been consumed
func (r *ScriptedRoller) Rolls() int {
	return r.next
}

var _ dice.Roller = (*ScriptedRoller)(nil)
