package interp

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// RunToHalt steps s until STOP, a fault, or limit steps have executed. It
// returns the number of steps executed, the STOP included. A limit of zero
// or less means no limit.
func RunToHalt(s *State, tr Tracer, limit int) (int, error) {
	steps := 0
	for limit <= 0 || steps < limit {
		res, inst, err := Step(s, tr)
		if err != nil {
			log.Debug().Int("step", steps+1).Err(err).Msg("RunToHalt: fault")
			return steps, err
		}
		steps++
		if res == HaltStep {
			log.Debug().Int("steps", steps).Str("halt", inst.String()).Msg("RunToHalt: halted")
			return steps, nil
		}
	}
	return steps, fmt.Errorf("after %d steps: %w", steps, ErrStepLimit)
}
