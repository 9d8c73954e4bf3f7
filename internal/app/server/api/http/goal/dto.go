package goal

import "mindfulsteps/internal/domain/goal"

type saveInput struct {
	Body goal.StepGoal
}
