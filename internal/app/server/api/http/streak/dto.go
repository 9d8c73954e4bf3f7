package streak

import "mindfulsteps/internal/domain/streak"

type updateInput struct {
	Body streak.UpdateRequest
}
