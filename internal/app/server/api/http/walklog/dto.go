package walklog

import "mindfulsteps/internal/domain/walklog"

type saveInput struct {
	Body walklog.WalkLog
}

type deleteInput struct {
	ID string `path:"id" example:"4b1f0c9e-3a52-4d7a-9a53-0d6f7e3c1b2a" doc:"ID прогулки"`
}
