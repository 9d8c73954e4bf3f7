package walklog

import "context"

type Repository interface {
	List(ctx context.Context, owner string) ([]WalkLog, error)
	Save(ctx context.Context, owner string, log WalkLog) (WalkLog, error)
	Delete(ctx context.Context, owner, id string) error
}
