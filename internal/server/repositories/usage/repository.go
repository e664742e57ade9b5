package usage

import "context"

type Repository interface {
	// Consume increments the (user, day) counter when it is below limit.
	// allowed is false when the counter already sits at the limit; in that
	// case the stored row is left unchanged.
	Consume(ctx context.Context, userID, day string, limit int) (count int, allowed bool, err error)
	// Count returns the counter for (user, day), 0 when there is no row.
	Count(ctx context.Context, userID, day string) (int, error)
}
