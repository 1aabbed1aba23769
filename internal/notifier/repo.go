package notifier

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// Record stores one confirmation per event id; replays are no-ops.
func (r *Repo) Record(ctx context.Context, eventID, orderID, recipient string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO order_notifications(event_id, order_id, recipient)
		VALUES ($1,$2,$3)
		ON CONFLICT (event_id) DO NOTHING`,
		eventID, orderID, recipient,
	)
	return err
}
