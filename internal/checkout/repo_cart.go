package checkout

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CartRepo holds the authoritative cart mapping per account. Replace writes
// the whole mapping; there is no row-level merging, so the last writer wins
// when several devices race.
type CartRepo struct{ DB *pgxpool.Pool }

func (r *CartRepo) Get(ctx context.Context, userID string) (Cart, error) {
	rows, err := r.DB.Query(ctx, `SELECT product_id, qty FROM carts WHERE user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c := Cart{}
	for rows.Next() {
		var (
			productID string
			qty       int
		)
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, err
		}
		c[productID] = qty
	}
	return c, rows.Err()
}

func (r *CartRepo) Replace(ctx context.Context, userID string, c Cart) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE user_id=$1`, userID); err != nil {
		return err
	}
	for productID, qty := range c {
		if qty <= 0 {
			continue
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO carts(user_id, product_id, qty, updated_at)
			VALUES ($1,$2,$3,now())`,
			userID, productID, qty,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *CartRepo) Clear(ctx context.Context, userID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM carts WHERE user_id=$1`, userID)
	return err
}
