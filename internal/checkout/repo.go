package checkout

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepo struct{ DB *pgxpool.Pool }

func (r *OrderRepo) Create(ctx context.Context, o Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders(id, user_id, guest_email, amount_cents,
		                   full_name, street, apartment, city, state, zip,
		                   status, placed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		o.ID, nullIfEmpty(o.UserID), nullIfEmpty(o.GuestEmail), o.AmountCents,
		o.Address.FullName, o.Address.Street, o.Address.Apartment,
		o.Address.City, o.Address.State, o.Address.Zip,
		string(o.Status), o.PlacedAt,
	)
	if err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, qty)
			VALUES ($1,$2,$3)`,
			o.ID, it.ProductID, it.Qty,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *OrderRepo) ByID(ctx context.Context, id string) (Order, error) {
	rows, err := r.DB.Query(ctx, selectOrders+` WHERE id=$1`, id)
	if err != nil {
		return Order{}, err
	}
	list, err := r.collect(ctx, rows)
	if err != nil {
		return Order{}, err
	}
	if len(list) == 0 {
		return Order{}, ErrOrderNotFound
	}
	return list[0], nil
}

func (r *OrderRepo) ByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, selectOrders+` WHERE user_id=$1 ORDER BY placed_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *OrderRepo) ByGuestEmail(ctx context.Context, email string) ([]Order, error) {
	// exact, case-sensitive match on the stored email
	rows, err := r.DB.Query(ctx, selectOrders+` WHERE guest_email=$1 ORDER BY placed_at DESC`, email)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

// UpdateStatus advances an order along the fulfillment progression. It is a
// guarded compare-and-set: a row already past `from` is left alone.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	if !CanTransition(from, to) {
		return errors.New("invalid status transition " + string(from) + " -> " + string(to))
	}
	_, err := r.DB.Exec(ctx, `UPDATE orders SET status=$3 WHERE id=$1 AND status=$2`,
		id, string(from), string(to))
	return err
}

const selectOrders = `
	SELECT id, user_id, guest_email, amount_cents,
	       full_name, street, apartment, city, state, zip,
	       status, placed_at
	FROM orders`

func (r *OrderRepo) collect(ctx context.Context, rows pgx.Rows) ([]Order, error) {
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var (
			o          Order
			userID     *string
			guestEmail *string
			status     string
		)
		if err := rows.Scan(&o.ID, &userID, &guestEmail, &o.AmountCents,
			&o.Address.FullName, &o.Address.Street, &o.Address.Apartment,
			&o.Address.City, &o.Address.State, &o.Address.Zip,
			&status, &o.PlacedAt,
		); err != nil {
			return nil, err
		}
		if userID != nil {
			o.UserID = *userID
		}
		if guestEmail != nil {
			o.GuestEmail = *guestEmail
		}
		o.Status = Status(status)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(out))
	byID := make(map[string]int, len(out))
	for i, o := range out {
		ids = append(ids, o.ID)
		byID[o.ID] = i
	}
	itemRows, err := r.DB.Query(ctx, `
		SELECT order_id, product_id, qty FROM order_items
		WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var (
			orderID string
			it      OrderItem
		)
		if err := itemRows.Scan(&orderID, &it.ProductID, &it.Qty); err != nil {
			return nil, err
		}
		i := byID[orderID]
		out[i].Items = append(out[i].Items, it)
	}
	return out, itemRows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
