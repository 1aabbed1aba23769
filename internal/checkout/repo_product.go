package checkout

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepo struct{ DB *pgxpool.Pool }

func (r *CatalogRepo) OfferPrices(ctx context.Context, ids []string) (map[string]int, error) {
	prices := make(map[string]int, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}
	rows, err := r.DB.Query(ctx, `SELECT id, offer_price_cents FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id    string
			price int
		)
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		prices[id] = price
	}
	return prices, rows.Err()
}

func (r *CatalogRepo) ByIDs(ctx context.Context, ids []string) (map[string]Product, error) {
	products := make(map[string]Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}
	rows, err := r.DB.Query(ctx, selectProducts+` WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products[p.ID] = p
	}
	return products, rows.Err()
}

func (r *CatalogRepo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, selectProducts+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const selectProducts = `
	SELECT id, seller_id, name, description, category,
	       price_cents, offer_price_cents, images, created_at, updated_at
	FROM products`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Category,
		&p.PriceCents, &p.OfferPriceCents, &p.Images, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
