package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AddressRepo scopes every lookup and mutation to the owning account, so a
// foreign address id is indistinguishable from a missing one.
type AddressRepo struct{ DB *pgxpool.Pool }

const selectAddress = `
	SELECT id, user_id, full_name, street, apartment, city, state, zip, created_at
	FROM addresses`

func (r *AddressRepo) ByID(ctx context.Context, userID, addressID string) (Address, error) {
	row := r.DB.QueryRow(ctx, selectAddress+` WHERE id=$1 AND user_id=$2`, addressID, userID)
	a, err := scanAddress(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Address{}, ErrAddressNotFound
	}
	return a, err
}

func (r *AddressRepo) ByUser(ctx context.Context, userID string) ([]Address, error) {
	rows, err := r.DB.Query(ctx, selectAddress+` WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AddressRepo) Create(ctx context.Context, a Address) (Address, error) {
	if missing := a.missingFields(); len(missing) > 0 {
		return Address{}, &MissingFieldError{Fields: missing}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	row := r.DB.QueryRow(ctx, `
		INSERT INTO addresses(id, user_id, full_name, street, apartment, city, state, zip)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at`,
		a.ID, a.UserID, a.FullName, a.Street, a.Apartment, a.City, a.State, a.Zip,
	)
	if err := row.Scan(&a.CreatedAt); err != nil {
		return Address{}, err
	}
	return a, nil
}

func (r *AddressRepo) Update(ctx context.Context, userID, addressID string, fields AddressSnapshot) (Address, error) {
	if missing := fields.missingFields(); len(missing) > 0 {
		return Address{}, &MissingFieldError{Fields: missing}
	}
	row := r.DB.QueryRow(ctx, `
		UPDATE addresses
		SET full_name=$3, street=$4, apartment=$5, city=$6, state=$7, zip=$8
		WHERE id=$1 AND user_id=$2
		RETURNING id, user_id, full_name, street, apartment, city, state, zip, created_at`,
		addressID, userID,
		fields.FullName, fields.Street, fields.Apartment, fields.City, fields.State, fields.Zip,
	)
	a, err := scanAddress(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Address{}, ErrAddressNotFound
	}
	return a, err
}

func (r *AddressRepo) Delete(ctx context.Context, userID, addressID string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM addresses WHERE id=$1 AND user_id=$2`, addressID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func scanAddress(row rowScanner) (Address, error) {
	var a Address
	err := row.Scan(&a.ID, &a.UserID, &a.FullName, &a.Street, &a.Apartment,
		&a.City, &a.State, &a.Zip, &a.CreatedAt)
	return a, err
}
