package reviews

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("review not found")

type Repo struct{ DB *pgxpool.Pool }

const reviewCols = `id, product_id, user_id, user_name, rating, title, comment, images, verified, created_at`

func scanReview(row pgx.Row) (*Review, error) {
	var v Review
	err := row.Scan(&v.ID, &v.ProductID, &v.UserID, &v.UserName, &v.Rating,
		&v.Title, &v.Comment, &v.Images, &v.Verified, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repo) Insert(ctx context.Context, v *Review) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO reviews(`+reviewCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		v.ID, v.ProductID, v.UserID, v.UserName, v.Rating,
		v.Title, v.Comment, v.Images, v.Verified, v.CreatedAt)
	return err
}

func (r *Repo) ListByProduct(ctx context.Context, productID string, skip, limit int) ([]Review, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+reviewCols+` FROM reviews
		WHERE product_id=$1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`,
		productID, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		v, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *Repo) FindByID(ctx context.Context, id string) (*Review, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+reviewCols+` FROM reviews WHERE id=$1`, id)
	return scanReview(row)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
