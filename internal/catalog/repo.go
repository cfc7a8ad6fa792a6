package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrConflict = errors.New("product already exists")
)

type Repo struct{ DB *pgxpool.Pool }

const productCols = `id, name, category, description, price_cents, discount_cents,
	images, sizes, stock, low_stock_threshold, flavors, dietary,
	rating, review_count, ingredients, nutrition, status, featured,
	created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.PriceCents, &p.DiscountCents,
		&p.Images, &p.Sizes, &p.Stock, &p.LowStockThreshold, &p.Flavors, &p.Dietary,
		&p.Rating, &p.ReviewCount, &p.Ingredients, &p.Nutrition, &p.Status, &p.Featured,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) FindByID(ctx context.Context, id string) (*Product, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id)
	return scanProduct(row)
}

func (r *Repo) List(ctx context.Context, skip, limit int) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM products
		ORDER BY created_at DESC OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *Repo) Insert(ctx context.Context, p *Product) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products(`+productCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
		p.ID, p.Name, p.Category, p.Description, p.PriceCents, p.DiscountCents,
		p.Images, p.Sizes, p.Stock, p.LowStockThreshold, p.Flavors, p.Dietary,
		p.Rating, p.ReviewCount, p.Ingredients, p.Nutrition, p.Status, p.Featured,
		p.CreatedAt, p.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (r *Repo) Save(ctx context.Context, p *Product) error {
	p.UpdatedAt = time.Now().UTC()
	ct, err := r.DB.Exec(ctx, `
		UPDATE products SET name=$2, category=$3, description=$4, price_cents=$5,
			discount_cents=$6, images=$7, sizes=$8, stock=$9, low_stock_threshold=$10,
			flavors=$11, dietary=$12, rating=$13, review_count=$14, ingredients=$15,
			nutrition=$16, status=$17, featured=$18, updated_at=$19
		WHERE id=$1`,
		p.ID, p.Name, p.Category, p.Description, p.PriceCents,
		p.DiscountCents, p.Images, p.Sizes, p.Stock, p.LowStockThreshold,
		p.Flavors, p.Dietary, p.Rating, p.ReviewCount, p.Ingredients,
		p.Nutrition, p.Status, p.Featured, p.UpdatedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustStock applies a signed stock delta in a single statement so that
// concurrent orders never lose updates, clamping at zero. The boolean
// reports whether the product exists.
func (r *Repo) AdjustStock(ctx context.Context, id string, delta int) (bool, error) {
	ct, err := r.DB.Exec(ctx, `
		UPDATE products SET stock = GREATEST(0, stock + $2), updated_at = now()
		WHERE id=$1`, id, delta)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

// RefreshRatingStats recomputes the denormalized rating aggregates from the
// reviews table.
func (r *Repo) RefreshRatingStats(ctx context.Context, productID string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE products SET
			rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 2) FROM reviews WHERE product_id=$1), 0),
			review_count = (SELECT COUNT(*) FROM reviews WHERE product_id=$1),
			updated_at = now()
		WHERE id=$1`, productID)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
