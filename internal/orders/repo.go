package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("order not found")
	ErrConflict = errors.New("order already exists")
)

type ListFilter struct {
	UserID string
	Skip   int
	Limit  int
}

type Repo struct{ DB *pgxpool.Pool }

const orderCols = `id, order_number, user_id, customer, items,
	subtotal_cents, tax_cents, delivery_cents, discount_cents, total_cents,
	payment_method, payment_status, invoice_number, status, status_history,
	estimated_delivery, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Customer, &o.Items,
		&o.SubtotalCents, &o.TaxCents, &o.DeliveryCents, &o.DiscountCents, &o.TotalCents,
		&o.PaymentMethod, &o.PaymentStatus, &o.InvoiceNumber, &o.Status, &o.StatusHistory,
		&o.EstimatedDelivery, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) FindByID(ctx context.Context, id string) (*Order, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id)
	return scanOrder(row)
}

func (r *Repo) Insert(ctx context.Context, o *Order) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO orders(`+orderCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		o.ID, o.OrderNumber, o.UserID, o.Customer, o.Items,
		o.SubtotalCents, o.TaxCents, o.DeliveryCents, o.DiscountCents, o.TotalCents,
		o.PaymentMethod, o.PaymentStatus, o.InvoiceNumber, o.Status, o.StatusHistory,
		o.EstimatedDelivery, o.CreatedAt, o.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (r *Repo) Save(ctx context.Context, o *Order) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE orders SET payment_status=$2, invoice_number=$3, status=$4,
			status_history=$5, total_cents=$6, estimated_delivery=$7, updated_at=$8
		WHERE id=$1`,
		o.ID, o.PaymentStatus, o.InvoiceNumber, o.Status,
		o.StatusHistory, o.TotalCents, o.EstimatedDelivery, o.UpdatedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+orderCols+` FROM orders
		WHERE ($1 = '' OR user_id = $1)
		ORDER BY created_at DESC OFFSET $2 LIMIT $3`,
		f.UserID, f.Skip, f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
