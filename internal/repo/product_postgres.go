package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	models "github.com/rogerio-castellano/pos-dashboard/internal/models"
)

const uniqueViolation = "23505"

const productColumns = `code, name, reference, category, quantity, price, updated_at`

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// ReplaceAll deletes the whole collection and inserts the new set inside one
// transaction. Any failure rolls back to the pre-import state.
func (r *PostgresProductRepository) ReplaceAll(ctx context.Context, products []models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, p := range products {
		if err := checkRecord(p); err != nil {
			return err
		}
		_, err := stmt.ExecContext(ctx, p.Code, p.Name, p.Reference, p.Category, p.Quantity, p.Price, now)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("%w: %s", ErrDuplicateCode, p.Code)
			}
			return fmt.Errorf("insert product %s: %w", p.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func (r *PostgresProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *PostgresProductRepository) GetByCode(ctx context.Context, code string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code).
		Scan(&p.Code, &p.Name, &p.Reference, &p.Category, &p.Quantity, &p.Price, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := filterConditions(pf)

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	query += conditions
	query += " ORDER BY code"

	if pf.Limit != nil && *pf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *pf.Limit)
		argIdx++
	}
	if pf.Offset != nil && *pf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *pf.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, totalCount, nil
}

func filterConditions(pf ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if pf.Name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+pf.Name+"%")
		argIdx++
	}
	if pf.Category != "" {
		query += fmt.Sprintf(" AND lower(category) = lower($%d)", argIdx)
		args = append(args, pf.Category)
		argIdx++
	}
	if pf.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", argIdx)
		args = append(args, *pf.MinPrice)
		argIdx++
	}
	if pf.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", argIdx)
		args = append(args, *pf.MaxPrice)
		argIdx++
	}
	if pf.MinQty != nil {
		query += fmt.Sprintf(" AND quantity >= $%d", argIdx)
		args = append(args, *pf.MinQty)
		argIdx++
	}
	if pf.MaxQty != nil {
		query += fmt.Sprintf(" AND quantity <= $%d", argIdx)
		args = append(args, *pf.MaxQty)
		argIdx++
	}

	return query, args, argIdx
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.Code, &p.Name, &p.Reference, &p.Category, &p.Quantity, &p.Price, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
