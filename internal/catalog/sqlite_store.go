package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store backed by a sqlite database. It serves the
// same catalog as MemoryStore but survives process restarts.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// Seed inserts products that are not already present. Existing rows are
// left untouched so accumulated reviews survive restarts.
func (s *SQLiteStore) Seed(ctx context.Context, products []Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed tx: %w", err)
	}
	defer tx.Rollback()

	for pos, p := range products {
		tags, err := json.Marshal(p.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO products (id, name, price, category, unit, description, tags, rating, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO NOTHING
		`, p.ID, p.Name, p.Price, string(p.Category), p.Unit, p.Description, string(tags), p.Rating, pos)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}

		for _, r := range p.Reviews {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO reviews (id, product_id, user_name, rating, comment, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (id) DO NOTHING
			`, r.ID, p.ID, r.UserName, r.Rating, r.Comment, r.Date)
			if err != nil {
				return fmt.Errorf("failed to seed review %s: %w", r.ID, err)
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) List(ctx context.Context, f Filter) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price, category, unit, description, tags, rating
		FROM products
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		if matches(p, f) {
			products = append(products, *p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for i := range products {
		reviews, err := s.productReviews(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Reviews = reviews
	}
	return products, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price, category, unit, description, tags, rating
		FROM products
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("row iteration error: %w", err)
		}
		return nil, ErrProductNotFound
	}

	p, err := scanProduct(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	reviews, err := s.productReviews(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Reviews = reviews
	return p, nil
}

func (s *SQLiteStore) AddReview(ctx context.Context, productID string, review Review) (*Product, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.Date.IsZero() {
		review.Date = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin review tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM products WHERE id = $1`, productID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if exists == 0 {
		return nil, ErrProductNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reviews (id, product_id, user_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, review.ID, productID, review.UserName, review.Rating, review.Comment, review.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}

	// rating = mean of all review ratings, rounded to one decimal
	_, err = tx.ExecContext(ctx, `
		UPDATE products
		SET rating = (SELECT ROUND(AVG(rating), 1) FROM reviews WHERE product_id = $1)
		WHERE id = $1
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit review tx: %w", err)
	}

	return s.Get(ctx, productID)
}

func (s *SQLiteStore) Excerpt(ctx context.Context) ([]ProductExcerpt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price, unit, category
		FROM products
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query excerpt: %w", err)
	}
	defer rows.Close()

	var excerpts []ProductExcerpt
	for rows.Next() {
		var e ProductExcerpt
		var category string
		if err := rows.Scan(&e.ID, &e.Name, &e.Price, &e.Unit, &category); err != nil {
			return nil, fmt.Errorf("failed to scan excerpt: %w", err)
		}
		e.Category = Category(category)
		excerpts = append(excerpts, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return excerpts, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) productReviews(ctx context.Context, productID string) ([]Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_name, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.UserName, &r.Rating, &r.Comment, &r.Date); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return reviews, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*Product, error) {
	p := &Product{}
	var category, tags string
	err := row.Scan(&p.ID, &p.Name, &p.Price, &category, &p.Unit, &p.Description, &tags, &p.Rating)
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	p.Category = Category(category)
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			// tolerate legacy comma-separated tags
			p.Tags = strings.Split(tags, ",")
		}
	}
	return p, nil
}
