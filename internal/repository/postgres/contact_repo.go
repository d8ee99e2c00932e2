package postgres

import (
	"context"
	"database/sql"
	"errors"

	"agenda/internal/domain"
)

type contactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) domain.ContactRepository {
	return &contactRepository{DB: db}
}

func (r *contactRepository) Create(ctx context.Context, c *domain.Contact) error {
	query := `
		INSERT INTO contacts (id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	c := &domain.Contact{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, email, phone, created_at, updated_at FROM contacts WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *contactRepository) List(ctx context.Context) ([]*domain.Contact, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, email, phone, created_at, updated_at FROM contacts ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	contacts := make([]*domain.Contact, 0)
	for rows.Next() {
		c := &domain.Contact{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Delete removes the contact. Events linked to it keep existing with a null contact_id.
func (r *contactRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
