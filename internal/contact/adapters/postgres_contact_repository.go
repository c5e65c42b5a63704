package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iots1/contacts-api/internal/contact/domain"
)

const uniqueViolationCode = "23505"

const contactColumns = `id, owner_id, first_name, last_name, email, phone, birth_date, notes, created_at, updated_at`

// PostgresContactRepository implements domain.ContactRepository on pgx.
type PostgresContactRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresContactRepository(pool *pgxpool.Pool) *PostgresContactRepository {
	return &PostgresContactRepository{pool: pool}
}

var _ domain.ContactRepository = (*PostgresContactRepository)(nil)

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(&c.ID, &c.OwnerID, &c.FirstName, &c.LastName, &c.Email,
		&c.Phone, &c.BirthDate, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to scan contact: %w", err)
	}
	return &c, nil
}

func (r *PostgresContactRepository) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO contacts (owner_id, first_name, last_name, email, phone, birth_date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+contactColumns,
		contact.OwnerID, contact.FirstName, contact.LastName, contact.Email,
		contact.Phone, contact.BirthDate, contact.Notes,
	)
	created, err := scanContact(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrContactAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

func (r *PostgresContactRepository) FindByID(ctx context.Context, ownerID, id int64) (*domain.Contact, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE owner_id = $1 AND id = $2`,
		ownerID, id,
	)
	return scanContact(row)
}

func (r *PostgresContactRepository) List(ctx context.Context, ownerID int64, filter domain.ListFilter) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1`
	args := []interface{}{ownerID}

	if filter.Query != "" {
		query += ` AND (first_name ILIKE $2 OR last_name ILIKE $2 OR email ILIKE $2)`
		args = append(args, "%"+filter.Query+"%")
	}
	query += fmt.Sprintf(` ORDER BY id OFFSET $%d LIMIT $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Skip, filter.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	return collectContacts(rows)
}

func (r *PostgresContactRepository) Update(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE contacts
		 SET first_name = $3, last_name = $4, email = $5, phone = $6,
		     birth_date = $7, notes = $8, updated_at = now()
		 WHERE owner_id = $1 AND id = $2
		 RETURNING `+contactColumns,
		contact.OwnerID, contact.ID, contact.FirstName, contact.LastName,
		contact.Email, contact.Phone, contact.BirthDate, contact.Notes,
	)
	updated, err := scanContact(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrContactAlreadyExists
		}
		return nil, err
	}
	return updated, nil
}

func (r *PostgresContactRepository) Delete(ctx context.Context, ownerID, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM contacts WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

// UpcomingBirthdays returns the owner's contacts whose next birthday falls
// within [from, from+days]. The next occurrence is computed in SQL so a
// December window correctly wraps into January; Feb 29 birthdays land on
// Feb 28 in non-leap years, which is Postgres interval semantics.
func (r *PostgresContactRepository) UpcomingBirthdays(ctx context.Context, ownerID int64, from time.Time, days int) ([]*domain.Contact, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contactColumns+` FROM (
		    SELECT c.*,
		           CASE
		             WHEN (c.birth_date + make_interval(years => EXTRACT(YEAR FROM age($2::date, c.birth_date))::int))::date >= $2::date
		             THEN (c.birth_date + make_interval(years => EXTRACT(YEAR FROM age($2::date, c.birth_date))::int))::date
		             ELSE (c.birth_date + make_interval(years => EXTRACT(YEAR FROM age($2::date, c.birth_date))::int + 1))::date
		           END AS next_birthday
		    FROM contacts c
		    WHERE c.owner_id = $1 AND c.birth_date IS NOT NULL
		 ) t
		 WHERE t.next_birthday <= $2::date + $3
		 ORDER BY t.next_birthday, t.id`,
		ownerID, from, days,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming birthdays: %w", err)
	}
	defer rows.Close()

	return collectContacts(rows)
}

func collectContacts(rows pgx.Rows) ([]*domain.Contact, error) {
	contacts := make([]*domain.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contact rows: %w", err)
	}
	return contacts, nil
}
