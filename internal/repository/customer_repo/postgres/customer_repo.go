package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"softglow/internal/domain"
	"softglow/internal/repository/customer_repo"
)

const uniqueViolation = "23505"

type pgCustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) customer_repo.CustomerRepository {
	return &pgCustomerRepository{db: db}
}

const customerColumns = `id, name, email, password_hash, phone, address_line1, address_line2, city, state, postal_code, country, email_verified, created_at, updated_at`

func scanCustomer(row interface{ Scan(...interface{}) error }) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Phone,
		&c.AddressLine1, &c.AddressLine2, &c.City, &c.State, &c.PostalCode, &c.Country,
		&c.EmailVerified, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgCustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (` + customerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.PasswordHash, c.Phone,
		c.AddressLine1, c.AddressLine2, c.City, c.State, c.PostalCode, c.Country,
		c.EmailVerified, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *pgCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer by ID %s: %w", id, err)
	}
	return c, nil
}

func (r *pgCustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer by email: %w", err)
	}
	return c, nil
}

func (r *pgCustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name = $2, phone = $3, address_line1 = $4, address_line2 = $5, city = $6, state = $7, postal_code = $8, country = $9, updated_at = $10 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Phone, c.AddressLine1, c.AddressLine2, c.City, c.State, c.PostalCode, c.Country, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", c.ID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *pgCustomerRepository) MarkEmailVerified(ctx context.Context, id string) error {
	query := `UPDATE customers SET email_verified = TRUE, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark email verified for customer %s: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *pgCustomerRepository) CreateOTP(ctx context.Context, otp *domain.EmailOTP) error {
	query := `INSERT INTO email_otps (id, customer_id, code_hash, expires_at, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, otp.ID, otp.CustomerID, otp.CodeHash, otp.ExpiresAt, otp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create email OTP: %w", err)
	}
	return nil
}

func (r *pgCustomerRepository) GetLatestOTP(ctx context.Context, customerID string) (*domain.EmailOTP, error) {
	otp := &domain.EmailOTP{}
	query := `SELECT id, customer_id, code_hash, expires_at, created_at FROM email_otps WHERE customer_id = $1 ORDER BY created_at DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(&otp.ID, &otp.CustomerID, &otp.CodeHash, &otp.ExpiresAt, &otp.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get latest OTP: %w", err)
	}
	return otp, nil
}

func (r *pgCustomerRepository) DeleteOTPs(ctx context.Context, customerID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM email_otps WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("failed to delete OTPs for customer %s: %w", customerID, err)
	}
	return nil
}
