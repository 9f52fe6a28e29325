package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-menu/app/entity"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, name, country, verification_code, verification_code_expires, email_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Country,
		user.VerificationCode,
		user.VerificationCodeExpires,
		user.EmailVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, email, name, country, verification_code, verification_code_expires,
		       email_verified, created_at, updated_at
		FROM users WHERE email = ?
	`
	return r.findOne(ctx, query, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, email, name, country, verification_code, verification_code_expires,
		       email_verified, created_at, updated_at
		FROM users WHERE id = ?
	`
	return r.findOne(ctx, query, id)
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET
			email = ?,
			name = ?,
			country = ?,
			verification_code = ?,
			verification_code_expires = ?,
			email_verified = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		user.Email,
		user.Name,
		user.Country,
		user.VerificationCode,
		user.VerificationCodeExpires,
		user.EmailVerified,
		user.UpdatedAt,
		user.ID,
	)
	return err
}

// ConsumeVerificationCode marks the user verified only while storedCode is still the code on record.
// It reports false when a concurrent request already consumed or replaced the code.
func (r *UserRepository) ConsumeVerificationCode(ctx context.Context, user *entity.User, storedCode string) (bool, error) {
	query := `
		UPDATE users SET
			email_verified = TRUE,
			verification_code = NULL,
			verification_code_expires = NULL,
			updated_at = ?
		WHERE id = ? AND verification_code = ?
	`
	result, err := r.db.ExecContext(ctx, query, user.UpdatedAt, user.ID, storedCode)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected != 1 {
		return false, nil
	}

	user.EmailVerified = true
	user.VerificationCode = sql.NullString{}
	user.VerificationCodeExpires = sql.NullTime{}
	return true, nil
}

// ClearVerificationCode drops storedCode unless it has already been replaced by a newer code.
func (r *UserRepository) ClearVerificationCode(ctx context.Context, user *entity.User, storedCode string) error {
	query := `
		UPDATE users SET
			verification_code = NULL,
			verification_code_expires = NULL,
			updated_at = ?
		WHERE id = ? AND verification_code = ?
	`
	if _, err := r.db.ExecContext(ctx, query, user.UpdatedAt, user.ID, storedCode); err != nil {
		return err
	}

	user.VerificationCode = sql.NullString{}
	user.VerificationCodeExpires = sql.NullTime{}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	user, err := scanUser(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func scanUser(scan rowScanner) (*entity.User, error) {
	user := &entity.User{}
	if err := scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Country,
		&user.VerificationCode,
		&user.VerificationCodeExpires,
		&user.EmailVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return user, nil
}
