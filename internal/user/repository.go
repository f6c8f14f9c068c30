package user

import (
	"context"
	"database/sql"
	"errors"

	"ziggler-bot/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Upsert(ctx context.Context, params UpsertParams) (*User, error)
	// GetByID returns nil, nil for an unknown id.
	GetByID(ctx context.Context, id int64) (*User, error)
	UpdateContact(ctx context.Context, params UpdateContactParams) (*User, error)
	ToggleNotifications(ctx context.Context, id int64) (bool, error)
	SetLanguage(ctx context.Context, id int64, lang string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `telegram_id, COALESCE(username, ''), COALESCE(full_name, ''), phone, email,
	language, notifications_enabled, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	var (
		u     User
		phone sql.NullString
		email sql.NullString
	)
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.FullName,
		&phone,
		&email,
		&u.Language,
		&u.NotificationsEnabled,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if email.Valid {
		u.Email = &email.String
	}
	return &u, nil
}

// Upsert creates the user on first contact and afterwards refreshes only the
// platform-owned fields, keeping preferences and created_at.
func (r *repository) Upsert(ctx context.Context, params UpsertParams) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Upsert"),
		zap.Int64("user_id", params.ID),
	)

	u, err := scanUser(r.db.QueryRowContext(ctx, `
		INSERT INTO users (telegram_id, username, full_name, language, notifications_enabled)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username,
			full_name = EXCLUDED.full_name,
			updated_at = NOW()
		RETURNING `+userColumns,
		params.ID, params.Username, params.FullName, DefaultLanguage,
	))
	if err != nil {
		log.Error("failed to upsert user", zap.Error(err))
		return nil, err
	}

	log.Debug("user upserted")
	return u, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByID"),
		zap.Int64("user_id", id),
	)

	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("user not found")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user", zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (r *repository) UpdateContact(ctx context.Context, params UpdateContactParams) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateContact"),
		zap.Int64("user_id", params.UserID),
	)

	// COALESCE keeps existing values when the input is nil
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		UPDATE users
		SET full_name = COALESCE($2, full_name),
			phone = COALESCE($3, phone),
			email = COALESCE($4, email),
			updated_at = NOW()
		WHERE telegram_id = $1
		RETURNING `+userColumns,
		params.UserID, params.FullName, params.Phone, params.Email,
	))
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("user not found")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to update contact", zap.Error(err))
		return nil, err
	}

	log.Info("contact updated")
	return u, nil
}

func (r *repository) ToggleNotifications(ctx context.Context, id int64) (bool, error) {
	var enabled bool
	err := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET notifications_enabled = NOT notifications_enabled, updated_at = NOW()
		WHERE telegram_id = $1
		RETURNING notifications_enabled
	`, id).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to toggle notifications",
			zap.String("layer", "repository"),
			zap.Int64("user_id", id),
			zap.Error(err),
		)
		return false, err
	}
	return enabled, nil
}

func (r *repository) SetLanguage(ctx context.Context, id int64, lang string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET language = $2, updated_at = NOW()
		WHERE telegram_id = $1
	`, id, lang)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to set language",
			zap.String("layer", "repository"),
			zap.Int64("user_id", id),
			zap.Error(err),
		)
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
