package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/teamboard/internal/common"
	"github.com/dmitrijs2005/teamboard/internal/dbx"
	"github.com/dmitrijs2005/teamboard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.FullName, &user.Email,
		&user.StatusID, &user.StatusName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {

	query :=
		`SELECT u.id, u.username, u.password, u.full_name, u.email,
		        s.id, s.name, u.created_at, u.updated_at
		 FROM users u
		 LEFT JOIN statuses s ON u.current_status_id = s.id
		 WHERE u.username = $1
		 `

	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {

	query :=
		`SELECT u.id, u.username, u.password, u.full_name, u.email,
		        s.id, s.name, u.created_at, u.updated_at
		 FROM users u
		 LEFT JOIN statuses s ON u.current_status_id = s.id
		 WHERE u.id = $1
		 `

	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// List returns the full roster ordered by id. When statusName is non-empty,
// only users whose resolved status name equals it are returned; users
// without a status reference resolve to the default label.
func (r *PostgresRepository) List(ctx context.Context, statusName string) ([]*models.User, error) {

	query :=
		`SELECT u.id, u.username, u.password, u.full_name, u.email,
		        s.id, s.name, u.created_at, u.updated_at
		 FROM users u
		 LEFT JOIN statuses s ON u.current_status_id = s.id
		 `

	var args []any
	if statusName != "" {
		query += ` WHERE COALESCE(s.name, '` + common.DefaultStatusName + `') = $1`
		args = append(args, statusName)
	}
	query += ` ORDER BY u.id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.FullName, &user.Email,
			&user.StatusID, &user.StatusName, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// UpdateStatus applies the status change and the updated_at refresh in one
// statement, so there is no read-modify-write window. The caller is expected
// to have validated statusID against the statuses table beforehand.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, userID, statusID int64) (*models.User, error) {

	query :=
		`UPDATE users SET current_status_id = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2
		 RETURNING id, username, full_name, email, current_status_id, created_at, updated_at
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, statusID, userID).Scan(
		&user.ID, &user.Username, &user.FullName, &user.Email,
		&user.StatusID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, password, full_name, email, current_status_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.FullName, user.Email, user.StatusID).Scan(&user.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
