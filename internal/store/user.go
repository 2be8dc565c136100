// File: internal/store/user.go
package store

import (
	"context"
	"errors"
	"fmt"

	"fresh-or-rotten/internal/database"
	"fresh-or-rotten/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation PostgreSQL 唯一鍵衝突的 SQLSTATE
const uniqueViolation = "23505"

func GetUserByTelegramID(ctx context.Context, db database.DB, tgID int64) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, tg_id, clock_offset_hours, created_at
		 FROM users WHERE tg_id = $1`,
		tgID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.TelegramID,
		&u.ClockOffsetHours,
		&u.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetUserByTelegramID: %w", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (tg_id, clock_offset_hours)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		u.TelegramID,
		u.ClockOffsetHours,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// GetOrCreateUser 依 tg_id 查詢使用者，不存在時以時差 0 建立
// 同一個 tg_id 併發首次建立撞到唯一鍵衝突時重查即可，不視為錯誤
func GetOrCreateUser(ctx context.Context, db database.DB, tgID int64) (*model.User, error) {
	u, err := GetUserByTelegramID(ctx, db, tgID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	u = &model.User{TelegramID: tgID}
	if _, err := CreateUser(ctx, db, u); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return GetUserByTelegramID(ctx, db, tgID)
		}
		return nil, err
	}
	return u, nil
}

// UpdateUserClockOffset 覆寫使用者時差，任何整數皆接受
func UpdateUserClockOffset(ctx context.Context, db database.DB, userID int, hours int) error {
	_, err := db.Exec(ctx,
		`UPDATE users SET clock_offset_hours = $1
		 WHERE id = $2`,
		hours,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserClockOffset: %w", err)
	}
	return nil
}

func CountProducts(ctx context.Context, db database.DB, userID int) (int, error) {
	row := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE user_id = $1`,
		userID,
	)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("CountProducts: %w", err)
	}
	return count, nil
}
