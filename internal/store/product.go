// File: internal/store/product.go
package store

import (
	"context"
	"fmt"

	"fresh-or-rotten/internal/database"
	"fresh-or-rotten/internal/model"
	"fresh-or-rotten/internal/service"
)

// ShopFilterAll 表示不過濾商店的哨兵值
const ShopFilterAll = "All"

// CreateProduct 新增食品紀錄
// 呼叫端需先填好 UserClockOffset 快照與建立當下的進度欄位
// 區間不合法時直接回傳 service.ErrInvalidInterval，不碰資料庫
func CreateProduct(ctx context.Context, db database.DB, p *model.Product) (*model.Product, error) {
	if !p.ExpiresAt.After(p.ProducedAt) {
		return nil, service.ErrInvalidInterval
	}
	row := db.QueryRow(ctx,
		`INSERT INTO products (user_id, name, count, produced_at, expires_at, category, shop, image,
		                       user_clock_offset, progress_percent, progress_color, is_50, is_25, is_10, is_bad)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id, created_at`,
		p.UserID,
		p.Name,
		p.Count,
		p.ProducedAt,
		p.ExpiresAt,
		p.Category,
		p.Shop,
		p.Image,
		p.UserClockOffset,
		p.ProgressPercent,
		p.ProgressColor,
		p.Is50,
		p.Is25,
		p.Is10,
		p.IsBad,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateProduct: %w", err)
	}
	return p, nil
}

// ListProducts 列出使用者的食品紀錄，依建立順序排序
// shop 為空字串或 ShopFilterAll 時不過濾
func ListProducts(ctx context.Context, db database.DB, userID int, shop string) ([]model.Product, error) {
	query := `SELECT id, user_id, name, count, produced_at, expires_at, category, shop, image,
	                 user_clock_offset, progress_percent, progress_color, is_50, is_25, is_10, is_bad, created_at
	          FROM products WHERE user_id = $1 ORDER BY id`
	args := []any{userID}
	if shop != "" && shop != ShopFilterAll {
		query = `SELECT id, user_id, name, count, produced_at, expires_at, category, shop, image,
		                user_clock_offset, progress_percent, progress_color, is_50, is_25, is_10, is_bad, created_at
		         FROM products WHERE user_id = $1 AND shop = $2 ORDER BY id`
		args = append(args, shop)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&p.Count,
			&p.ProducedAt,
			&p.ExpiresAt,
			&p.Category,
			&p.Shop,
			&p.Image,
			&p.UserClockOffset,
			&p.ProgressPercent,
			&p.ProgressColor,
			&p.Is50,
			&p.Is25,
			&p.Is10,
			&p.IsBad,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListProducts: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}
	return products, nil
}

func GetProductByID(ctx context.Context, db database.DB, productID int) (*model.Product, error) {
	row := db.QueryRow(ctx,
		`SELECT id, user_id, name, count, produced_at, expires_at, category, shop, image,
		        user_clock_offset, progress_percent, progress_color, is_50, is_25, is_10, is_bad, created_at
		 FROM products WHERE id = $1`,
		productID,
	)
	p := &model.Product{}
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Count,
		&p.ProducedAt,
		&p.ExpiresAt,
		&p.Category,
		&p.Shop,
		&p.Image,
		&p.UserClockOffset,
		&p.ProgressPercent,
		&p.ProgressColor,
		&p.Is50,
		&p.Is25,
		&p.Is10,
		&p.IsBad,
		&p.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetProductByID: %w", err)
	}
	return p, nil
}

// DeleteProduct 依 ID 刪除，不存在時視為成功
func DeleteProduct(ctx context.Context, db database.DB, productID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM products WHERE id = $1`,
		productID,
	)
	if err != nil {
		return fmt.Errorf("DeleteProduct: %w", err)
	}
	return nil
}

// UpdateProductProgress 回寫讀取時重新計算的進度快照
func UpdateProductProgress(ctx context.Context, db database.DB, productID int, percent int, color string, is50, is25, is10, isBad bool) error {
	_, err := db.Exec(ctx,
		`UPDATE products
		 SET progress_percent = $1, progress_color = $2, is_50 = $3, is_25 = $4, is_10 = $5, is_bad = $6
		 WHERE id = $7`,
		percent,
		color,
		is50,
		is25,
		is10,
		isBad,
		productID,
	)
	if err != nil {
		return fmt.Errorf("UpdateProductProgress: %w", err)
	}
	return nil
}
