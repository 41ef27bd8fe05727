package repository

import (
	"context"

	"gorm.io/gorm"
)

// conn 事务内使用 tx，否则使用仓库自身的连接
func conn(ctx context.Context, db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
