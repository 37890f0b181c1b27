package audit

import (
	"context"

	"github.com/khanghh/vbs/model"
	"gorm.io/gorm"
)

type AuditRepository interface {
	WithTx(tx *gorm.DB) AuditRepository
	Create(ctx context.Context, entry *model.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]*model.AuditEntry, error)
}

type auditRepository struct {
	db *gorm.DB
}

func (r *auditRepository) WithTx(tx *gorm.DB) AuditRepository {
	return NewAuditRepository(tx)
}

func (r *auditRepository) Create(ctx context.Context, entry *model.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) Recent(ctx context.Context, limit int) ([]*model.AuditEntry, error) {
	var entries []*model.AuditEntry
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}
