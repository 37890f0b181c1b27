package settings

import (
	"context"

	"github.com/khanghh/vbs/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	WithTx(tx *gorm.DB) SettingsRepository
	First(ctx context.Context, id uint) (*model.Settings, error)
	Upsert(ctx context.Context, settings *model.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func (r *settingsRepository) WithTx(tx *gorm.DB) SettingsRepository {
	return NewSettingsRepository(tx)
}

func (r *settingsRepository) First(ctx context.Context, id uint) (*model.Settings, error) {
	var settings model.Settings
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&settings).Error
	return &settings, err
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *model.Settings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(settings).Error
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}
