package categories

import (
	"context"

	"github.com/khanghh/vbs/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	WithTx(tx *gorm.DB) CategoryRepository
	First(ctx context.Context, id uint) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Updates(ctx context.Context, id uint, columns map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func (r *categoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	return NewCategoryRepository(tx)
}

func (r *categoryRepository) First(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	return &category, err
}

func (r *categoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	err := r.db.WithContext(ctx).Order("min_grade, name").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) Updates(ctx context.Context, id uint, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Updates(columns).Error
}

// Delete removes the category and detaches students and sessions that used it.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&model.Student{}, &model.ScheduleSession{}} {
			if err := tx.Model(m).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&model.Category{}).Error
	})
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}
