package students

import (
	"context"

	"github.com/khanghh/vbs/model"
	"gorm.io/gorm"
)

type StudentRepository interface {
	WithTx(tx *gorm.DB) StudentRepository
	First(ctx context.Context, id uint) (*model.Student, error)
	ListByEvent(ctx context.Context, eventID uint) ([]*model.Student, error)
	Create(ctx context.Context, student *model.Student) error
	Updates(ctx context.Context, id uint, columns map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type studentRepository struct {
	db *gorm.DB
}

func (r *studentRepository) WithTx(tx *gorm.DB) StudentRepository {
	return NewStudentRepository(tx)
}

func (r *studentRepository) First(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error
	return &student, err
}

func (r *studentRepository) ListByEvent(ctx context.Context, eventID uint) ([]*model.Student, error) {
	var students []*model.Student
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("last_name, first_name").
		Find(&students).Error
	return students, err
}

func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) Updates(ctx context.Context, id uint, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Student{}).Where("id = ?", id).Updates(columns).Error
}

// Delete removes the student and their attendance history.
func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&model.Attendance{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Student{}).Error
	})
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}
