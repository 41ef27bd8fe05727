package repository

import (
	"context"

	"youthhub_backend/internal/model"

	"gorm.io/gorm"
)

// CourseRepository 课程目录只读访问
type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// FindWithModules 加载课程及按顺序排列的模块和测验题目
func (r *CourseRepository) FindWithModules(ctx context.Context, courseID uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC").Order("id ASC")
		}).
		Preload("Modules.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC").Order("id ASC")
		}).
		First(&course, courseID).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}
