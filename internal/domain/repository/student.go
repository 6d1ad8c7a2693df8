package repository

import (
	"context"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// StudentRepository describes persistence operations for students.
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	GetByID(ctx context.Context, id int64) (*model.Student, error)
}
