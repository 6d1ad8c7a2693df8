package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/campusfood/internal/domain/errors"
	"github.com/polkiloo/campusfood/internal/domain/model"
)

type studentRepository struct {
	db querier
}

const studentColumns = `id, name, email, password_hash, phone, department_code, admission_year, created_at`

func (r *studentRepository) Create(ctx context.Context, student *model.Student) (*model.Student, error) {
	const query = `INSERT INTO students (name, email, password_hash, phone, department_code, admission_year)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	created := *student
	err := r.db.QueryRow(ctx, query,
		student.Name, student.Email, student.PasswordHash, student.Phone, student.DepartmentCode, student.AdmissionYear,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrStudentExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return r.get(ctx, `SELECT `+studentColumns+` FROM students WHERE email=$1`, email)
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	return r.get(ctx, `SELECT `+studentColumns+` FROM students WHERE id=$1`, id)
}

func (r *studentRepository) get(ctx context.Context, query string, arg any) (*model.Student, error) {
	var s model.Student
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.Phone, &s.DepartmentCode, &s.AdmissionYear, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}
