package repository

import (
	"context"
	"database/sql"
	"fmt"

	"studyaid/internal/domain"
	"studyaid/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// CourseDatabaseAdapter implements domain.CourseRepository using sqlx.DB.
// The courses table is owned by the ingestion subsystem; only reads happen here.
type CourseDatabaseAdapter struct {
	db *sqlx.DB
}

// NewCourseDatabaseAdapter creates a new instance of CourseDatabaseAdapter
func NewCourseDatabaseAdapter(db *sqlx.DB) domain.CourseRepository {
	return &CourseDatabaseAdapter{db: db}
}

// GetCourseByID implements domain.CourseRepository
func (a *CourseDatabaseAdapter) GetCourseByID(ctx context.Context, id string) (*domain.Course, error) {
	executor := GetExecutor(ctx, a.db)

	var modelCourse models.Course
	query := `SELECT
		id "id",
		course_name "course_name",
		course_content "course_content"
	FROM courses
	WHERE id = :1`

	err := executor.GetContext(ctx, &modelCourse, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course by ID %s: %w", id, err)
	}
	return toDomainCourse(&modelCourse), nil
}

func toDomainCourse(m *models.Course) *domain.Course {
	if m == nil {
		return nil
	}
	return &domain.Course{
		ID:      m.ID,
		Name:    m.Name,
		Content: m.Content,
	}
}
