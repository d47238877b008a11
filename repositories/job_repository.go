package repositories

import (
	"context"
	"job-board-api/models"

	"gorm.io/gorm"
)

type IJobRepository interface {
	FindAll(ctx context.Context) ([]models.Job, error)
	FindByID(ctx context.Context, jobID uint) (*models.Job, error)
	FindByIDs(ctx context.Context, jobIDs []uint) ([]models.Job, error)
	FindByEmployerIDs(ctx context.Context, employerIDs []uint) ([]models.Job, error)
	Create(ctx context.Context, newJob models.Job) (*models.Job, error)
	Update(ctx context.Context, jobID uint, updates map[string]interface{}) (*models.Job, error)
	Delete(ctx context.Context, jobID uint) error
}

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) IJobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) FindAll(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	result := r.db.WithContext(ctx).Order("id").Find(&jobs)
	if result.Error != nil {
		return nil, result.Error
	}
	return jobs, nil
}

func (r *JobRepository) FindByID(ctx context.Context, jobID uint) (*models.Job, error) {
	var job models.Job
	result := r.db.WithContext(ctx).First(&job, "id = ?", jobID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &job, nil
}

func (r *JobRepository) FindByIDs(ctx context.Context, jobIDs []uint) ([]models.Job, error) {
	var jobs []models.Job
	result := r.db.WithContext(ctx).Where("id IN ?", jobIDs).Find(&jobs)
	if result.Error != nil {
		return nil, result.Error
	}
	return jobs, nil
}

func (r *JobRepository) FindByEmployerIDs(ctx context.Context, employerIDs []uint) ([]models.Job, error) {
	var jobs []models.Job
	result := r.db.WithContext(ctx).Where("employer_id IN ?", employerIDs).Order("id").Find(&jobs)
	if result.Error != nil {
		return nil, result.Error
	}
	return jobs, nil
}

func (r *JobRepository) Create(ctx context.Context, newJob models.Job) (*models.Job, error) {
	result := r.db.WithContext(ctx).Create(&newJob)
	if result.Error != nil {
		return nil, result.Error
	}
	return &newJob, nil
}

func (r *JobRepository) Update(ctx context.Context, jobID uint, updates map[string]interface{}) (*models.Job, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.Job{}).
		Where("id = ?", jobID).
		Updates(updates)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var updatedJob models.Job
	if err := db.First(&updatedJob, "id = ?", jobID).Error; err != nil {
		return nil, err
	}

	return &updatedJob, nil
}

// Delete 求人とその応募を削除する
func (r *JobRepository) Delete(ctx context.Context, jobID uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("job_id = ?", jobID).Delete(&models.Application{}).Error; err != nil {
		return err
	}

	result := db.Delete(&models.Job{}, "id = ?", jobID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
