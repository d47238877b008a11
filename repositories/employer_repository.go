package repositories

import (
	"context"
	"job-board-api/models"

	"gorm.io/gorm"
)

type IEmployerRepository interface {
	FindAll(ctx context.Context) ([]models.Employer, error)
	FindByID(ctx context.Context, employerID uint) (*models.Employer, error)
	FindByIDs(ctx context.Context, employerIDs []uint) ([]models.Employer, error)
	FindByContactEmail(ctx context.Context, email string) (*models.Employer, error)
	Create(ctx context.Context, newEmployer models.Employer) (*models.Employer, error)
	Update(ctx context.Context, employerID uint, updates map[string]interface{}) (*models.Employer, error)
	Delete(ctx context.Context, employerID uint) error
}

type EmployerRepository struct {
	db *gorm.DB
}

func NewEmployerRepository(db *gorm.DB) IEmployerRepository {
	return &EmployerRepository{db: db}
}

func (r *EmployerRepository) FindAll(ctx context.Context) ([]models.Employer, error) {
	var employers []models.Employer
	result := r.db.WithContext(ctx).Order("id").Find(&employers)
	if result.Error != nil {
		return nil, result.Error
	}
	return employers, nil
}

func (r *EmployerRepository) FindByID(ctx context.Context, employerID uint) (*models.Employer, error) {
	var employer models.Employer
	result := r.db.WithContext(ctx).First(&employer, "id = ?", employerID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &employer, nil
}

func (r *EmployerRepository) FindByIDs(ctx context.Context, employerIDs []uint) ([]models.Employer, error) {
	var employers []models.Employer
	result := r.db.WithContext(ctx).Where("id IN ?", employerIDs).Find(&employers)
	if result.Error != nil {
		return nil, result.Error
	}
	return employers, nil
}

func (r *EmployerRepository) FindByContactEmail(ctx context.Context, email string) (*models.Employer, error) {
	var employer models.Employer
	result := r.db.WithContext(ctx).First(&employer, "contact_email = ?", email)
	if result.Error != nil {
		return nil, result.Error
	}
	return &employer, nil
}

func (r *EmployerRepository) Create(ctx context.Context, newEmployer models.Employer) (*models.Employer, error) {
	result := r.db.WithContext(ctx).Create(&newEmployer)
	if result.Error != nil {
		return nil, result.Error
	}
	return &newEmployer, nil
}

func (r *EmployerRepository) Update(ctx context.Context, employerID uint, updates map[string]interface{}) (*models.Employer, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.Employer{}).
		Where("id = ?", employerID).
		Updates(updates)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var updatedEmployer models.Employer
	if err := db.First(&updatedEmployer, "id = ?", employerID).Error; err != nil {
		return nil, err
	}

	return &updatedEmployer, nil
}

// Delete 雇用主→求人→応募の順に外部キーを辿って削除する。
// foreign_keysプラグマが無効なSQLite接続ではON DELETE CASCADEが効かないため明示的に消す
func (r *EmployerRepository) Delete(ctx context.Context, employerID uint) error {
	db := r.db.WithContext(ctx)
	jobIDs := db.Model(&models.Job{}).Select("id").Where("employer_id = ?", employerID)
	if err := db.Where("job_id IN (?)", jobIDs).Delete(&models.Application{}).Error; err != nil {
		return err
	}
	if err := db.Where("employer_id = ?", employerID).Delete(&models.Job{}).Error; err != nil {
		return err
	}

	result := db.Delete(&models.Employer{}, "id = ?", employerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
