package repositories

import (
	"context"
	"job-board-api/models"
	"strings"

	"gorm.io/gorm"
)

// JobUserPair 一般ユーザー向けに応募を絞り込むときの複合キー
type JobUserPair struct {
	JobID  uint
	UserID uint
}

type IApplicationRepository interface {
	FindAll(ctx context.Context) ([]models.Application, error)
	FindByUserID(ctx context.Context, userID uint) ([]models.Application, error)
	FindByJobIDs(ctx context.Context, jobIDs []uint) ([]models.Application, error)
	FindByUserIDs(ctx context.Context, userIDs []uint) ([]models.Application, error)
	FindByJobUserPairs(ctx context.Context, pairs []JobUserPair) ([]models.Application, error)
	Exists(ctx context.Context, userID uint, jobID uint) (bool, error)
	Create(ctx context.Context, newApplication models.Application) (*models.Application, error)
}

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) IApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) FindAll(ctx context.Context) ([]models.Application, error) {
	var applications []models.Application
	result := r.db.WithContext(ctx).Order("id").Find(&applications)
	if result.Error != nil {
		return nil, result.Error
	}
	return applications, nil
}

func (r *ApplicationRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Application, error) {
	var applications []models.Application
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&applications)
	if result.Error != nil {
		return nil, result.Error
	}
	return applications, nil
}

func (r *ApplicationRepository) FindByJobIDs(ctx context.Context, jobIDs []uint) ([]models.Application, error) {
	var applications []models.Application
	result := r.db.WithContext(ctx).Where("job_id IN ?", jobIDs).Order("id").Find(&applications)
	if result.Error != nil {
		return nil, result.Error
	}
	return applications, nil
}

func (r *ApplicationRepository) FindByUserIDs(ctx context.Context, userIDs []uint) ([]models.Application, error) {
	var applications []models.Application
	result := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Order("id").Find(&applications)
	if result.Error != nil {
		return nil, result.Error
	}
	return applications, nil
}

// FindByJobUserPairs (job_id, user_id) の組のいずれかに一致する応募を1回のクエリで取得する
func (r *ApplicationRepository) FindByJobUserPairs(ctx context.Context, pairs []JobUserPair) ([]models.Application, error) {
	if len(pairs) == 0 {
		return []models.Application{}, nil
	}

	conditions := make([]string, 0, len(pairs))
	args := make([]interface{}, 0, len(pairs)*2)
	for _, pair := range pairs {
		conditions = append(conditions, "(job_id = ? AND user_id = ?)")
		args = append(args, pair.JobID, pair.UserID)
	}

	var applications []models.Application
	result := r.db.WithContext(ctx).
		Where(strings.Join(conditions, " OR "), args...).
		Order("id").
		Find(&applications)
	if result.Error != nil {
		return nil, result.Error
	}
	return applications, nil
}

func (r *ApplicationRepository) Exists(ctx context.Context, userID uint, jobID uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, newApplication models.Application) (*models.Application, error) {
	result := r.db.WithContext(ctx).Create(&newApplication)
	if result.Error != nil {
		return nil, result.Error
	}
	return &newApplication, nil
}
