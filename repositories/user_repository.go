package repositories

import (
	"context"
	"job-board-api/models"

	"gorm.io/gorm"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	FindUser(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, userID uint) (*models.User, error)
	FindByIDs(ctx context.Context, userIDs []uint) ([]models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, userID uint) error
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	result := r.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// FindUser メールアドレス（ログインID）でユーザーを取得する。見つからなければgorm.ErrRecordNotFound
func (r *UserRepository) FindUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", userID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, userIDs []uint) ([]models.User, error) {
	var users []models.User
	result := r.db.WithContext(ctx).Where("id IN ?", userIDs).Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	result := r.db.WithContext(ctx).Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// Delete ユーザーと、そのユーザーの応募をまとめて削除する
func (r *UserRepository) Delete(ctx context.Context, userID uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Delete(&models.Application{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.User{}, "id = ?", userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
