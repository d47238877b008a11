package infra

import (
	"fmt"
	"job-board-api/constants"
	"job-board-api/models"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	Username string
	Email    string
	Password string
	Role     string
}

var seedEmployers = []models.Employer{
	{Name: "MetaTechA", ContactEmail: "contact@company-a.com", Industry: "Tech"},
	{Name: "MoneySoftB", ContactEmail: "contact@company-b.com", Industry: "Finance"},
}

// 雇用主は挿入順のインデックスで参照する
var seedJobs = []struct {
	Title       string
	Description string
	EmployerIdx int
}{
	{"Software Engineer", "Develop web applications", 0},
	{"Data Analyst", "Analyze data and create reports", 0},
	{"Accountant", "Manage financial records", 1},
	{"Manager", "Manage people who manage records", 1},
}

var seedUsers = []seedUser{
	{Username: "thomas", Email: "tomthomas@example.com", Password: "a123", Role: constants.RoleAdmin},
	{Username: "janice", Email: "janjanice@example.com", Password: "b234", Role: constants.RoleUser},
	{Username: "xangor", Email: "xangorgor@example.com", Password: "c345", Role: constants.RoleUser},
}

var seedApplications = []struct{ UserIdx, JobIdx int }{
	{1, 0},
	{1, 2},
	{2, 1},
	{2, 3},
}

// SeedDB 空のデータベースにデモデータを投入する。既にユーザーがいれば何もしない
func SeedDB(db *gorm.DB, bcryptCost int) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Printf("Database already contains %d users; skipping seed", count)
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		employers := make([]models.Employer, len(seedEmployers))
		copy(employers, seedEmployers)
		if err := tx.Create(&employers).Error; err != nil {
			return fmt.Errorf("seed employers: %w", err)
		}

		jobs := make([]models.Job, 0, len(seedJobs))
		for _, j := range seedJobs {
			jobs = append(jobs, models.Job{
				Title:       j.Title,
				Description: j.Description,
				EmployerID:  employers[j.EmployerIdx].ID,
			})
		}
		if err := tx.Create(&jobs).Error; err != nil {
			return fmt.Errorf("seed jobs: %w", err)
		}

		users := make([]models.User, 0, len(seedUsers))
		for _, u := range seedUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcryptCost)
			if err != nil {
				return fmt.Errorf("hash seed password: %w", err)
			}
			users = append(users, models.User{
				Username:     u.Username,
				Email:        u.Email,
				PasswordHash: string(hash),
				Role:         u.Role,
			})
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}

		applications := make([]models.Application, 0, len(seedApplications))
		for _, a := range seedApplications {
			applications = append(applications, models.Application{
				UserID: users[a.UserIdx].ID,
				JobID:  jobs[a.JobIdx].ID,
			})
		}
		if err := tx.Create(&applications).Error; err != nil {
			return fmt.Errorf("seed applications: %w", err)
		}

		log.Printf("Seeded %d employers, %d jobs, %d users, %d applications",
			len(employers), len(jobs), len(users), len(applications))
		return nil
	})
}
