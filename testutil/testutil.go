// Package testutil はテスト用のDBとフィクスチャを提供する
package testutil

import (
	"job-board-api/constants"
	"job-board-api/infra"
	"job-board-api/models"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OpenTestDB テストごとに独立したインメモリSQLiteを開き、マイグレーションを適用する
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_", "&", "_").Replace(t.Name())
	db, err := infra.OpenSQLite("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := infra.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := infra.MigrateTokenDB(db); err != nil {
		t.Fatalf("migrate token table: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Fixture 2社・4求人・3ユーザー（admin 1人）・4応募
type Fixture struct {
	Employers    []models.Employer
	Jobs         []models.Job
	Admin        models.User
	Alice        models.User
	Bob          models.User
	Applications []models.Application
}

const FixturePassword = "password123"

func Seed(t *testing.T, db *gorm.DB) Fixture {
	t.Helper()
	var f Fixture

	f.Employers = []models.Employer{
		{Name: "Acme", ContactEmail: "hr@acme.test", Industry: "Tech"},
		{Name: "Globex", ContactEmail: "jobs@globex.test", Industry: "Finance"},
	}
	mustCreate(t, db, &f.Employers)

	f.Jobs = []models.Job{
		{Title: "Backend Engineer", Description: "Go services", EmployerID: f.Employers[0].ID},
		{Title: "SRE", Description: "Keep it running", EmployerID: f.Employers[0].ID},
		{Title: "Accountant", Description: "Books", EmployerID: f.Employers[1].ID},
		{Title: "Analyst", Description: "Numbers", EmployerID: f.Employers[1].ID},
	}
	mustCreate(t, db, &f.Jobs)

	hash, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := []models.User{
		{Username: "root", Email: "admin@example.com", PasswordHash: string(hash), Role: constants.RoleAdmin},
		{Username: "alice", Email: "alice@example.com", PasswordHash: string(hash), Role: constants.RoleUser},
		{Username: "bob", Email: "bob@example.com", PasswordHash: string(hash), Role: constants.RoleUser},
	}
	mustCreate(t, db, &users)
	f.Admin, f.Alice, f.Bob = users[0], users[1], users[2]

	f.Applications = []models.Application{
		{UserID: f.Alice.ID, JobID: f.Jobs[0].ID},
		{UserID: f.Alice.ID, JobID: f.Jobs[2].ID},
		{UserID: f.Bob.ID, JobID: f.Jobs[0].ID},
		{UserID: f.Bob.ID, JobID: f.Jobs[3].ID},
	}
	mustCreate(t, db, &f.Applications)

	return f
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("seed %T: %v", value, err)
	}
}

// Count テーブルの行数を返す
func Count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}
