package infra

import (
	"fmt"
	"io"
	"job-board-api/models"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newGormLogger 存在確認のたびに発生するErrRecordNotFoundはログに出さない
func newGormLogger(out io.Writer) logger.Interface {
	return logger.New(log.New(out, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: newGormLogger(os.Stdout)}
}

func SetupDB(cfg *Config) (*gorm.DB, error) {
	// DB_NAMEが設定されている場合はPostgreSQLを使用
	if cfg.UsesPostgres() {
		// 本番環境ではsslmode=require、それ以外はsslmode=disable
		sslmode := "disable"
		if cfg.IsProd() {
			sslmode = "require"
		}

		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s connect_timeout=10",
			cfg.Database.Host,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Name,
			cfg.Database.Port,
			sslmode,
		)

		db, err := gorm.Open(postgres.Open(dsn), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("connect to postgres database %s: %w", cfg.Database.Name, err)
		}
		log.Printf("Setup postgres database: host=%s, user=%s, dbname=%s, port=%s",
			cfg.Database.Host, cfg.Database.User, cfg.Database.Name, cfg.Database.Port)
		return db, nil
	}

	// デフォルトはSQLite（インメモリ）
	db, err := OpenSQLite(cfg.Database.SQLitePath)
	if err != nil {
		return nil, err
	}
	log.Printf("Setup sqlite database (%s)", cfg.Database.SQLitePath)
	return db, nil
}

// OpenSQLite 外部キー制約を有効にしてSQLiteを開く。
// ":memory:" は接続ごとに別DBになるため共有キャッシュのURIに置き換える
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == ":memory:" {
		dsn = "file::memory:?cache=shared"
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dsn += sep + "_foreign_keys=on"

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect to sqlite database %s: %w", path, err)
	}
	// 共有キャッシュのSQLiteは並行書き込みでテーブルロックになるため接続を1本に絞る
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// SetupTokenDB トークンブラックリスト用のSQLiteデータベース接続を設定
func SetupTokenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect to token blacklist database: %w", err)
	}
	log.Println("Setup token blacklist SQLite database")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func MigrateTokenDB(tokenDB *gorm.DB) error {
	if err := tokenDB.AutoMigrate(&models.BlacklistedToken{}); err != nil {
		return fmt.Errorf("migrate token blacklist database: %w", err)
	}
	return nil
}
