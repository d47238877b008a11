package models

// All はAutoMigrateの対象となるモデル（外部キーの親が先）
func All() []any {
	return []any{&Employer{}, &User{}, &Job{}, &Application{}}
}
