package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-facility-reservation/internal/config"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/account"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/facility"
	"github.com/sanosuguru/go-facility-reservation/internal/infrastructure/postgres"
	"github.com/sanosuguru/go-facility-reservation/internal/pkg/logger"
)

// 開発環境向けの初期データ投入。施設カタログとデモアカウントを登録する。
// 既に登録済みのデータはスキップされるため、繰り返し実行しても安全。
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger.Set(logger.NewLogger(os.Getenv("APP_ENV")))
	defer logger.Sync()

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続エラー", zap.Error(err))
	}
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := postgres.RunMigrations(db.DB, migrationsPath); err != nil {
		logger.Fatal("マイグレーションエラー", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	facilityRepo := postgres.NewFacilityRepository(db)
	accountRepo := postgres.NewAccountRepository(db)

	seedFacilities := []struct {
		id, name string
		category facility.Category
		location string
	}{
		{"futsal", "Futsal Court 5v5", facility.CategoryFutsal, "Indoor Futsal Court"},
		{"newfield-half-a", "New Field - Half A", facility.CategoryHalfField, "New Field - Half A"},
		{"newfield-half-b", "New Field - Half B", facility.CategoryHalfField, "New Field - Half B"},
		{"tennis-1", "Tennis Court 1", facility.CategoryTennis, "Tennis Court 1"},
		{"tennis-2", "Tennis Court 2", facility.CategoryTennis, "Tennis Court 2"},
		{"basketball", "Basketball Court", facility.CategoryBasketball, "Basketball Court"},
		{"padel", "Padel Court", facility.CategoryPadel, "Padel Court"},
		{"bicycles", "Bicycles", facility.CategoryBicycles, "Bike Rental"},
	}

	for _, s := range seedFacilities {
		f := facility.NewFacility(s.id, s.name, s.category, s.location)
		if err := facilityRepo.Create(ctx, f); err != nil {
			if errors.Is(err, facility.ErrFacilityExists) {
				logger.Debug("施設は登録済み", zap.String("id", s.id))
				continue
			}
			logger.Fatal("施設登録エラー", zap.String("id", s.id), zap.Error(err))
		}
		logger.Info("施設を登録", zap.String("id", s.id), zap.String("name", s.name))
	}

	seedAccounts := []struct {
		username, email string
		role            account.Role
		balance         int
	}{
		{"admin", "admin@example.com", account.RoleApprover, 9999},
		{"nabil", "nabil@example.com", account.RoleMember, 200},
		{"imane", "imane@example.com", account.RoleMember, 150},
	}

	for _, s := range seedAccounts {
		a := account.NewAccount(s.username, s.email, s.role, s.balance)
		if err := accountRepo.Create(ctx, a); err != nil {
			logger.Warn("アカウント登録スキップ", zap.String("username", s.username), zap.Error(err))
			continue
		}
		logger.Info("アカウントを登録",
			zap.String("id", a.ID),
			zap.String("username", a.Username),
			zap.String("role", string(a.Role)),
			zap.Int("balance", a.Balance),
		)
	}

	logger.Info("初期データ投入が完了しました")
}
