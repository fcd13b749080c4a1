package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/appointment_service/internal/service"
	"go.uber.org/zap"
)

// SeedAdmin создаёт администратора из конфига, если его ещё нет. Пустой email - ничего не делает.
func SeedAdmin(ctx context.Context, users *service.UserService, email, password string, logger *zap.Logger) error {
	if email == "" {
		return nil
	}

	created, err := users.EnsureAdmin(ctx, email, password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	if created {
		logger.Info("Admin user created", zap.String("email", email))
	}
	return nil
}
