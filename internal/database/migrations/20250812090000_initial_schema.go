package migrations

import (
	"context"
	"fmt"

	"github.com/mindhaven/sentinel/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.Message)(nil),
			(*types.ViolationRecord)(nil),
			(*types.UserRiskProfile)(nil),
			(*types.User)(nil),
			(*types.ActivityLog)(nil),
			(*types.SupportTicket)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.SupportTicket)(nil),
			(*types.ActivityLog)(nil),
			(*types.User)(nil),
			(*types.UserRiskProfile)(nil),
			(*types.ViolationRecord)(nil),
			(*types.Message)(nil),
		}

		for _, model := range models {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table for %T: %w", model, err)
			}
		}

		return nil
	})
}
