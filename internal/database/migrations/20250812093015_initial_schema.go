package migrations

import (
	"context"
	"fmt"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.User)(nil),
			(*types.Question)(nil),
			(*types.Answer)(nil),
			(*types.Comment)(nil),
			(*types.Vote)(nil),
			(*types.Notification)(nil),
		}

		for _, model := range models {
			if _, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		indexes := []string{
			// One accepted answer per question, enforced at the storage layer
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_answers_accepted
				ON answers (question_id) WHERE accepted = TRUE AND is_deleted = FALSE`,
			`CREATE INDEX IF NOT EXISTS idx_answers_question ON answers (question_id)`,
			`CREATE INDEX IF NOT EXISTS idx_comments_question ON comments (question_id)`,
			`CREATE INDEX IF NOT EXISTS idx_comments_answer ON comments (answer_id)`,
			`CREATE INDEX IF NOT EXISTS idx_votes_target ON votes (target_type, target_id)`,
			`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (user_id, is_read)`,
			`CREATE INDEX IF NOT EXISTS idx_notifications_question ON notifications (question_id)`,
			`CREATE INDEX IF NOT EXISTS idx_notifications_answer ON notifications (answer_id)`,
		}

		for _, index := range indexes {
			if _, err := db.ExecContext(ctx, index); err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		tables := []string{"notifications", "votes", "comments", "answers", "questions", "users"}

		for _, table := range tables {
			if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}

		return nil
	})
}
