package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"secret-santa-backend/internal/common/logger"
)

//go:embed migrations/001_init.sql
var initSchema string

// Migrate creates the schema if it does not exist yet.
func (c *Client) Migrate(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, initSchema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info().Msg("Database schema applied")
	return nil
}
