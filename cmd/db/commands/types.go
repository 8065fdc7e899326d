package commands

import (
	"errors"

	"github.com/tupperbox/tupperbox/internal/database"
	"github.com/tupperbox/tupperbox/internal/setup/config"
	"go.uber.org/zap"
)

var (
	ErrNameRequired   = errors.New("NAME argument required")
	ErrUserIDRequired = errors.New("USER_ID argument required")
	ErrSchemaRollback = errors.New("rollback would drop the initial schema; pass --drop-tables to confirm")
)

// CLIDependencies holds the common dependencies needed by CLI commands.
// Redis is only dialed by commands that need it.
type CLIDependencies struct {
	DB          *database.Client
	Redis       *config.Redis
	ImportFiles []string
	Logger      *zap.Logger
}
