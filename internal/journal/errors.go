package journal

import "codeberg.org/vrekk/battstat/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrorCode("journal_invalid_config")
	ErrInvalidDBPath = errors.ErrorCode("journal_invalid_db_path")

	// Recording Errors
	ErrInvalidSnapshot = errors.ErrorCode("journal_invalid_snapshot")
	ErrRecordFailed    = errors.ErrorCode("journal_record_failed")

	// Storage Errors
	ErrStorageAccess    = errors.ErrorCode("journal_storage_access_failed")
	ErrStorageInit      = errors.ErrorCode("journal_storage_init_failed")
	ErrStorageClose     = errors.ErrorCode("journal_storage_close_failed")
	ErrSchemaInitFailed = errors.ErrorCode("journal_schema_init_failed")

	// Operation Errors
	ErrOperationTimeout = errors.ErrorCode("journal_operation_timeout")
)
