package settings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настройки расписания еще не сохранены
	ErrSettingsNotFound = errors.New("settings.repository: schedule settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")
)
