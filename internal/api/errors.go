package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized бэкенд ответил 401; локальная сессия уже очищена
	ErrUnauthorized = errors.New("session expired, please log in again")
	// ErrNoSession запрос требует авторизации, а токена нет
	ErrNoSession = errors.New("not logged in")
)

// APIError отказ бэкенда (4xx/5xx) с его сообщением
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return e.Message
}

// IsAPIError проверяет, что ошибка пришла от бэкенда
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
