package client

import (
	"errors"
	"net/http"
)

var (
	ErrOffline          = errors.New("сервер недоступен")
	ErrNotAuthenticated = errors.New("требуется аутентификация")
	ErrWalkNotFound     = errors.New("прогулка не найдена")
	ErrNoActiveWalk     = errors.New("нет активной прогулки")
)

func isNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Status == http.StatusNotFound
}
