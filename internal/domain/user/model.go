package user

import (
	"strconv"
	"time"
)

type User struct {
	ID        int
	Login     string
	Password  string // хэш
	CreatedAt time.Time
}

// Owner ключ владельца документов для аутентифицированного пользователя
func Owner(id int) string {
	return "user:" + strconv.Itoa(id)
}

type Credentials struct {
	Login    string `json:"login" minLength:"3" maxLength:"64" doc:"Логин"`
	Password string `json:"password" minLength:"8" doc:"Пароль"`
}
