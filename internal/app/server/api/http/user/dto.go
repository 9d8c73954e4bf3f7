package user

import "mindfulsteps/internal/domain/user"

type credentialsInput struct {
	Body user.Credentials
}

// Session выданный токен и ключ владельца, под которым лежат документы
type Session struct {
	UserID int    `json:"userId"`
	Token  string `json:"token"`
	Owner  string `json:"owner"`
}

type logoutInput struct {
	Authorization string `header:"Authorization" required:"true" doc:"Bearer токен"`
}
