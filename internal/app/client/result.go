package client

// Status итог операции синхронизации для интерфейса
type Status int

const (
	// StatusOK сервер ответил успешно
	StatusOK Status = iota
	// StatusRemoteUnavailable данные взяты из локального хранилища, мутация ждет в очереди
	StatusRemoteUnavailable
	// StatusLocalError не удалось ни обратиться к серверу, ни к локальному хранилищу
	StatusLocalError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusRemoteUnavailable:
		return "offline"
	case StatusLocalError:
		return "local-error"
	}
	return "unknown"
}

type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

func ok[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: StatusOK}
}

func offline[T any](v T, err error) Result[T] {
	if err == nil {
		err = ErrOffline
	}
	return Result[T]{Value: v, Status: StatusRemoteUnavailable, Err: err}
}

func failed[T any](err error) Result[T] {
	return Result[T]{Status: StatusLocalError, Err: err}
}
