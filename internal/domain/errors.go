package domain

import (
	"errors"
	"fmt"
)

// TransportError запрос не дошёл до бэкенда или ответ не удалось прочитать
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure [endpoint=%s]: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError бэкенд ответил не-2xx или явной ошибкой в теле
type ServerError struct {
	Endpoint string
	Status   int
	Detail   string
}

func (e *ServerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server failure [endpoint=%s, status=%d]", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("server failure [endpoint=%s, status=%d]: %s", e.Endpoint, e.Status, e.Detail)
}

func WrapTransportError(endpoint string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Endpoint: endpoint, Err: err}
}

func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// AsServerError достаёт ServerError из цепочки
func AsServerError(err error) (*ServerError, bool) {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr, true
	}
	return nil, false
}

func IsServerError(err error) bool {
	_, ok := AsServerError(err)
	return ok
}

var (
	ErrUnknownScreen   = errors.New("unknown screen")
	ErrUnknownSection  = errors.New("unknown section")
	ErrUnknownAction   = errors.New("unknown action")
	ErrInvalidInitData = errors.New("invalid init data")
)
