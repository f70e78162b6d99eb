package membership

import "errors"

var (
	// ErrMemberNotFound возвращается, когда пользователь не состоит в программе лояльности
	ErrMemberNotFound = errors.New("user is not a member")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("membership client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("membership client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Указывает, что MembershipService недоступен и скидка не применяется
	ErrServiceDegraded = errors.New("membership unavailable: graceful degradation applied")
)
