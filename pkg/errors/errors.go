package errors

import "fmt"

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")

	// Сессии
	ErrEmptyAuthHeader   = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader = fmt.Errorf("неверный формат заголовка авторизации")
	ErrSessionNotFound   = fmt.Errorf("сессия не найдена или истекла")

	// Контекст
	ErrSessionIDNotFoundInContext = fmt.Errorf("SessionID не найден в контексте запроса")

	// Действия с данными
	ErrConfirmationRequired = fmt.Errorf("действие требует подтверждения")
	ErrNothingSelected      = fmt.Errorf("не выбрано ни одной записи")
	ErrFormNotOpen          = fmt.Errorf("форма редактирования не открыта")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")
)

// Кастомные типы ошибок

// InvalidInputError — локальная ошибка валидации, возникает до любого
// обращения к удаленному API.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// TransportError — сетевая ошибка при обращении к удаленному API.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ошибка сети при обращении к удаленному API: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func NewTransportError(err error) error {
	return &TransportError{Err: err}
}

// ProtocolError — некорректный ответ удаленного API: не-2xx статус,
// неразбираемое тело или заполненное поле error в ответе.
type ProtocolError struct {
	Message string
	Err     error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("некорректный ответ удаленного API: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("некорректный ответ удаленного API: %s", e.Message)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

func NewProtocolError(message string, err error) error {
	return &ProtocolError{Message: message, Err: err}
}

// HttpError — ошибка с HTTP-статусом для отдачи клиенту. Наружу уходит
// только Message, исходная ошибка и контекст остаются в логах.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Context: context,
	}
}
