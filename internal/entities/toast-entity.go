package entities

type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
)

// Toast — всплывающее уведомление о результате действия. Живет
// фиксированное время, после чего удаляется из очереди само.
type Toast struct {
	ID      int64     `json:"id"`
	Message string    `json:"message"`
	Type    ToastType `json:"type"`
}
