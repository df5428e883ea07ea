package dto

import (
	"fleet-dashboard/internal/entities"
)

// ViewStateDTO — снимок состояния дашборда для отрисовки: видимая
// страница записей, состояние загрузки, выделение, форма и сводка.
type ViewStateDTO struct {
	Items     []entities.Equipment `json:"items"`
	IsLoading bool                 `json:"is_loading"`

	Sheets       []string `json:"sheets"`
	CurrentSheet string   `json:"current_sheet"`

	SearchQuery string `json:"search_query"`

	Page          int  `json:"page"`
	TotalPages    int  `json:"total_pages"`
	HasPrevPage   bool `json:"has_prev_page"`
	HasNextPage   bool `json:"has_next_page"`
	TotalCount    int  `json:"total_count"`
	FilteredCount int  `json:"filtered_count"`

	Selected               []int64 `json:"selected"`
	SelectAllChecked       bool    `json:"select_all_checked"`
	SelectAllIndeterminate bool    `json:"select_all_indeterminate"`

	Form *FormStateDTO `json:"form,omitempty"`

	Stats StatsDTO `json:"stats"`
}

// FormStateDTO — открытая форма. EditingSINo == nil означает добавление
// новой записи.
type FormStateDTO struct {
	EditingSINo *int64           `json:"editing_si_no,omitempty"`
	Values      EquipmentFormDTO `json:"values"`
}

// StatsDTO — сводные счетчики по загруженному набору записей.
type StatsDTO struct {
	Total     int `json:"total"`
	Insured   int `json:"insured"`
	Permitted int `json:"permitted"`
	Fit       int `json:"fit"`
}

type SetSheetDTO struct {
	Sheet string `json:"sheet" validate:"required,notblank"`
}

type SetSearchDTO struct {
	Query string `json:"query"`
}

type SetPageDTO struct {
	Page int `json:"page" validate:"required,min=1"`
}

type SelectItemDTO struct {
	SINo     int64 `json:"si_no" validate:"required"`
	Selected bool  `json:"selected"`
}

type SelectAllDTO struct {
	Selected bool `json:"selected"`
}

type OpenFormDTO struct {
	SINo *int64 `json:"si_no,omitempty"`
}

type BulkStatusDTO struct {
	Field string `json:"field" validate:"required,oneof=Own Rental"`
	Value string `json:"value" validate:"required,status_mark"`
}

// SessionDTO — ответ на создание сессии дашборда.
type SessionDTO struct {
	Token string `json:"token"`
}
