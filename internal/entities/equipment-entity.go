package entities

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/aarondl/null/v8"
)

// Отметки владения в таблице. В одной записи галочку может нести только
// одно из полей Own/Rental.
const (
	StatusMarkSet   = "✓"
	StatusMarkUnset = "-"
)

// StatusField — поле отметки владения.
type StatusField string

const (
	StatusFieldOwn    StatusField = "Own"
	StatusFieldRental StatusField = "Rental"
)

func (f StatusField) Valid() bool {
	return f == StatusFieldOwn || f == StatusFieldRental
}

// Equipment — запись об единице техники в том виде, в котором её отдает
// удаленное табличное API. JSON-ключи повторяют заголовки колонок таблицы.
// SI No присваивается удаленным хранилищем: при создании поле опускается.
// Own/Rental присутствуют не на всех листах, поэтому null.String: не
// заданная отметка не должна появляться в исходящем JSON.
type Equipment struct {
	SINo               int64       `json:"SI No"`
	Description        string      `json:"Equipment Description/Make"`
	Make               string      `json:"Make"`
	Year               FlexYear    `json:"Year of Manufacture"`
	SiteLocation       string      `json:"Site Location"`
	RegistrationNumber string      `json:"Registration Number"`
	Insurance          string      `json:"Insurance"`
	Permit             string      `json:"Permit"`
	Tax                string      `json:"Tax"`
	FitnessCertificate string      `json:"Fitness Certificate"`
	Remarks            string      `json:"Remarks"`
	Own                null.String `json:"Own"`
	Rental             null.String `json:"Rental"`
}

// equipmentJSON — форма для сериализации: указатели позволяют опустить
// SI No при создании и незаданные отметки Own/Rental.
type equipmentJSON struct {
	SINo               *int64   `json:"SI No,omitempty"`
	Description        string   `json:"Equipment Description/Make"`
	Make               string   `json:"Make"`
	Year               FlexYear `json:"Year of Manufacture"`
	SiteLocation       string   `json:"Site Location"`
	RegistrationNumber string   `json:"Registration Number"`
	Insurance          string   `json:"Insurance"`
	Permit             string   `json:"Permit"`
	Tax                string   `json:"Tax"`
	FitnessCertificate string   `json:"Fitness Certificate"`
	Remarks            string   `json:"Remarks"`
	Own                *string  `json:"Own,omitempty"`
	Rental             *string  `json:"Rental,omitempty"`
}

func (e Equipment) MarshalJSON() ([]byte, error) {
	out := equipmentJSON{
		Description:        e.Description,
		Make:               e.Make,
		Year:               e.Year,
		SiteLocation:       e.SiteLocation,
		RegistrationNumber: e.RegistrationNumber,
		Insurance:          e.Insurance,
		Permit:             e.Permit,
		Tax:                e.Tax,
		FitnessCertificate: e.FitnessCertificate,
		Remarks:            e.Remarks,
	}
	if e.SINo != 0 {
		out.SINo = &e.SINo
	}
	if e.Own.Valid {
		out.Own = &e.Own.String
	}
	if e.Rental.Valid {
		out.Rental = &e.Rental.String
	}
	return json.Marshal(out)
}

func (e *Equipment) UnmarshalJSON(data []byte) error {
	var in equipmentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = Equipment{
		Description:        in.Description,
		Make:               in.Make,
		Year:               in.Year,
		SiteLocation:       in.SiteLocation,
		RegistrationNumber: in.RegistrationNumber,
		Insurance:          in.Insurance,
		Permit:             in.Permit,
		Tax:                in.Tax,
		FitnessCertificate: in.FitnessCertificate,
		Remarks:            in.Remarks,
	}
	if in.SINo != nil {
		e.SINo = *in.SINo
	}
	if in.Own != nil {
		e.Own = null.StringFrom(*in.Own)
	}
	if in.Rental != nil {
		e.Rental = null.StringFrom(*in.Rental)
	}
	return nil
}

// SearchValues возвращает текстовые представления всех полей схемы для
// полнотекстового поиска. Список полей фиксирован — динамические ключи
// из таблицы в поиск не попадают.
func (e Equipment) SearchValues() []string {
	return []string{
		strconv.FormatInt(e.SINo, 10),
		e.Description,
		e.Make,
		e.Year.String(),
		e.SiteLocation,
		e.RegistrationNumber,
		e.Insurance,
		e.Permit,
		e.Tax,
		e.FitnessCertificate,
		e.Remarks,
		e.Own.String,
		e.Rental.String,
	}
}

// WithStatusMark возвращает копию записи с выставленной отметкой владения.
// Галочка в одном поле принудительно снимает галочку в другом.
func (e Equipment) WithStatusMark(field StatusField, value string) Equipment {
	updated := e
	switch field {
	case StatusFieldOwn:
		updated.Own = null.StringFrom(value)
		if value == StatusMarkSet {
			updated.Rental = null.StringFrom(StatusMarkUnset)
		}
	case StatusFieldRental:
		updated.Rental = null.StringFrom(value)
		if value == StatusMarkSet {
			updated.Own = null.StringFrom(StatusMarkUnset)
		}
	}
	return updated
}

// HasMark — значение поля считается заполненным, если оно не пустое
// и не прочерк. Используется для сводной статистики.
func HasMark(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed != "" && trimmed != StatusMarkUnset
}
