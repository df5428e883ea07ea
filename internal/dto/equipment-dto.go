package dto

import (
	"strings"

	"fleet-dashboard/internal/entities"
	apperrors "fleet-dashboard/pkg/errors"
)

// FormKeyMap — закрытое соответствие имен полей формы каноническим
// именам колонок таблицы. Имена колонок содержат пробелы и слэши,
// поэтому в форме используются свои идентификаторы.
var FormKeyMap = map[string]string{
	"equipment":          "Equipment Description/Make",
	"make":               "Make",
	"year":               "Year of Manufacture",
	"siteLocation":       "Site Location",
	"registrationNumber": "Registration Number",
	"insurance":          "Insurance",
	"permit":             "Permit",
	"tax":                "Tax",
	"fitnessCertificate": "Fitness Certificate",
	"remarks":            "Remarks",
}

// APIKeyToFormMap — точная инверсия FormKeyMap, используется при
// заполнении формы редактирования из существующей записи.
var APIKeyToFormMap = func() map[string]string {
	inverse := make(map[string]string, len(FormKeyMap))
	for formKey, apiKey := range FormKeyMap {
		inverse[apiKey] = formKey
	}
	return inverse
}()

// ToAPIRecord переводит объект с ключами формы в объект с ключами API.
// Ключи, которых нет в FormKeyMap, пропускаются.
func ToAPIRecord(form map[string]interface{}) map[string]interface{} {
	api := make(map[string]interface{}, len(form))
	for key, value := range form {
		if apiKey, ok := FormKeyMap[key]; ok {
			api[apiKey] = value
		}
	}
	return api
}

// ToFormValues — обратное преобразование: из ключей API в ключи формы.
func ToFormValues(api map[string]interface{}) map[string]interface{} {
	form := make(map[string]interface{}, len(api))
	for key, value := range api {
		if formKey, ok := APIKeyToFormMap[key]; ok {
			form[formKey] = value
		}
	}
	return form
}

// EquipmentFormDTO — данные формы добавления/редактирования техники.
type EquipmentFormDTO struct {
	Equipment          string `json:"equipment" validate:"required,notblank"`
	Make               string `json:"make"`
	Year               string `json:"year"`
	SiteLocation       string `json:"siteLocation" validate:"required,notblank"`
	RegistrationNumber string `json:"registrationNumber"`
	Insurance          string `json:"insurance"`
	Permit             string `json:"permit"`
	Tax                string `json:"tax"`
	FitnessCertificate string `json:"fitnessCertificate"`
	Remarks            string `json:"remarks"`
}

// ValidateRequired — локальная проверка обязательных полей. Выполняется
// до любого обращения к удаленному API.
func (d EquipmentFormDTO) ValidateRequired() error {
	if strings.TrimSpace(d.Equipment) == "" {
		return apperrors.NewInvalidInputError("Описание техники обязательно для заполнения")
	}
	if strings.TrimSpace(d.SiteLocation) == "" {
		return apperrors.NewInvalidInputError("Местоположение обязательно для заполнения")
	}
	return nil
}

// ToEquipment собирает каноническую запись из данных формы. siNo равен
// нулю при создании: идентификатор присваивает удаленное хранилище.
func (d EquipmentFormDTO) ToEquipment(siNo int64) entities.Equipment {
	return entities.Equipment{
		SINo:               siNo,
		Description:        d.Equipment,
		Make:               d.Make,
		Year:               entities.FlexYearFromString(d.Year),
		SiteLocation:       d.SiteLocation,
		RegistrationNumber: d.RegistrationNumber,
		Insurance:          d.Insurance,
		Permit:             d.Permit,
		Tax:                d.Tax,
		FitnessCertificate: d.FitnessCertificate,
		Remarks:            d.Remarks,
	}
}

// FormFromEquipment заполняет форму редактирования из существующей записи.
func FormFromEquipment(e entities.Equipment) EquipmentFormDTO {
	return EquipmentFormDTO{
		Equipment:          e.Description,
		Make:               e.Make,
		Year:               e.Year.String(),
		SiteLocation:       e.SiteLocation,
		RegistrationNumber: e.RegistrationNumber,
		Insurance:          e.Insurance,
		Permit:             e.Permit,
		Tax:                e.Tax,
		FitnessCertificate: e.FitnessCertificate,
		Remarks:            e.Remarks,
	}
}
