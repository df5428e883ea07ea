package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"fleet-dashboard/internal/entities"
	apperrors "fleet-dashboard/pkg/errors"

	"go.uber.org/zap"
)

// EquipmentRepositoryInterface — четыре операции удаленного табличного API.
// Повторных попыток нет: любая ошибка уходит вызывающему как есть.
type EquipmentRepositoryInterface interface {
	GetSheets(ctx context.Context) ([]string, error)
	GetAllEquipment(ctx context.Context, sheet string) ([]entities.Equipment, error)
	SaveEquipment(ctx context.Context, equipment entities.Equipment, sheet string, isUpdate bool) error
	DeleteEquipment(ctx context.Context, siNo int64, sheet string) error
}

// SheetsEquipmentRepository — клиент удаленного табличного API (один
// базовый endpoint, чтение через query-параметры, запись через POST).
// Состояния не хранит.
type SheetsEquipmentRepository struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewSheetsEquipmentRepository(baseURL string, client *http.Client, logger *zap.Logger) *SheetsEquipmentRepository {
	if client == nil {
		client = http.DefaultClient
	}
	return &SheetsEquipmentRepository{
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

func (r *SheetsEquipmentRepository) GetSheets(ctx context.Context) ([]string, error) {
	var sheets []string
	if err := r.get(ctx, url.Values{"action": {"getSheets"}}, &sheets); err != nil {
		return nil, err
	}
	return sheets, nil
}

func (r *SheetsEquipmentRepository) GetAllEquipment(ctx context.Context, sheet string) ([]entities.Equipment, error) {
	params := url.Values{
		"action": {"getAll"},
		"sheet":  {sheet},
	}
	var list []entities.Equipment
	if err := r.get(ctx, params, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SheetsEquipmentRepository) SaveEquipment(ctx context.Context, equipment entities.Equipment, sheet string, isUpdate bool) error {
	action := "create"
	if isUpdate {
		action = "update"
	}
	payload := map[string]interface{}{
		"action":    action,
		"equipment": equipment,
		"sheet":     sheet,
	}
	return r.post(ctx, payload)
}

func (r *SheetsEquipmentRepository) DeleteEquipment(ctx context.Context, siNo int64, sheet string) error {
	payload := map[string]interface{}{
		"action": "delete",
		"siNo":   siNo,
		"sheet":  sheet,
	}
	return r.post(ctx, payload)
}

func (r *SheetsEquipmentRepository) get(ctx context.Context, params url.Values, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return apperrors.NewTransportError(err)
	}
	return r.do(req, target)
}

func (r *SheetsEquipmentRepository) post(ctx context.Context, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.NewProtocolError("не удалось сериализовать запрос", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(body))
	if err != nil {
		return apperrors.NewTransportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return r.do(req, nil)
}

// do выполняет запрос и разбирает ответ. Любой не-2xx статус, нечитаемое
// тело или заполненное поле error в ответе считаются ошибкой протокола.
func (r *SheetsEquipmentRepository) do(req *http.Request, target interface{}) error {
	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("SheetsAPI: сетевая ошибка", zap.String("url", req.URL.String()), zap.Error(err))
		return apperrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.logger.Warn("SheetsAPI: неуспешный статус ответа",
			zap.Int("status", resp.StatusCode),
			zap.String("url", req.URL.String()),
		)
		return apperrors.NewProtocolError(fmt.Sprintf("статус ответа %d", resp.StatusCode), nil)
	}

	if apiErr := extractAPIError(body); apiErr != "" {
		return apperrors.NewProtocolError(apiErr, nil)
	}

	if target != nil {
		if err := json.Unmarshal(body, target); err != nil {
			return apperrors.NewProtocolError("не удалось разобрать тело ответа", err)
		}
	}
	return nil
}

// extractAPIError достает поле error из ответа-объекта. Ответы-массивы
// (списки листов и записей) поля error не несут.
func extractAPIError(body []byte) string {
	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return probe.Error
}
