// Файл: internal/routes/main_router_test.go
package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"fleet-dashboard/pkg/config"
	"fleet-dashboard/pkg/customvalidator"
	applogger "fleet-dashboard/pkg/logger"
	"fleet-dashboard/pkg/service"
	"fleet-dashboard/pkg/utils"
	appwebsocket "fleet-dashboard/pkg/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// fakeSheetsAPI — табличное API в памяти: листы фиксированы, записи
// мутируются через те же action-команды, что и у настоящего endpoint.
type fakeSheetsAPI struct {
	mu      sync.Mutex
	records []map[string]interface{}
	nextID  int64
}

func newFakeSheetsAPI() *fakeSheetsAPI {
	return &fakeSheetsAPI{
		records: []map[string]interface{}{
			{"SI No": int64(1), "Equipment Description/Make": "Автокран Liebherr", "Site Location": "Депо", "Insurance": "✓"},
			{"SI No": int64(2), "Equipment Description/Make": "Бульдозер CAT", "Site Location": "Карьер", "Insurance": "-"},
			{"SI No": int64(3), "Equipment Description/Make": "Самосвал КАМАЗ", "Site Location": "Карьер", "Insurance": "✓"},
		},
		nextID: 4,
	}
}

func (f *fakeSheetsAPI) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if r.Method == http.MethodGet {
			switch r.URL.Query().Get("action") {
			case "getSheets":
				_ = json.NewEncoder(w).Encode([]string{"Overall", "Cranes"})
			case "getAll":
				_ = json.NewEncoder(w).Encode(f.records)
			default:
				http.Error(w, "unknown action", http.StatusBadRequest)
			}
			return
		}

		var payload struct {
			Action    string                 `json:"action"`
			Equipment map[string]interface{} `json:"equipment"`
			SINo      int64                  `json:"siNo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		switch payload.Action {
		case "create":
			payload.Equipment["SI No"] = f.nextID
			f.nextID++
			f.records = append(f.records, payload.Equipment)
		case "update":
			for i, rec := range f.records {
				if toInt64(rec["SI No"]) == toInt64(payload.Equipment["SI No"]) {
					f.records[i] = payload.Equipment
					break
				}
			}
		case "delete":
			for i, rec := range f.records {
				if toInt64(rec["SI No"]) == payload.SINo {
					f.records = append(f.records[:i], f.records[i+1:]...)
					break
				}
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

type DashboardSuite struct {
	suite.Suite
	Echo      *echo.Echo
	API       *fakeSheetsAPI
	APIServer *httptest.Server
	Token     string
}

func (s *DashboardSuite) SetupSuite() {
	s.API = newFakeSheetsAPI()
	s.APIServer = httptest.NewServer(s.API.handler())

	e := echo.New()
	v := validator.New()
	s.Require().NoError(customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)

	logger := applogger.NewTestLogger()
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "0"},
		SheetsAPI: config.SheetsAPIConfig{URL: s.APIServer.URL},
		JWT:       config.JWTConfig{SecretKey: "test-secret", SessionTokenTTL: time.Hour},
		Dashboard: config.DashboardConfig{
			PageSize:       12,
			DebounceDelay:  0, // поиск применяется сразу
			ToastTTL:       time.Minute,
			SessionIdleTTL: time.Minute * 30,
			DefaultSheet:   "Overall",
		},
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.SessionTokenTTL)
	hub := appwebsocket.NewHub(logger)
	go hub.Run()

	InitRouter(e, jwtSvc, hub, logger, cfg)
	s.Echo = e
}

func (s *DashboardSuite) TearDownSuite() {
	s.APIServer.Close()
}

func (s *DashboardSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if s.Token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.Token)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func (s *DashboardSuite) stateBody(rec *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	body, ok := response["body"].(map[string]interface{})
	s.Require().True(ok, "в ответе должен быть объект body: %s", rec.Body.String())
	return body
}

func (s *DashboardSuite) waitForLoad() map[string]interface{} {
	var state map[string]interface{}
	s.Require().Eventually(func() bool {
		rec := s.request(http.MethodGet, "/api/dashboard/state", nil)
		if rec.Code != http.StatusOK {
			return false
		}
		state = s.stateBody(rec)
		loading, _ := state["is_loading"].(bool)
		return !loading
	}, 2*time.Second, 20*time.Millisecond, "начальная загрузка сессии должна завершиться")
	return state
}

func (s *DashboardSuite) TestDashboardWorkflow() {
	s.Run("1_Unauthorized", func() {
		rec := s.request(http.MethodGet, "/api/dashboard/state", nil)
		assert.Equal(s.T(), http.StatusUnauthorized, rec.Code, "без токена доступа быть не должно")
	})

	s.Run("2_CreateSession", func() {
		rec := s.request(http.MethodPost, "/api/session", nil)
		s.Require().Equal(http.StatusCreated, rec.Code, "Body: %s", rec.Body.String())

		body := s.stateBody(rec)
		token, _ := body["token"].(string)
		s.Require().NotEmpty(token)
		s.Token = token
	})

	s.Run("3_InitialState", func() {
		state := s.waitForLoad()
		assert.Equal(s.T(), float64(3), state["total_count"])
		assert.Equal(s.T(), "Overall", state["current_sheet"])
		sheets, _ := state["sheets"].([]interface{})
		assert.Len(s.T(), sheets, 2)
	})

	s.Run("4_Search", func() {
		rec := s.request(http.MethodPost, "/api/dashboard/search", map[string]string{"query": "карьер"})
		s.Require().Equal(http.StatusOK, rec.Code)

		state := s.stateBody(rec)
		assert.Equal(s.T(), float64(2), state["filtered_count"], "поиск без учета регистра по всем полям")
		assert.Equal(s.T(), float64(3), state["total_count"])

		rec = s.request(http.MethodPost, "/api/dashboard/search", map[string]string{"query": ""})
		s.Require().Equal(http.StatusOK, rec.Code)
	})

	s.Run("5_CreateEquipment", func() {
		rec := s.request(http.MethodPost, "/api/equipment", map[string]string{
			"equipment":    "Экскаватор JCB",
			"siteLocation": "Site B",
		})
		s.Require().Equal(http.StatusCreated, rec.Code, "Body: %s", rec.Body.String())

		state := s.stateBody(rec)
		assert.Equal(s.T(), float64(4), state["total_count"], "после создания данные перезагружены")
	})

	s.Run("6_CreateEquipment_ValidationFails", func() {
		rec := s.request(http.MethodPost, "/api/equipment", map[string]string{
			"equipment":    "Без местоположения",
			"siteLocation": "   ",
		})
		assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	})

	s.Run("7_DeleteRequiresConfirmation", func() {
		rec := s.request(http.MethodDelete, "/api/equipment/1", nil)
		assert.Equal(s.T(), http.StatusConflict, rec.Code, "без confirm=true удаление отклоняется")

		rec = s.request(http.MethodDelete, "/api/equipment/1?confirm=true", nil)
		s.Require().Equal(http.StatusOK, rec.Code, "Body: %s", rec.Body.String())

		state := s.stateBody(rec)
		assert.Equal(s.T(), float64(3), state["total_count"])
	})

	s.Run("8_BulkStatus", func() {
		rec := s.request(http.MethodPost, "/api/dashboard/select-all", map[string]bool{"selected": true})
		s.Require().Equal(http.StatusOK, rec.Code)

		rec = s.request(http.MethodPost, "/api/equipment/bulk-status?confirm=true", map[string]string{
			"field": "Own",
			"value": "✓",
		})
		s.Require().Equal(http.StatusOK, rec.Code, "Body: %s", rec.Body.String())

		state := s.stateBody(rec)
		items, _ := state["items"].([]interface{})
		s.Require().NotEmpty(items)
		for _, raw := range items {
			item := raw.(map[string]interface{})
			assert.Equal(s.T(), "✓", item["Own"])
			assert.Equal(s.T(), "-", item["Rental"], "галочка Own должна снять галочку Rental")
		}
	})

	s.Run("9_ExportJSON", func() {
		rec := s.request(http.MethodGet, "/api/export", nil)
		assert.Equal(s.T(), http.StatusOK, rec.Code)
	})

	s.Run("10_ExportXLSX", func() {
		rec := s.request(http.MethodGet, "/api/export?format=xlsx", nil)
		assert.Equal(s.T(), http.StatusOK, rec.Code)
		assert.Contains(s.T(), rec.Header().Get("Content-Disposition"), "attachment")
	})

	s.Run("11_SwitchSheet", func() {
		rec := s.request(http.MethodPost, "/api/dashboard/sheet", map[string]string{"sheet": "Cranes"})
		s.Require().Equal(http.StatusOK, rec.Code)

		state := s.stateBody(rec)
		assert.Equal(s.T(), "Cranes", state["current_sheet"])
		assert.Equal(s.T(), float64(1), state["page"])
	})
}

func (s *DashboardSuite) TestInvalidToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/state", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	assert.Equal(s.T(), http.StatusUnauthorized, rec.Code)
}

func TestDashboardSuite(t *testing.T) {
	suite.Run(t, new(DashboardSuite))
}
