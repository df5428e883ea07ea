package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"fleet-dashboard/internal/dto"
	"fleet-dashboard/internal/entities"
	"fleet-dashboard/internal/repositories"
	apperrors "fleet-dashboard/pkg/errors"

	"go.uber.org/zap"
)

// formState — состояние формы добавления/редактирования. editing == nil
// означает добавление новой записи. Одновременно открыта максимум одна форма.
type formState struct {
	editing *entities.Equipment
}

// DashboardService владеет всем состоянием дашборда одной сессии:
// загруженным набором записей, активным листом, строкой поиска,
// страницей и выделением. Производное представление (фильтр, страница,
// сводка) пересчитывается при каждом чтении, а не кэшируется.
type DashboardService struct {
	repo   repositories.EquipmentRepositoryInterface
	toasts ToastServiceInterface
	logger *zap.Logger

	pageSize      int
	debounceDelay time.Duration

	mu              sync.Mutex
	records         []entities.Equipment
	sheets          []string
	currentSheet    string
	rawSearch       string
	debouncedSearch string
	page            int
	selection       map[int64]struct{}
	isLoading       bool
	form            *formState
	debounceTimer   *time.Timer

	// reloadGen защищает от гонки перезагрузок: применяется только
	// результат последней выданной перезагрузки, устаревшие ответы
	// отбрасываются.
	reloadGen int64
}

func NewDashboardService(
	repo repositories.EquipmentRepositoryInterface,
	toasts ToastServiceInterface,
	logger *zap.Logger,
	pageSize int,
	debounceDelay time.Duration,
	defaultSheet string,
) *DashboardService {
	return &DashboardService{
		repo:          repo,
		toasts:        toasts,
		logger:        logger,
		pageSize:      pageSize,
		debounceDelay: debounceDelay,
		sheets:        []string{defaultSheet},
		currentSheet:  defaultSheet,
		page:          1,
		selection:     make(map[int64]struct{}),
		isLoading:     true,
	}
}

// LoadSheets загружает список листов один раз при старте сессии. При
// ошибке остается список по умолчанию.
func (s *DashboardService) LoadSheets(ctx context.Context) {
	sheets, err := s.repo.GetSheets(ctx)
	if err != nil {
		s.logger.Error("Dashboard: не удалось загрузить список листов", zap.Error(err))
		s.toasts.Error("Не удалось загрузить список категорий.")
		return
	}

	s.mu.Lock()
	if len(sheets) > 0 {
		s.sheets = sheets
	}
	s.mu.Unlock()
}

// Reload перезагружает полный список записей активного листа, целиком
// заменяя текущий набор. Выделение сбрасывается в начале загрузки.
func (s *DashboardService) Reload(ctx context.Context) {
	s.mu.Lock()
	s.reloadGen++
	gen := s.reloadGen
	s.isLoading = true
	s.selection = make(map[int64]struct{})
	sheet := s.currentSheet
	s.mu.Unlock()

	data, err := s.repo.GetAllEquipment(ctx, sheet)

	s.mu.Lock()
	if gen != s.reloadGen {
		// Пока шел запрос, была выдана новая перезагрузка.
		s.mu.Unlock()
		s.logger.Debug("Dashboard: устаревший ответ перезагрузки отброшен",
			zap.Int64("generation", gen),
			zap.String("sheet", sheet),
		)
		return
	}
	s.isLoading = false
	if err != nil {
		s.records = nil
		s.mu.Unlock()
		s.logger.Error("Dashboard: ошибка загрузки записей",
			zap.String("sheet", sheet),
			zap.Error(err),
		)
		s.toasts.Error(fmt.Sprintf("Не удалось загрузить данные листа %s.", sheet))
		return
	}
	s.records = data
	s.mu.Unlock()

	s.toasts.Success(fmt.Sprintf("Загружено записей: %d (лист %s)", len(data), sheet))
}

// SetSheet переключает активный лист: выделение сбрасывается, страница
// возвращается на первую, данные перезагружаются.
func (s *DashboardService) SetSheet(ctx context.Context, name string) {
	s.mu.Lock()
	s.currentSheet = name
	s.selection = make(map[int64]struct{})
	s.page = 1
	s.mu.Unlock()

	s.Reload(ctx)
}

// SetSearch мгновенно обновляет "сырую" строку поиска, но фильтр
// применяется только после паузы в наборе: каждый новый ввод
// перезапускает таймер, в очередь ничего не ставится.
func (s *DashboardService) SetSearch(text string) {
	s.mu.Lock()
	s.rawSearch = text
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	if s.debounceDelay <= 0 {
		// Нулевая задержка — тестовый режим, применяем сразу.
		s.applySearchLocked(text)
		s.mu.Unlock()
		return
	}
	s.debounceTimer = time.AfterFunc(s.debounceDelay, func() {
		s.applySearch(text)
	})
	s.mu.Unlock()
}

func (s *DashboardService) applySearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if text != s.rawSearch {
		// Таймер успел сработать параллельно с новым вводом.
		return
	}
	s.applySearchLocked(text)
}

func (s *DashboardService) applySearchLocked(text string) {
	if s.debouncedSearch == text {
		return
	}
	s.debouncedSearch = text
	s.page = 1
}

// SetPage выставляет страницу. Границы не проверяются: корректный номер
// обязан выбрать вызывающий, кнопки навигации на границах выключены.
func (s *DashboardService) SetPage(page int) {
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
}

// Refresh — кнопка обновления: сбрасывает поиск и страницу, перезагружает.
func (s *DashboardService) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.rawSearch = ""
	s.debouncedSearch = ""
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.page = 1
	s.mu.Unlock()

	s.Reload(ctx)
}

func (s *DashboardService) ToggleSelect(siNo int64, selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if selected {
		s.selection[siNo] = struct{}{}
	} else {
		delete(s.selection, siNo)
	}
}

// ToggleSelectAllOnPage добавляет в выделение все записи текущей видимой
// страницы либо убирает ровно их, не трогая выделение других страниц.
func (s *DashboardService) ToggleSelectAllOnPage(selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.visibleSliceLocked() {
		if selected {
			s.selection[item.SINo] = struct{}{}
		} else {
			delete(s.selection, item.SINo)
		}
	}
}

func (s *DashboardService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = make(map[int64]struct{})
}

// OpenForm открывает форму: без siNo — добавление, с siNo — редактирование
// существующей записи.
func (s *DashboardService) OpenForm(siNo *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if siNo == nil {
		s.form = &formState{}
		return nil
	}
	for i := range s.records {
		if s.records[i].SINo == *siNo {
			record := s.records[i]
			s.form = &formState{editing: &record}
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *DashboardService) CloseForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = nil
}

// State — снимок состояния для отрисовки. Производные значения
// (фильтр, страница, состояние чекбокса "выбрать все", сводка)
// вычисляются здесь заново при каждом вызове.
func (s *DashboardService) State() dto.ViewStateDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.filteredLocked()
	totalPages := s.totalPagesLocked(len(filtered))
	visible := s.visibleSliceLocked()

	selected := make([]int64, 0, len(s.selection))
	for siNo := range s.selection {
		selected = append(selected, siNo)
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i] < selected[j] })

	onPageSelected := 0
	for _, item := range visible {
		if _, ok := s.selection[item.SINo]; ok {
			onPageSelected++
		}
	}

	state := dto.ViewStateDTO{
		Items:                  visible,
		IsLoading:              s.isLoading,
		Sheets:                 append([]string(nil), s.sheets...),
		CurrentSheet:           s.currentSheet,
		SearchQuery:            s.rawSearch,
		Page:                   s.page,
		TotalPages:             totalPages,
		HasPrevPage:            s.page > 1,
		HasNextPage:            s.page < totalPages,
		TotalCount:             len(s.records),
		FilteredCount:          len(filtered),
		Selected:               selected,
		SelectAllChecked:       len(visible) > 0 && onPageSelected == len(visible),
		SelectAllIndeterminate: onPageSelected > 0 && onPageSelected < len(visible),
		Stats:                  s.statsLocked(),
	}

	if s.form != nil {
		formDTO := &dto.FormStateDTO{}
		if s.form.editing != nil {
			siNo := s.form.editing.SINo
			formDTO.EditingSINo = &siNo
			formDTO.Values = dto.FormFromEquipment(*s.form.editing)
		}
		state.Form = formDTO
	}

	return state
}

// FilteredRecords — текущий отфильтрованный набор целиком (без разбивки
// на страницы). Используется экспортом.
func (s *DashboardService) FilteredRecords() []entities.Equipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := s.filteredLocked()
	out := make([]entities.Equipment, len(filtered))
	copy(out, filtered)
	return out
}

// filteredLocked — поиск по подстроке без учета регистра по всем полям
// схемы. Пустой запрос возвращает полный набор как есть.
func (s *DashboardService) filteredLocked() []entities.Equipment {
	if s.debouncedSearch == "" {
		return s.records
	}
	query := strings.ToLower(s.debouncedSearch)
	var filtered []entities.Equipment
	for _, item := range s.records {
		for _, value := range item.SearchValues() {
			if strings.Contains(strings.ToLower(value), query) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

func (s *DashboardService) totalPagesLocked(filteredCount int) int {
	pages := (filteredCount + s.pageSize - 1) / s.pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (s *DashboardService) visibleSliceLocked() []entities.Equipment {
	filtered := s.filteredLocked()
	start := (s.page - 1) * s.pageSize
	if start < 0 || start >= len(filtered) {
		return nil
	}
	end := start + s.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

func (s *DashboardService) statsLocked() dto.StatsDTO {
	stats := dto.StatsDTO{Total: len(s.records)}
	for _, item := range s.records {
		if entities.HasMark(item.Insurance) {
			stats.Insured++
		}
		if entities.HasMark(item.Permit) {
			stats.Permitted++
		}
		if entities.HasMark(item.FitnessCertificate) {
			stats.Fit++
		}
	}
	return stats
}

// --- Доступ для оркестратора мутаций ---

func (s *DashboardService) CurrentSheet() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentSheet
}

func (s *DashboardService) EditingSINo() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form == nil || s.form.editing == nil {
		return nil
	}
	siNo := s.form.editing.SINo
	return &siNo
}

// SelectedRecords — записи текущего набора, попавшие в выделение.
func (s *DashboardService) SelectedRecords() []entities.Equipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.Equipment
	for _, item := range s.records {
		if _, ok := s.selection[item.SINo]; ok {
			out = append(out, item)
		}
	}
	return out
}

func (s *DashboardService) SelectedIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, 0, len(s.selection))
	for siNo := range s.selection {
		out = append(out, siNo)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *DashboardService) RemoveFromSelection(siNo int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selection, siNo)
}

// Close останавливает отложенные таймеры сессии.
func (s *DashboardService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
		s.debounceTimer = nil
	}
}
