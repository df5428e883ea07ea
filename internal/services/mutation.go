package services

import (
	"context"
	"fmt"

	"fleet-dashboard/internal/dto"
	"fleet-dashboard/internal/entities"
	"fleet-dashboard/internal/repositories"
	apperrors "fleet-dashboard/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type MutationServiceInterface interface {
	Create(ctx context.Context, s *DashboardService, form dto.EquipmentFormDTO) error
	Update(ctx context.Context, s *DashboardService, siNo int64, form dto.EquipmentFormDTO) error
	Delete(ctx context.Context, s *DashboardService, siNo int64, confirmed bool) error
	BulkDelete(ctx context.Context, s *DashboardService, confirmed bool) error
	BulkUpdateStatus(ctx context.Context, s *DashboardService, field entities.StatusField, value string, confirmed bool) error
}

// MutationService упорядочивает мутации: локальная валидация до сети,
// подтверждение разрушительных действий, одна полная перезагрузка после
// успеха. Собственного состояния не имеет — работает над сессией.
type MutationService struct {
	repo   repositories.EquipmentRepositoryInterface
	logger *zap.Logger
}

func NewMutationService(repo repositories.EquipmentRepositoryInterface, logger *zap.Logger) *MutationService {
	return &MutationService{
		repo:   repo,
		logger: logger,
	}
}

// Create добавляет новую запись. SI No не передается: его присвоит
// удаленное хранилище.
func (m *MutationService) Create(ctx context.Context, s *DashboardService, form dto.EquipmentFormDTO) error {
	return m.save(ctx, s, form, 0, false)
}

// Update сохраняет отредактированную запись под её существующим SI No.
func (m *MutationService) Update(ctx context.Context, s *DashboardService, siNo int64, form dto.EquipmentFormDTO) error {
	return m.save(ctx, s, form, siNo, true)
}

func (m *MutationService) save(ctx context.Context, s *DashboardService, form dto.EquipmentFormDTO, siNo int64, isUpdate bool) error {
	// Обязательные поля проверяются до любого обращения к сети; при
	// ошибке форма остается открытой.
	if err := form.ValidateRequired(); err != nil {
		return err
	}

	equipment := form.ToEquipment(siNo)
	sheet := s.CurrentSheet()
	if err := m.repo.SaveEquipment(ctx, equipment, sheet, isUpdate); err != nil {
		m.logger.Error("Mutation: ошибка сохранения записи",
			zap.Int64("siNo", siNo),
			zap.Bool("isUpdate", isUpdate),
			zap.String("sheet", sheet),
			zap.Error(err),
		)
		s.toasts.Error("Не удалось сохранить запись.")
		return err
	}

	if isUpdate {
		s.toasts.Success("Запись успешно обновлена.")
	} else {
		s.toasts.Success("Запись успешно добавлена.")
	}
	s.CloseForm()
	s.Reload(ctx)
	return nil
}

// Delete удаляет одну запись. Без явного подтверждения запрос к
// удаленному API не выполняется.
func (m *MutationService) Delete(ctx context.Context, s *DashboardService, siNo int64, confirmed bool) error {
	if !confirmed {
		return apperrors.ErrConfirmationRequired
	}

	sheet := s.CurrentSheet()
	if err := m.repo.DeleteEquipment(ctx, siNo, sheet); err != nil {
		m.logger.Error("Mutation: ошибка удаления записи",
			zap.Int64("siNo", siNo),
			zap.String("sheet", sheet),
			zap.Error(err),
		)
		s.toasts.Error("Не удалось удалить запись.")
		return err
	}

	s.toasts.Success("Запись успешно удалена.")
	s.RemoveFromSelection(siNo)
	s.Reload(ctx)
	return nil
}

// BulkDelete удаляет все выделенные записи: одно подтверждение на всю
// пачку, запросы уходят параллельно, первая же ошибка проваливает всю
// операцию без поштучного учета.
func (m *MutationService) BulkDelete(ctx context.Context, s *DashboardService, confirmed bool) error {
	ids := s.SelectedIDs()
	if len(ids) == 0 {
		return apperrors.ErrNothingSelected
	}
	if !confirmed {
		return apperrors.ErrConfirmationRequired
	}

	sheet := s.CurrentSheet()
	s.toasts.Success(fmt.Sprintf("Удаляем записей: %d…", len(ids)))

	g, gctx := errgroup.WithContext(ctx)
	for _, siNo := range ids {
		g.Go(func() error {
			return m.repo.DeleteEquipment(gctx, siNo, sheet)
		})
	}
	if err := g.Wait(); err != nil {
		m.logger.Error("Mutation: ошибка массового удаления",
			zap.Int("count", len(ids)),
			zap.String("sheet", sheet),
			zap.Error(err),
		)
		s.toasts.Error("Не удалось удалить выбранные записи.")
		return err
	}

	s.toasts.Success(fmt.Sprintf("Удалено записей: %d.", len(ids)))
	s.Reload(ctx)
	return nil
}

// BulkUpdateStatus выставляет отметку Own/Rental всем выделенным
// записям. Галочка в одном поле снимает галочку в другом ещё до
// отправки — взаимное исключение обеспечивается на клиенте.
func (m *MutationService) BulkUpdateStatus(ctx context.Context, s *DashboardService, field entities.StatusField, value string, confirmed bool) error {
	if !field.Valid() {
		return apperrors.NewInvalidInputError("Недопустимое поле отметки: %s", field)
	}
	if value != entities.StatusMarkSet && value != entities.StatusMarkUnset {
		return apperrors.NewInvalidInputError("Недопустимое значение отметки: %s", value)
	}

	items := s.SelectedRecords()
	if len(items) == 0 {
		return apperrors.ErrNothingSelected
	}
	if !confirmed {
		return apperrors.ErrConfirmationRequired
	}

	sheet := s.CurrentSheet()
	s.toasts.Success(fmt.Sprintf("Обновляем записей: %d…", len(items)))

	g, gctx := errgroup.WithContext(ctx)
	for _, item := range items {
		updated := item.WithStatusMark(field, value)
		g.Go(func() error {
			return m.repo.SaveEquipment(gctx, updated, sheet, true)
		})
	}
	if err := g.Wait(); err != nil {
		m.logger.Error("Mutation: ошибка массового обновления отметок",
			zap.Int("count", len(items)),
			zap.String("field", string(field)),
			zap.String("sheet", sheet),
			zap.Error(err),
		)
		s.toasts.Error("Не удалось обновить выбранные записи.")
		return err
	}

	s.toasts.Success(fmt.Sprintf("Обновлено записей: %d.", len(items)))
	s.Reload(ctx)
	return nil
}
