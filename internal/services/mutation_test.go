package services

import (
	"context"
	"fmt"
	"testing"

	"fleet-dashboard/internal/dto"
	"fleet-dashboard/internal/entities"
	apperrors "fleet-dashboard/pkg/errors"
	applogger "fleet-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMutation(repo *stubRepository) (*MutationService, *DashboardService, *stubToasts) {
	svc, toasts := newTestDashboard(repo)
	return NewMutationService(repo, applogger.NewTestLogger()), svc, toasts
}

func validForm() dto.EquipmentFormDTO {
	return dto.EquipmentFormDTO{
		Equipment:    "Экскаватор JCB",
		Make:         "JCB",
		SiteLocation: "Site A",
	}
}

func TestMutationService_Create(t *testing.T) {
	repo := &stubRepository{
		getAllFn: func(ctx context.Context, sheet string) ([]entities.Equipment, error) {
			return makeRecords(1), nil
		},
	}
	mutation, dashboard, toasts := newTestMutation(repo)
	require.NoError(t, dashboard.OpenForm(nil))

	err := mutation.Create(context.Background(), dashboard, validForm())
	require.NoError(t, err)

	saved := repo.saved()
	require.Len(t, saved, 1)
	assert.False(t, saved[0].isUpdate)
	assert.Equal(t, "Overall", saved[0].sheet)
	assert.Equal(t, int64(0), saved[0].equipment.SINo, "SI No при создании не передается")

	assert.Nil(t, dashboard.State().Form, "после успешного сохранения форма закрывается")
	assert.Equal(t, 1, repo.getAllCalls, "после сохранения данные перезагружаются")
	assert.Equal(t, entities.ToastSuccess, toasts.lastType())
}

func TestMutationService_Create_ValidationBlocksNetwork(t *testing.T) {
	repo := &stubRepository{}
	mutation, dashboard, _ := newTestMutation(repo)
	require.NoError(t, dashboard.OpenForm(nil))

	form := validForm()
	form.SiteLocation = "   "

	err := mutation.Create(context.Background(), dashboard, form)
	require.Error(t, err)
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)

	assert.Empty(t, repo.saved(), "при локальной ошибке валидации запрос к API не выполняется")
	assert.NotNil(t, dashboard.State().Form, "форма остается открытой")
}

func TestMutationService_Update(t *testing.T) {
	repo := &stubRepository{
		getAllFn: func(ctx context.Context, sheet string) ([]entities.Equipment, error) {
			return makeRecords(3), nil
		},
	}
	mutation, dashboard, _ := newTestMutation(repo)
	dashboard.Reload(context.Background())

	err := mutation.Update(context.Background(), dashboard, 2, validForm())
	require.NoError(t, err)

	saved := repo.saved()
	require.Len(t, saved, 1)
	assert.True(t, saved[0].isUpdate)
	assert.Equal(t, int64(2), saved[0].equipment.SINo)
}

func TestMutationService_Save_Failure_KeepsFormOpen(t *testing.T) {
	repo := &stubRepository{
		saveFn: func(ctx context.Context, e entities.Equipment, sheet string, isUpdate bool) error {
			return apperrors.NewProtocolError("статус ответа 500", nil)
		},
	}
	mutation, dashboard, toasts := newTestMutation(repo)
	require.NoError(t, dashboard.OpenForm(nil))

	err := mutation.Create(context.Background(), dashboard, validForm())
	require.Error(t, err)

	assert.NotNil(t, dashboard.State().Form, "при ошибке сохранения форма не закрывается")
	assert.Equal(t, 0, repo.getAllCalls, "при ошибке перезагрузки не происходит")
	assert.Equal(t, entities.ToastError, toasts.lastType())
}

func TestMutationService_Delete(t *testing.T) {
	repo := &stubRepository{
		getAllFn: func(ctx context.Context, sheet string) ([]entities.Equipment, error) {
			return makeRecords(3), nil
		},
	}
	mutation, dashboard, _ := newTestMutation(repo)
	dashboard.Reload(context.Background())
	dashboard.ToggleSelect(2, true)

	t.Run("без подтверждения", func(t *testing.T) {
		err := mutation.Delete(context.Background(), dashboard, 2, false)
		assert.ErrorIs(t, err, apperrors.ErrConfirmationRequired)
		assert.Empty(t, repo.deleted())
	})

	t.Run("с подтверждением", func(t *testing.T) {
		err := mutation.Delete(context.Background(), dashboard, 2, true)
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, repo.deleted())
	})
}

func TestMutationService_Delete_Failure(t *testing.T) {
	repo := &stubRepository{
		getAllFn: func(ctx context.Context, sheet string) ([]entities.Equipment, error) {
			return makeRecords(3), nil
		},
		deleteFn: func(ctx context.Context, siNo int64, sheet string) error {
			return fmt.Errorf("boom")
		},
	}
	mutation, dashboard, toasts := newTestMutation(repo)
	dashboard.Reload(context.Background())
	calls := repo.getAllCalls

	err := mutation.Delete(context.Background(), dashboard, 1, true)
	require.Error(t, err)
	assert.Equal(t, calls, repo.getAllCalls, "при ошибке удаления перезагрузки не происходит")
	assert.Equal(t, entities.ToastError, toasts.lastType())
}

func TestMutationService_BulkDelete(t *testing.T) {
	repo := &stubRepository{
		getAllFn: func(ctx context.Context, sheet string) ([]entities.Equipment, error) {
			return makeRecords(5), nil
		},
	}
	mutation, dashboard, toasts := newTestMutation(repo)
	dashboard.Reload(context.Background())

	t.Run("пустое выделение", func(t *testing.T) {
		err := mutation.BulkDelete(context.Background(), dashboard, true)
		assert.ErrorIs(t, err, apperrors.ErrNothingSelected)
	})

	dashboard.ToggleSelect(1, true)
	dashboard.ToggleSelect(3, true)
	dashboard.ToggleSelect(5, true)

	t.Run("без подтверждения", func(t *testing.T) {
		err := mutation.BulkDelete(context.Background(), dashboard, false)
		assert.ErrorIs(t, err, apperrors.ErrConfirmationRequired)
		assert.Empty(t, repo.deleted())
	})

	t.Run("с подтверждением", func(t *testing.T) {
		err := mutation.BulkDelete(context.Background(), dashboard, true)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{1, 3, 5}, repo.deleted())
		assert.Empty(t, dashboard.State().Selected, "после перезагрузки выделение сброшено")
		assert.Equal(t, entities.ToastSuccess, toasts.lastType())
	})
}

func TestMutationService_BulkDelete_PartialFailure(t *testing.T) {
	repo := &stubRepository{
		getAllFn: func(ctx context.Context, sheet string) ([]entities.Equipment, error) {
			return makeRecords(3), nil
		},
	}
	repo.deleteFn = func(ctx context.Context, siNo int64, sheet string) error {
		if siNo == 2 {
			return fmt.Errorf("запись занята")
		}
		return nil
	}
	mutation, dashboard, toasts := newTestMutation(repo)
	dashboard.Reload(context.Background())
	dashboard.ToggleSelect(1, true)
	dashboard.ToggleSelect(2, true)
	calls := repo.getAllCalls

	err := mutation.BulkDelete(context.Background(), dashboard, true)
	require.Error(t, err)
	assert.Equal(t, calls, repo.getAllCalls, "при ошибке пачки перезагрузки не происходит")
	assert.Equal(t, entities.ToastError, toasts.lastType())
}

func TestMutationService_BulkUpdateStatus(t *testing.T) {
	repo := &stubRepository{
		getAllFn: func(ctx context.Context, sheet string) ([]entities.Equipment, error) {
			return makeRecords(3), nil
		},
	}
	mutation, dashboard, _ := newTestMutation(repo)
	dashboard.Reload(context.Background())
	dashboard.ToggleSelect(1, true)
	dashboard.ToggleSelect(2, true)

	err := mutation.BulkUpdateStatus(context.Background(), dashboard, entities.StatusFieldOwn, entities.StatusMarkSet, true)
	require.NoError(t, err)

	saved := repo.saved()
	require.Len(t, saved, 2)
	for _, call := range saved {
		assert.True(t, call.isUpdate)
		assert.Equal(t, entities.StatusMarkSet, call.equipment.Own.String)
		assert.Equal(t, entities.StatusMarkUnset, call.equipment.Rental.String, "галочка Own снимает галочку Rental")
	}
}

func TestMutationService_BulkUpdateStatus_Validation(t *testing.T) {
	repo := &stubRepository{
		getAllFn: func(ctx context.Context, sheet string) ([]entities.Equipment, error) {
			return makeRecords(3), nil
		},
	}
	mutation, dashboard, _ := newTestMutation(repo)
	dashboard.Reload(context.Background())
	dashboard.ToggleSelect(1, true)

	t.Run("недопустимое поле", func(t *testing.T) {
		err := mutation.BulkUpdateStatus(context.Background(), dashboard, entities.StatusField("Insurance"), entities.StatusMarkSet, true)
		require.Error(t, err)
		var invalid *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("недопустимое значение", func(t *testing.T) {
		err := mutation.BulkUpdateStatus(context.Background(), dashboard, entities.StatusFieldOwn, "x", true)
		require.Error(t, err)
		var invalid *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("без подтверждения", func(t *testing.T) {
		err := mutation.BulkUpdateStatus(context.Background(), dashboard, entities.StatusFieldOwn, entities.StatusMarkSet, false)
		assert.ErrorIs(t, err, apperrors.ErrConfirmationRequired)
	})

	assert.Empty(t, repo.saved(), "ни одна из ошибок не должна приводить к запросам")
}
