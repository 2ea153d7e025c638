package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nishantd01/grud/clients"
	"github.com/nishantd01/grud/core"
	"github.com/nishantd01/grud/db"
	"github.com/nishantd01/grud/models"
)

var testUsers = []models.User{
	{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz", Website: "hildegard.org"},
	{ID: 2, Name: "Ervin Howell", Email: "Shanna@melissa.tv", Website: "anastasia.net"},
}

type fixture struct {
	api      *clients.MockUsersAPI
	exporter *MockExporter
	store    *db.UserStore
	toaster  *Toaster
	svc      *UserService
}

func newFixture(t *testing.T, withExporter bool) *fixture {
	t.Helper()
	f := &fixture{
		api:     &clients.MockUsersAPI{},
		store:   db.NewUserStore(),
		toaster: NewToaster(3*time.Second, 20),
	}
	f.store.Replace(testUsers)
	var exporter Exporter
	if withExporter {
		f.exporter = &MockExporter{}
		exporter = f.exporter
	}
	f.svc = NewUserService(f.api, f.store, f.toaster, exporter)
	t.Cleanup(func() {
		f.api.AssertExpectations(t)
		if f.exporter != nil {
			f.exporter.AssertExpectations(t)
		}
	})
	return f
}

func lastToast(t *testing.T, toaster *Toaster) models.Toast {
	t.Helper()
	active := toaster.Active()
	require.NotEmpty(t, active)
	return active[len(active)-1]
}

func TestUserService_LoadUsers(t *testing.T) {
	f := newFixture(t, false)
	f.store.Replace(nil)
	f.api.On("ListUsers", mock.Anything).Return(testUsers, nil)

	require.NoError(t, f.svc.LoadUsers(context.Background()))
	assert.Equal(t, testUsers, f.svc.ListUsers())
}

func TestUserService_LoadUsers_FailureLeavesEmptyTable(t *testing.T) {
	f := newFixture(t, false)
	f.api.On("ListUsers", mock.Anything).Return(nil, errors.New("connection refused"))

	err := f.svc.LoadUsers(context.Background())
	require.Error(t, err)
	assert.Empty(t, f.svc.ListUsers())
	assert.Empty(t, f.toaster.Active(), "a failed initial load shows no toast")
}

func TestUserService_AddUser(t *testing.T) {
	f := newFixture(t, false)
	in := models.NewUserInput{Name: "Nishant", Email: "n@example.com", Website: "example.com"}
	f.api.On("CreateUser", mock.Anything, in).
		Return(&models.User{ID: 11, Name: "Nishant", Email: "n@example.com", Website: "example.com"}, nil).Once()

	user, err := f.svc.AddUser(context.Background(), models.NewUserInput{
		Name: " Nishant ", Email: "n@example.com ", Website: "  example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, user.ID)
	users := f.svc.ListUsers()
	require.Len(t, users, 3)
	assert.Equal(t, user, users[2])

	toast := lastToast(t, f.toaster)
	assert.Equal(t, MsgUserAdded, toast.Message)
	assert.Equal(t, models.IntentSuccess, toast.Intent)
	assert.Equal(t, int64(3000), toast.TimeoutMS)
}

func TestUserService_AddUser_BlankFieldIssuesNoRequest(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.AddUser(context.Background(), models.NewUserInput{Name: "A", Email: "  ", Website: "x.org"})
	require.Error(t, err)
	assert.True(t, core.IsInvalidInputError(err))

	f.api.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	assert.Len(t, f.svc.ListUsers(), 2)
	assert.Equal(t, models.IntentWarning, lastToast(t, f.toaster).Intent)
}

func TestUserService_AddUser_UpstreamFailure(t *testing.T) {
	f := newFixture(t, false)
	f.api.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, &clients.StatusError{Op: "create user", StatusCode: http.StatusInternalServerError})

	_, err := f.svc.AddUser(context.Background(), models.NewUserInput{Name: "A", Email: "a@b.c", Website: "x.org"})
	require.Error(t, err)

	var statusErr *clients.StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Len(t, f.svc.ListUsers(), 2)

	toast := lastToast(t, f.toaster)
	assert.Equal(t, models.IntentDanger, toast.Intent)
	assert.Contains(t, toast.Message, "Failed to add user")
}

func TestUserService_EditField_IsLocalOnly(t *testing.T) {
	f := newFixture(t, false)

	user, err := f.svc.EditField(2, models.FieldName, "Ervin H.")
	require.NoError(t, err)
	assert.Equal(t, "Ervin H.", user.Name)
	assert.Equal(t, "Ervin H.", f.svc.ListUsers()[1].Name)
	assert.Empty(t, f.toaster.Active())
}

func TestUserService_UpdateUser_SendsEditedRow(t *testing.T) {
	f := newFixture(t, false)
	edited := models.User{ID: 1, Name: "Leanne Graham", Email: "leanne@example.com", Website: "hildegard.org"}
	f.api.On("UpdateUser", mock.Anything, edited).
		Return(&models.User{ID: 1, Name: "Leanne Graham", Email: "leanne@example.com", Website: "hildegard.io"}, nil).Once()

	_, err := f.svc.EditField(1, models.FieldEmail, "leanne@example.com")
	require.NoError(t, err)

	user, err := f.svc.UpdateUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "hildegard.io", user.Website, "row becomes the server response")
	assert.Equal(t, user, f.svc.ListUsers()[0])

	toast := lastToast(t, f.toaster)
	assert.Equal(t, MsgUserUpdated, toast.Message)
	assert.Equal(t, models.IntentSuccess, toast.Intent)
}

func TestUserService_UpdateUser_UnknownID(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.UpdateUser(context.Background(), 42)
	assert.True(t, core.IsNotFoundError(err))
	f.api.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestUserService_UpdateUser_UpstreamFailureKeepsLocalEdit(t *testing.T) {
	f := newFixture(t, false)
	f.api.On("UpdateUser", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := f.svc.EditField(2, models.FieldWebsite, "ervin.dev")
	require.NoError(t, err)

	_, err = f.svc.UpdateUser(context.Background(), 2)
	require.Error(t, err)
	assert.Equal(t, "ervin.dev", f.svc.ListUsers()[1].Website)
	assert.Equal(t, models.IntentDanger, lastToast(t, f.toaster).Intent)
}

func TestUserService_DeleteUser(t *testing.T) {
	f := newFixture(t, false)
	f.api.On("DeleteUser", mock.Anything, 1).Return(nil).Once()

	require.NoError(t, f.svc.DeleteUser(context.Background(), 1))

	users := f.svc.ListUsers()
	require.Len(t, users, 1)
	assert.Equal(t, 2, users[0].ID)

	toast := lastToast(t, f.toaster)
	assert.Equal(t, MsgUserDeleted, toast.Message)
	assert.Equal(t, models.IntentDanger, toast.Intent)
}

func TestUserService_DeleteUser_Failures(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t, false)
		err := f.svc.DeleteUser(context.Background(), 9)
		assert.True(t, core.IsNotFoundError(err))
	})

	t.Run("upstream error keeps row", func(t *testing.T) {
		f := newFixture(t, false)
		f.api.On("DeleteUser", mock.Anything, 2).Return(errors.New("boom"))

		require.Error(t, f.svc.DeleteUser(context.Background(), 2))
		assert.Len(t, f.svc.ListUsers(), 2)
	})
}

func TestUserService_ExportUsers(t *testing.T) {
	f := newFixture(t, true)
	f.exporter.On("Export", mock.Anything, "Team", mock.MatchedBy(func(data [][]interface{}) bool {
		return len(data) == 3
	})).Return("sheet-1", nil).Once()

	resp, err := f.svc.ExportUsers(context.Background(), " Team ")
	require.NoError(t, err)
	assert.Equal(t, "sheet-1", resp.SpreadsheetID)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/sheet-1", resp.URL)
	assert.Equal(t, 2, resp.Rows)
}

func TestUserService_ExportUsers_DefaultTitle(t *testing.T) {
	f := newFixture(t, true)
	f.exporter.On("Export", mock.Anything, mock.MatchedBy(func(title string) bool {
		return len(title) > len("Users ")
	}), mock.Anything).Return("sheet-2", nil).Once()

	_, err := f.svc.ExportUsers(context.Background(), "")
	require.NoError(t, err)
}

func TestUserService_ExportUsers_NotConfigured(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.ExportUsers(context.Background(), "x")
	assert.ErrorIs(t, err, core.ErrExportNotConfigured)
}
