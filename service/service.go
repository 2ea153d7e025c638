package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nishantd01/grud/clients"
	"github.com/nishantd01/grud/core"
	"github.com/nishantd01/grud/core/log"
	"github.com/nishantd01/grud/db"
	"github.com/nishantd01/grud/models"
	"github.com/nishantd01/grud/utils"
)

const (
	MsgUserAdded     = "User added successfully!!!"
	MsgUserUpdated   = "User updated successfully!!!"
	MsgUserDeleted   = "User deleted successfully!!!"
	MsgUsersExported = "Users exported to spreadsheet"
	MsgFieldsMissing = "Name, e-mail and website are all required"
)

// Exporter writes a table to a new spreadsheet and returns its id
type Exporter interface {
	Export(ctx context.Context, title string, data [][]interface{}) (string, error)
}

type UserService struct {
	api      clients.UsersAPI
	store    *db.UserStore
	toaster  *Toaster
	exporter Exporter
}

// NewUserService wires the service; exporter may be nil when export is not configured
func NewUserService(api clients.UsersAPI, store *db.UserStore, toaster *Toaster, exporter Exporter) *UserService {
	return &UserService{api: api, store: store, toaster: toaster, exporter: exporter}
}

// LoadUsers fetches the table from the users API. On failure the local
// table is left empty and the error is returned for logging only.
func (s *UserService) LoadUsers(ctx context.Context) error {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		log.Error("❌ Error fetching users", "error", err)
		s.store.Replace(nil)
		return fmt.Errorf("failed to load users: %w", err)
	}
	s.store.Replace(users)
	log.Info("📋 Loaded users", "count", len(users))
	return nil
}

func (s *UserService) ListUsers() []models.User {
	return s.store.List()
}

func (s *UserService) GetUser(id int) (models.User, error) {
	user, ok := s.store.Get(id).Get()
	if !ok {
		return models.User{}, fmt.Errorf("user %d: %w", id, core.ErrNotFound)
	}
	return user, nil
}

func (s *UserService) AddUser(ctx context.Context, in models.NewUserInput) (models.User, error) {
	in, err := in.Normalize()
	if err != nil {
		s.toaster.Show(MsgFieldsMissing, models.IntentWarning)
		return models.User{}, err
	}

	created, err := s.api.CreateUser(ctx, in)
	if err != nil {
		return models.User{}, s.failed("add user", err)
	}

	user := s.store.Append(*created)
	s.toaster.Show(MsgUserAdded, models.IntentSuccess)
	log.Info("✅ User added", "id", user.ID, "upstream_id", created.ID)
	return user, nil
}

// EditField changes one field of the local row only; UpdateUser sends it upstream
func (s *UserService) EditField(id int, key, value string) (models.User, error) {
	return s.store.SetField(id, key, value)
}

func (s *UserService) UpdateUser(ctx context.Context, id int) (models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return models.User{}, err
	}

	updated, err := s.api.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, s.failed("update user", err)
	}

	stored, err := s.store.ReplaceByID(id, *updated)
	if err != nil {
		// the row was deleted while the update was in flight
		log.Warn("⚠️ Updated user no longer in table", "id", id)
		return models.User{}, err
	}

	s.toaster.Show(MsgUserUpdated, models.IntentSuccess)
	log.Info("✅ User updated", "id", id)
	return stored, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	if _, err := s.GetUser(id); err != nil {
		return err
	}

	if err := s.api.DeleteUser(ctx, id); err != nil {
		return s.failed("delete user", err)
	}

	s.store.Remove(id)
	s.toaster.Show(MsgUserDeleted, models.IntentDanger)
	log.Info("🗑️ User deleted", "id", id)
	return nil
}

func (s *UserService) ExportUsers(ctx context.Context, title string) (*models.ExportResponse, error) {
	if s.exporter == nil {
		return nil, core.ErrExportNotConfigured
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = "Users " + time.Now().Format("2006-01-02 15:04")
	}

	users := s.store.List()
	spreadsheetID, err := s.exporter.Export(ctx, title, utils.UsersToSheetData(users))
	if err != nil {
		return nil, s.failed("export users", err)
	}

	url := utils.SpreadsheetURL(spreadsheetID)
	s.toaster.Show(MsgUsersExported+": "+url, models.IntentPrimary)
	return &models.ExportResponse{
		SpreadsheetID: spreadsheetID,
		URL:           url,
		Rows:          len(users),
	}, nil
}

func (s *UserService) ExportEnabled() bool {
	return s.exporter != nil
}

func (s *UserService) Toasts() []models.Toast {
	return s.toaster.Active()
}

func (s *UserService) DismissToast(id string) bool {
	return s.toaster.Dismiss(id)
}

func (s *UserService) failed(action string, err error) error {
	log.Error("❌ Request failed", "action", action, "error", err)
	s.toaster.Show(fmt.Sprintf("Failed to %s: %v", action, err), models.IntentDanger)
	return fmt.Errorf("failed to %s: %w", action, err)
}
