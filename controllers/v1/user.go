package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nishantd01/grud/core"
	"github.com/nishantd01/grud/core/log"
	"github.com/nishantd01/grud/models"
	"github.com/nishantd01/grud/service"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// Register mounts the users API on group
func (ctl *UserController) Register(group *gin.RouterGroup) {
	group.GET("/users", ctl.ListUsers)
	group.POST("/users", ctl.CreateUser)
	group.POST("/users/reload", ctl.ReloadUsers)
	group.GET("/users/:id", ctl.GetUser)
	group.PATCH("/users/:id", ctl.EditUser)
	group.PUT("/users/:id", ctl.UpdateUser)
	group.DELETE("/users/:id", ctl.DeleteUser)
	group.GET("/toasts", ctl.ListToasts)
	group.DELETE("/toasts/:id", ctl.DismissToast)
	group.POST("/export", ctl.ExportUsers)
}

// GET /v1/users
func (ctl *UserController) ListUsers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, ctl.userService.ListUsers())
}

// POST /v1/users/reload
func (ctl *UserController) ReloadUsers(ctx *gin.Context) {
	if err := ctl.userService.LoadUsers(ctx.Request.Context()); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ctl.userService.ListUsers())
}

// GET /v1/users/:id
func (ctl *UserController) GetUser(ctx *gin.Context) {
	id, ok := userID(ctx)
	if !ok {
		return
	}

	user, err := ctl.userService.GetUser(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// POST /v1/users
func (ctl *UserController) CreateUser(ctx *gin.Context) {
	var req models.NewUserInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "name, email and website are required"})
		return
	}

	user, err := ctl.userService.AddUser(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// PATCH /v1/users/:id edits one field locally
func (ctl *UserController) EditUser(ctx *gin.Context) {
	id, ok := userID(ctx)
	if !ok {
		return
	}

	var req models.FieldEdit
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := ctl.userService.EditField(id, req.Key, req.Value)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// PUT /v1/users/:id sends the local row to the users API
func (ctl *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := userID(ctx)
	if !ok {
		return
	}

	user, err := ctl.userService.UpdateUser(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// DELETE /v1/users/:id
func (ctl *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := userID(ctx)
	if !ok {
		return
	}

	if err := ctl.userService.DeleteUser(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GET /v1/toasts
func (ctl *UserController) ListToasts(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, ctl.userService.Toasts())
}

// DELETE /v1/toasts/:id
func (ctl *UserController) DismissToast(ctx *gin.Context) {
	if !ctl.userService.DismissToast(ctx.Param("id")) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "toast not found"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// POST /v1/export
func (ctl *UserController) ExportUsers(ctx *gin.Context) {
	var req models.ExportRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	resp, err := ctl.userService.ExportUsers(ctx.Request.Context(), req.Title)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func userID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return id, true
}

func respondError(ctx *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error("❌ Request failed", "path", ctx.FullPath(), "error", err)
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

// StatusFor maps service errors to HTTP statuses; anything unknown is an upstream failure
func StatusFor(err error) int {
	switch {
	case core.IsNotFoundError(err):
		return http.StatusNotFound
	case core.IsInvalidInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrExportNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
