package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nishantd01/grud/core"
	"github.com/nishantd01/grud/core/log"
	"github.com/nishantd01/grud/models"
	"github.com/nishantd01/grud/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded page templates
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

type pageData struct {
	Users         []models.User
	Toasts        []models.Toast
	Form          models.NewUserInput
	ExportEnabled bool
}

// PageController serves the users table as a server-rendered page
type PageController struct {
	userService *service.UserService
}

func NewPageController(userService *service.UserService) *PageController {
	return &PageController{userService: userService}
}

// Register installs the page templates and routes on r
func (ctl *PageController) Register(r *gin.Engine) {
	r.SetHTMLTemplate(Templates())
	r.GET("/", ctl.Index)
	r.POST("/reload", ctl.Reload)
	r.POST("/users", ctl.AddUser)
	r.POST("/users/:id/update", ctl.UpdateUser)
	r.POST("/users/:id/delete", ctl.DeleteUser)
	r.POST("/export", ctl.Export)
}

// GET /
func (ctl *PageController) Index(ctx *gin.Context) {
	ctl.render(ctx, http.StatusOK, models.NewUserInput{})
}

// POST /reload
func (ctl *PageController) Reload(ctx *gin.Context) {
	// a failed fetch leaves an empty table, the page still renders
	_ = ctl.userService.LoadUsers(ctx.Request.Context())
	ctl.backToIndex(ctx)
}

// POST /users
func (ctl *PageController) AddUser(ctx *gin.Context) {
	form := models.NewUserInput{
		Name:    ctx.PostForm(models.FieldName),
		Email:   ctx.PostForm(models.FieldEmail),
		Website: ctx.PostForm(models.FieldWebsite),
	}

	if _, err := ctl.userService.AddUser(ctx.Request.Context(), form); err != nil {
		// keep what was typed so it can be fixed and resubmitted
		status := http.StatusBadGateway
		if core.IsInvalidInputError(err) {
			status = http.StatusBadRequest
		}
		ctl.render(ctx, status, form)
		return
	}
	ctl.backToIndex(ctx)
}

// POST /users/:id/update applies the row's edited fields and syncs it
func (ctl *PageController) UpdateUser(ctx *gin.Context) {
	id, ok := ctl.userID(ctx)
	if !ok {
		return
	}

	for _, key := range models.EditableFields {
		value, present := ctx.GetPostForm(key)
		if !present {
			continue
		}
		if _, err := ctl.userService.EditField(id, key, value); err != nil {
			ctl.notFoundOrBack(ctx, err)
			return
		}
	}

	if _, err := ctl.userService.UpdateUser(ctx.Request.Context(), id); err != nil {
		ctl.notFoundOrBack(ctx, err)
		return
	}
	ctl.backToIndex(ctx)
}

// POST /users/:id/delete
func (ctl *PageController) DeleteUser(ctx *gin.Context) {
	id, ok := ctl.userID(ctx)
	if !ok {
		return
	}

	if err := ctl.userService.DeleteUser(ctx.Request.Context(), id); err != nil {
		ctl.notFoundOrBack(ctx, err)
		return
	}
	ctl.backToIndex(ctx)
}

// POST /export
func (ctl *PageController) Export(ctx *gin.Context) {
	if _, err := ctl.userService.ExportUsers(ctx.Request.Context(), ctx.PostForm("title")); err != nil {
		log.Warn("⚠️ Export from page failed", "error", err)
	}
	ctl.backToIndex(ctx)
}

func (ctl *PageController) render(ctx *gin.Context, status int, form models.NewUserInput) {
	ctx.HTML(status, "index.html", pageData{
		Users:         ctl.userService.ListUsers(),
		Toasts:        ctl.userService.Toasts(),
		Form:          form,
		ExportEnabled: ctl.userService.ExportEnabled(),
	})
}

func (ctl *PageController) userID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		ctx.String(http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}

// notFoundOrBack answers 404 for unknown rows; other failures already raised a toast
func (ctl *PageController) notFoundOrBack(ctx *gin.Context, err error) {
	if core.IsNotFoundError(err) {
		ctx.String(http.StatusNotFound, err.Error())
		return
	}
	ctl.backToIndex(ctx)
}

func (ctl *PageController) backToIndex(ctx *gin.Context) {
	ctx.Redirect(http.StatusSeeOther, "/")
}
