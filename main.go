package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nishantd01/grud/clients/placeholder"
	"github.com/nishantd01/grud/config"
	v1 "github.com/nishantd01/grud/controllers/v1"
	"github.com/nishantd01/grud/controllers/web"
	"github.com/nishantd01/grud/core/log"
	"github.com/nishantd01/grud/db"
	"github.com/nishantd01/grud/service"
	"github.com/nishantd01/grud/utils"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if config.IsHelp(err) {
		os.Exit(0)
	}
	if err != nil {
		log.Error("❌ Failed to load config", "error", err)
		os.Exit(1)
	}
	log.SetLevel(log.ParseLevel(cfg.LogLevel))

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	usersAPI := placeholder.NewClient(cfg.UsersAPIBaseURL, cfg.HTTPTimeout)
	var exporter service.Exporter
	if cfg.GoogleConfig.IsConfigured() {
		exporter = utils.NewSheetExporter(cfg.GoogleConfig.CredentialsFile, cfg.GoogleConfig.TokenFile)
	}
	userService := service.NewUserService(usersAPI, db.NewUserStore(), service.NewToaster(cfg.ToastTimeout, cfg.ToastLimit), exporter)

	// initial fetch; on failure the table starts empty
	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	_ = userService.LoadUsers(loadCtx)
	cancel()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, userService),
		ReadHeaderTimeout: 30 * time.Second,
	}

	if err := handleGracefulShutdown(server); err != nil {
		os.Exit(1)
	}
}

func newRouter(cfg *config.AppConfig, userService *service.UserService) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	web.NewPageController(userService).Register(r)
	v1.NewUserController(userService).Register(r.Group("/api/v1"))
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("✅ Listening", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("❌ Server error", "error", err)
			stop <- syscall.SIGTERM
		}
	}()

	<-stop
	log.Info("🛑 Shutdown signal received, cleaning up...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("❌ Server shutdown error", "error", err)
		return err
	}

	log.Info("✅ Server stopped gracefully")
	return nil
}
