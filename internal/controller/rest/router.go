package rest

import (
	"context"
	"net/http"

	"github.com/Freeeeeet/appointment_service/internal/auth"
	"github.com/Freeeeeet/appointment_service/internal/ratelimit"
	"github.com/Freeeeeet/appointment_service/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps - зависимости HTTP слоя
type Deps struct {
	Appointments *service.AppointmentService
	Users        *service.UserService
	Payments     *service.PaymentService
	Issuer       *auth.TokenIssuer
	AuthLimiter  *ratelimit.Limiter
	Logger       *zap.Logger

	// Ping проверяет БД для /healthz, может быть nil
	Ping func(ctx context.Context) error
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(d.Logger))
	r.Use(Recovery(d.Logger))
	r.Use(CORS())

	authHandler := NewAuthHandler(d.Users, d.Issuer, d.Logger)
	appointmentHandler := NewAppointmentHandler(d.Appointments, d.Logger)
	adminHandler := NewAdminHandler(d.Appointments, d.Users, d.Logger)
	paymentHandler := NewPaymentHandler(d.Payments, d.Logger)

	requireAuth := Auth(d.Issuer)

	r.GET("/healthz", func(c *gin.Context) {
		if d.Ping != nil {
			if err := d.Ping(c.Request.Context()); err != nil {
				d.Logger.Warn("Health check failed", zap.Error(err))
				respondFail(c, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		respond(c, http.StatusOK, "ok", nil)
	})

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			limited := authGroup.Group("", RateLimit(d.AuthLimiter))
			limited.POST("/register", authHandler.Register)
			limited.POST("/login", authHandler.Login)
			authGroup.GET("/profile", requireAuth, authHandler.Profile)
		}

		appointments := api.Group("/appointments", requireAuth)
		{
			appointments.POST("", appointmentHandler.Create)
			appointments.GET("", appointmentHandler.List)
			appointments.GET("/slots/:date", appointmentHandler.Slots)
			appointments.GET("/:id", appointmentHandler.Get)
			appointments.PUT("/:id", appointmentHandler.Update)
			appointments.DELETE("/:id", appointmentHandler.Cancel)
		}

		admin := api.Group("/admin", requireAuth, RequireAdmin())
		{
			admin.GET("/appointments", adminHandler.ListAppointments)
			admin.GET("/appointments/upcoming", adminHandler.Upcoming)
			admin.PUT("/appointments/:id", adminHandler.UpdateAppointment)
			admin.POST("/appointments/:id/cancel", adminHandler.CancelAppointment)
			admin.DELETE("/appointments/:id", adminHandler.DeleteAppointment)
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/users", adminHandler.Users)
			admin.GET("/users/:id/appointments", adminHandler.UserAppointments)
		}

		payments := api.Group("/payments")
		{
			payments.GET("/config", paymentHandler.Config)
			payments.POST("/create-payment-intent", requireAuth, paymentHandler.CreateIntent)
			payments.POST("/confirm-payment", requireAuth, paymentHandler.Confirm)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		respondFail(c, http.StatusNotFound, "route not found")
	})

	return r
}
