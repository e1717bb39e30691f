package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/mroshb/raffle_api/internal/middleware"
	"github.com/mroshb/raffle_api/internal/models"
)

// NewRouter wires every API route. limiter may be nil.
func NewRouter(h *HandlerManager, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = h.Config.UploadMaxSize
	r.Use(middleware.Recovery(), middleware.RequestLogger(), middleware.CORS(h.Config.CORSAllowedOrigins))

	r.GET("/health", h.Health)

	api := r.Group("/api")
	if limiter != nil {
		api.Use(limiter.Middleware())
	}

	auth := middleware.RequireAuth(h.Config.JWTSecret, h.UserRepo)
	staff := middleware.RequireRoles(models.RoleAgent, models.RoleAdmin)

	users := api.Group("/users")
	users.POST("/login", h.Login)
	users.GET("/me", auth, h.Me)
	users.POST("", auth, staff, h.CreateUser)
	users.GET("", auth, staff, h.ListUsers)
	users.GET("/:id", auth, staff, h.GetUser)
	users.PUT("/:id", auth, staff, h.UpdateUser)
	users.DELETE("/:id", auth, staff, h.DeleteUser)

	raffles := api.Group("/raffles", auth)
	raffles.GET("", h.ListRaffles)
	raffles.GET("/:id", h.GetRaffle)
	raffles.POST("", staff, h.CreateRaffle)
	raffles.PUT("/:id", staff, h.UpdateRaffle)
	raffles.DELETE("/:id", staff, h.DeleteRaffle)

	tickets := api.Group("/tickets", auth)
	tickets.POST("", h.PurchaseTicket)
	tickets.GET("", staff, h.ListTickets)
	tickets.GET("/export", staff, h.ExportTickets)
	tickets.GET("/user/:userId", h.GetTicketsByUser)
	tickets.GET("/:id", staff, h.GetTicket)
	tickets.DELETE("/:id", staff, h.DeleteTicket)

	transactions := api.Group("/transactions", auth)
	transactions.POST("", h.CreateTransaction)
	transactions.GET("/user", h.ListMyTransactions)
	transactions.GET("", staff, h.ListTransactions)
	transactions.GET("/export", staff, h.ExportTransactions)
	transactions.GET("/:id", staff, h.GetTransaction)
	transactions.DELETE("/:id", staff, h.DeleteTransaction)

	clients := api.Group("/clients")
	clients.PUT("/status-update-accept", h.AcceptCookies)
	clients.PUT("/status-update-deny", h.DenyCookies)
	clients.GET("", auth, h.ListClients)
	clients.POST("", auth, staff, h.CreateClient)
	clients.PUT("/:id", auth, staff, h.UpdateClient)
	clients.DELETE("/:id", auth, staff, h.DeleteClient)

	return r
}
