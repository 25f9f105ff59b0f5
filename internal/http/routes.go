package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "pet-sitter.com/pet-sitter/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, auth middleware.Authenticator, rateLimitPerMinute int) {
	limiter := middleware.RateLimiter(rateLimitPerMinute, time.Minute)

	e.GET("/health", h.Health)

	// Registered before the public group so unknown /api/v1 paths answer 404,
	// not 401.
	protected := e.Group("/api/v1", middleware.Auth(auth), limiter)

	protected.PATCH("/auth/password", h.ChangePassword)
	protected.GET("/users/me", h.Me)
	protected.PATCH("/users/me", h.UpdateMe)

	protected.POST("/sitters", h.CreateSitter)
	protected.PATCH("/sitters/me", h.UpdateSitter)

	protected.POST("/pets", h.CreatePet)
	protected.GET("/pets", h.ListPets)
	protected.GET("/pets/:pet_id", h.GetPet)
	protected.PATCH("/pets/:pet_id", h.UpdatePet)
	protected.DELETE("/pets/:pet_id", h.DeletePet)

	protected.POST("/tasks", h.CreateTask)
	protected.GET("/tasks/mine", h.ListMyTasks)
	protected.PATCH("/tasks/:task_id", h.UpdateTask)
	protected.DELETE("/tasks/:task_id", h.DeleteTask)
	protected.GET("/tasks/:task_id/orders", h.ListTaskOrders)

	protected.POST("/orders", h.CreateOrder)
	protected.GET("/orders/pet-owner", h.ListPetOwnerOrders)
	protected.GET("/orders/sitter", h.ListSitterOrders)
	protected.GET("/orders/:order_id", h.GetOrder)
	protected.PATCH("/orders/:order_id/refuse-sitter", h.RefuseSitter)
	protected.PATCH("/orders/:order_id/accept-sitter", h.AcceptSitter)
	protected.PATCH("/orders/:order_id/paid", h.MarkPaid)
	protected.PATCH("/orders/:order_id/complete", h.CompleteOrder)
	protected.PATCH("/orders/:order_id/cancel", h.CancelOrder)
	protected.PATCH("/orders/:order_id/report", h.SubmitReport)

	protected.POST("/tasks/:task_id/comments", h.CreateComment)
	protected.PATCH("/comments/:comment_id", h.UpdateComment)
	protected.DELETE("/comments/:comment_id", h.DeleteComment)

	protected.POST("/tasks/:task_id/review", h.CreateReview)
	protected.PATCH("/tasks/:task_id/review", h.UpdateReview)

	protected.POST("/payment/checkout", h.Checkout)
	protected.POST("/uploads/images", h.UploadImage)

	public := e.Group("/api/v1", limiter)

	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)
	public.GET("/sitters/:user_id", h.GetSitter)
	public.GET("/tasks", h.ListTasks)
	public.GET("/tasks/:task_id", h.GetTask)
	public.GET("/tasks/:task_id/comments", h.ListComments)
	public.GET("/comments/:comment_id/replies", h.ListReplies)
	public.GET("/tasks/:task_id/review", h.GetReview)
	public.GET("/payment/complete", h.CompletePayment)
}
