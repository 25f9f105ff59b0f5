package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "pet-sitter.com/pet-sitter/internal/data_models"
	"pet-sitter.com/pet-sitter/internal/services"
	"pet-sitter.com/pet-sitter/internal/storage"
)

type Handler struct {
	authService    *services.AuthService
	userService    *services.UserService
	sitterService  *services.SitterService
	petService     *services.PetService
	taskService    *services.TaskService
	orderService   *services.OrderService
	reviewService  *services.ReviewService
	commentService *services.CommentService
	paymentService *services.PaymentService
	images         storage.ImageStore
}

type Services struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Sitters  *services.SitterService
	Pets     *services.PetService
	Tasks    *services.TaskService
	Orders   *services.OrderService
	Reviews  *services.ReviewService
	Comments *services.CommentService
	Payments *services.PaymentService
	Images   storage.ImageStore
}

func NewHandler(s Services) *Handler {
	return &Handler{
		authService:    s.Auth,
		userService:    s.Users,
		sitterService:  s.Sitters,
		petService:     s.Pets,
		taskService:    s.Tasks,
		orderService:   s.Orders,
		reviewService:  s.Reviews,
		commentService: s.Comments,
		paymentService: s.Payments,
		images:         s.Images,
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": true})
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, echo.Map{
		"status": true,
		"data":   data,
	})
}

func respondPage(c echo.Context, items any, total int64, page, limit int) error {
	return respond(c, http.StatusOK, dto.PageResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
