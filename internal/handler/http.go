package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-order-service/internal/middleware"
	"github.com/SergeyBogomolovv/shop-order-service/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	CreateOrder(ctx context.Context, p entities.Principal, in entities.CreateOrderInput) (entities.Order, error)
	GetOrder(ctx context.Context, p entities.Principal, orderID string) (entities.Order, error)
	MyOrders(ctx context.Context, p entities.Principal) ([]entities.Order, error)
	AllOrders(ctx context.Context) ([]entities.Order, error)
	SetStatus(ctx context.Context, orderID string, status entities.Status) (entities.Order, error)
}

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, p entities.Principal, orderID string, amount decimal.Decimal) (entities.PaymentIntent, error)
	VerifyPayment(ctx context.Context, p entities.Principal, cb entities.PaymentCallback) (entities.Order, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	tokens   middleware.TokenVerifier
	roles    middleware.RoleResolver
	orders   OrderService
	payments PaymentService
}

func NewHTTPHandler(
	logger *slog.Logger,
	tokens middleware.TokenVerifier,
	roles middleware.RoleResolver,
	orders OrderService,
	payments PaymentService,
) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: newValidator(),
		tokens:   tokens,
		roles:    roles,
		orders:   orders,
		payments: payments,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(h.tokens, h.roles))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.CreateOrder)
			r.Get("/myorders", h.MyOrders)
			r.Get("/{id}", h.GetOrder)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.AllOrders)
				r.Put("/{id}", h.UpdateStatus)
			})
		})

		r.Route("/payment", func(r chi.Router) {
			r.Post("/create-order", h.CreatePaymentIntent)
			r.Post("/verify", h.VerifyPayment)
		})
	})
}

// CreateOrder создаёт заказ текущего пользователя.
// @Summary      Создать заказ
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        order  body      CreateOrderRequest  true  "Позиции, сумма и адрес доставки"
// @Success      201    {object}  Order
// @Failure      400    {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      401    {object}  utils.ErrorResponse "Не авторизован"
// @Failure      500    {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := h.principal(w, r)
	if p == nil {
		return
	}

	var req CreateOrderRequest
	if err := utils.DecodeBody(w, r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.CreateOrder(ctx, *p, CreateOrderJSONToEntity(req))
	if err != nil {
		h.writeError(ctx, w, err, "failed to create order")
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// MyOrders возвращает заказы текущего пользователя, новые первыми.
// @Summary      Мои заказы
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Order
// @Failure      401  {object}  utils.ErrorResponse "Не авторизован"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/orders/myorders [get]
func (h *HTTPHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := h.principal(w, r)
	if p == nil {
		return
	}

	orders, err := h.orders.MyOrders(ctx, *p)
	if err != nil {
		h.writeError(ctx, w, err, "failed to get user orders")
		return
	}

	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

// AllOrders возвращает все заказы с данными покупателя.
// @Summary      Все заказы
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Order
// @Failure      401  {object}  utils.ErrorResponse "Не авторизован"
// @Failure      403  {object}  utils.ErrorResponse "Только для администратора"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/orders [get]
func (h *HTTPHandler) AllOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.orders.AllOrders(ctx)
	if err != nil {
		h.writeError(ctx, w, err, "failed to get orders")
		return
	}

	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

// GetOrder возвращает заказ по ID.
// @Summary      Получить заказ
// @Description  Доступно владельцу заказа и администратору
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Идентификатор заказа"
// @Success      200  {object}  Order
// @Failure      401  {object}  utils.ErrorResponse "Не авторизован"
// @Failure      403  {object}  utils.ErrorResponse "Чужой заказ"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/orders/{id} [get]
func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := h.principal(w, r)
	if p == nil {
		return
	}
	orderID := chi.URLParam(r, "id")

	order, err := h.orders.GetOrder(ctx, *p, orderID)
	if err != nil {
		h.writeError(ctx, w, err, "failed to get order", slog.String("order_id", orderID))
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// UpdateStatus меняет статус заказа.
// @Summary      Изменить статус заказа
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path      string               true  "Идентификатор заказа"
// @Param        status  body      UpdateStatusRequest  true  "Новый статус"
// @Success      200     {object}  Order
// @Failure      400     {object}  utils.ValidationErrorResponse "Недопустимый статус"
// @Failure      401     {object}  utils.ErrorResponse "Не авторизован"
// @Failure      403     {object}  utils.ErrorResponse "Только для администратора"
// @Failure      404     {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500     {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/orders/{id} [put]
func (h *HTTPHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := utils.DecodeBody(w, r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.SetStatus(ctx, orderID, entities.Status(req.Status))
	if err != nil {
		h.writeError(ctx, w, err, "failed to update order status", slog.String("order_id", orderID))
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// CreatePaymentIntent создаёт заказ в платёжном шлюзе на сумму заказа.
// @Summary      Создать платёж
// @Tags         payment
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payment  body      CreatePaymentRequest  true  "Сумма и идентификатор заказа"
// @Success      200      {object}  PaymentIntentResponse
// @Failure      400      {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      401      {object}  utils.ErrorResponse "Не авторизован"
// @Failure      403      {object}  utils.ErrorResponse "Чужой заказ"
// @Failure      404      {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409      {object}  utils.ErrorResponse "Заказ уже оплачен"
// @Failure      502      {object}  utils.ErrorResponse "Ошибка платёжного шлюза"
// @Router       /api/payment/create-order [post]
func (h *HTTPHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := h.principal(w, r)
	if p == nil {
		return
	}

	var req CreatePaymentRequest
	if err := utils.DecodeBody(w, r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	start := time.Now()
	intent, err := h.payments.CreatePaymentIntent(ctx, *p, req.OrderID, req.Amount)
	gatewayRequestDuration.Observe(time.Since(start).Seconds())
	paymentIntentsTotal.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		h.writeError(ctx, w, err, "failed to create payment intent", slog.String("order_id", req.OrderID))
		return
	}

	utils.WriteJSON(w, PaymentIntentEntityToJSON(intent), http.StatusOK)
}

// VerifyPayment проверяет подпись callback'а и помечает заказ оплаченным.
// @Summary      Подтвердить платёж
// @Tags         payment
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        callback  body      VerifyPaymentRequest  true  "Данные checkout"
// @Success      200       {object}  VerifyPaymentResponse
// @Failure      400       {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      401       {object}  utils.ErrorResponse "Неверная подпись"
// @Failure      403       {object}  utils.ErrorResponse "Чужой заказ"
// @Failure      404       {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409       {object}  utils.ErrorResponse "Заказ уже оплачен другим платежом"
// @Failure      500       {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /api/payment/verify [post]
func (h *HTTPHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := h.principal(w, r)
	if p == nil {
		return
	}

	var req VerifyPaymentRequest
	if err := utils.DecodeBody(w, r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.payments.VerifyPayment(ctx, *p, VerifyPaymentJSONToEntity(req))
	paymentVerificationsTotal.WithLabelValues("http", resultLabel(err)).Inc()
	if err != nil {
		h.writeError(ctx, w, err, "failed to verify payment", slog.String("order_id", req.OrderID))
		return
	}

	utils.WriteJSON(w, VerifyPaymentResponse{
		Success: true,
		Message: "Payment verified successfully",
		Order:   OrderEntityToJSON(order),
	}, http.StatusOK)
}

func (h *HTTPHandler) principal(w http.ResponseWriter, r *http.Request) *entities.Principal {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		utils.WriteError(w, "not authorized", http.StatusUnauthorized)
		return nil
	}
	return &p
}

func (h *HTTPHandler) writeError(ctx context.Context, w http.ResponseWriter, err error, msg string, attrs ...any) {
	switch {
	case errors.Is(err, entities.ErrValidation):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, entities.ErrAuthentication):
		utils.WriteError(w, "payment verification failed", http.StatusUnauthorized)
	case errors.Is(err, entities.ErrForbidden):
		utils.WriteError(w, "not authorized to access this order", http.StatusForbidden)
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrAlreadyPaid):
		utils.WriteError(w, "order is already paid", http.StatusConflict)
	case errors.Is(err, entities.ErrGateway):
		h.logger.ErrorContext(ctx, msg, append(attrs, slog.Any("error", err))...)
		utils.WriteError(w, "payment gateway error", http.StatusBadGateway)
	default:
		h.logger.ErrorContext(ctx, msg, append(attrs, slog.Any("error", err))...)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

// Ошибки валидации отдаются по json-именам полей
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
