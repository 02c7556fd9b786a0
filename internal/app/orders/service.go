package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"softglow/internal/domain"
	"softglow/internal/events"
	"softglow/internal/infrastructure/kafka"
	"softglow/internal/infrastructure/razorpay"
	"softglow/internal/repository/cart_repo"
	"softglow/internal/repository/customer_repo"
	"softglow/internal/repository/order_repo"
	"softglow/internal/repository/outbox_repo"
	"softglow/internal/repository/product_repo"
	"softglow/internal/util"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrInvalidSignature   = errors.New("payment signature verification failed")
	ErrInvalidStatus      = errors.New("unknown order status")
	ErrInvoiceUnavailable = errors.New("invoice is only available for completed orders")
)

// ProfileIncompleteError names the specific fields the client has to prompt
// for before payment can start.
type ProfileIncompleteError struct {
	Fields []string
}

func (e *ProfileIncompleteError) Error() string {
	return "profile incomplete: missing " + strings.Join(e.Fields, ", ")
}

type OrderService interface {
	CreatePaymentOrder(ctx context.Context, customerID string) (*CreatePaymentResponse, error)
	VerifyPayment(ctx context.Context, customerID string, req *VerifyPaymentRequest) (*VerifyPaymentResponse, error)
	GetCustomerOrders(ctx context.Context, customerID string) ([]*OrderResponse, error)
	GetCustomerOrder(ctx context.Context, customerID, orderID string) (*OrderResponse, error)
	CancelOrder(ctx context.Context, customerID, orderID string) (*OrderResponse, error)
	ReturnOrder(ctx context.Context, customerID, orderID string) (*OrderResponse, error)
	WriteInvoice(ctx context.Context, customerID, orderID string, w io.Writer) error
	GetAllOrders(ctx context.Context) ([]*OrderResponse, error)
	GetOrder(ctx context.Context, orderID string) (*OrderResponse, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, note string) (*OrderResponse, error)
	ProcessOutbox(ctx context.Context) error
}

type orderService struct {
	orderRepo     order_repo.OrderRepository
	cartRepo      cart_repo.CartRepository
	productRepo   product_repo.ProductRepository
	customerRepo  customer_repo.CustomerRepository
	outboxRepo    outbox_repo.OutboxRepository
	kafkaProducer kafka.Producer
	gateway       razorpay.Gateway

	orderEventsTopic string
	emailsTopic      string
	currency         string

	logger *zap.Logger
}

func NewOrderService(
	orderRepo order_repo.OrderRepository,
	cartRepo cart_repo.CartRepository,
	productRepo product_repo.ProductRepository,
	customerRepo customer_repo.CustomerRepository,
	outboxRepo outbox_repo.OutboxRepository,
	kafkaProducer kafka.Producer,
	gateway razorpay.Gateway,
	orderEventsTopic, emailsTopic, currency string,
	logger *zap.Logger,
) OrderService {
	return &orderService{
		orderRepo:        orderRepo,
		cartRepo:         cartRepo,
		productRepo:      productRepo,
		customerRepo:     customerRepo,
		outboxRepo:       outboxRepo,
		kafkaProducer:    kafkaProducer,
		gateway:          gateway,
		orderEventsTopic: orderEventsTopic,
		emailsTopic:      emailsTopic,
		currency:         currency,
		logger:           logger,
	}
}

// cartTotal recomputes the chargeable amount from the currently listed
// product prices, not the prices captured in the cart. Prices are already in
// the gateway's minor unit, so the sum needs no rounding.
func (s *orderService) cartTotal(ctx context.Context, cart *domain.Cart) (int64, []domain.OrderItem, error) {
	var total int64
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to load product %s: %w", line.ProductID, err)
		}
		total += product.Price * line.Quantity
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
		})
	}
	return total, items, nil
}

func (s *orderService) CreatePaymentOrder(ctx context.Context, customerID string) (*CreatePaymentResponse, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		s.logger.Error("Failed to load customer for payment order", zap.String("customer_id", customerID), zap.Error(err))
		return nil, err
	}
	if missing := customer.MissingProfileFields(); len(missing) > 0 {
		return nil, &ProfileIncompleteError{Fields: missing}
	}

	cart, err := s.cartRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return nil, ErrCartEmpty
		}
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	total, _, err := s.cartTotal(ctx, cart)
	if err != nil {
		return nil, err
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, total, s.currency, "rcpt_"+util.GenerateUUID())
	if err != nil {
		s.logger.Error("Failed to create gateway order", zap.String("customer_id", customerID), zap.Error(err))
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	s.logger.Info("Gateway payment order created",
		zap.String("customer_id", customerID),
		zap.String("gateway_order_id", gatewayOrder.ID),
		zap.Int64("amount", total))

	return &CreatePaymentResponse{
		OrderID:  gatewayOrder.ID,
		Amount:   total,
		Currency: s.currency,
		Key:      s.gateway.KeyID(),
	}, nil
}

func (s *orderService) VerifyPayment(ctx context.Context, customerID string, req *VerifyPaymentRequest) (*VerifyPaymentResponse, error) {
	if !s.gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature) {
		s.logger.Warn("Payment signature mismatch",
			zap.String("customer_id", customerID),
			zap.String("gateway_order_id", req.GatewayOrderID))
		return nil, ErrInvalidSignature
	}

	// Idempotent replay: a second callback for the same payment id returns
	// the order that already exists.
	existing, err := s.orderRepo.GetByGatewayPaymentID(ctx, req.GatewayPaymentID)
	if err == nil {
		s.logger.Info("Duplicate payment verification, returning existing order",
			zap.String("gateway_payment_id", req.GatewayPaymentID),
			zap.String("order_id", existing.ID))
		return &VerifyPaymentResponse{
			Message: "Payment already verified",
			Order:   mapOrderToSummary(existing),
		}, nil
	}
	if !errors.Is(err, domain.ErrOrderNotFound) {
		return nil, err
	}

	// The cart is re-fetched here; whatever it holds now is what gets
	// ordered.
	cart, err := s.cartRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return nil, ErrCartEmpty
		}
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	total, items, err := s.cartTotal(ctx, cart)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(util.GenerateUUID(), customerID, items, total, s.currency, customer.ShippingAddress())
	if err != nil {
		return nil, fmt.Errorf("failed to build order: %w", err)
	}
	order.PaymentStatus = domain.PaymentStatusPaid
	order.GatewayOrderID = req.GatewayOrderID
	order.GatewayPaymentID = req.GatewayPaymentID
	order.GatewaySignature = req.GatewaySignature

	msgs, err := s.placedOutboxMessages(order, customer)
	if err != nil {
		return nil, err
	}

	err = s.orderRepo.CreateOrderAndOutboxMessages(ctx, order, msgs)
	if errors.Is(err, domain.ErrDuplicatePayment) {
		// Lost the insert race against a concurrent callback; hand back the
		// winner's order.
		existing, lookupErr := s.orderRepo.GetByGatewayPaymentID(ctx, req.GatewayPaymentID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		return &VerifyPaymentResponse{
			Message: "Payment already verified",
			Order:   mapOrderToSummary(existing),
		}, nil
	}
	if err != nil {
		s.logger.Error("Failed to save order", zap.String("order_id", order.ID), zap.Error(err))
		return nil, errors.New("failed to save order")
	}

	s.logger.Info("Order created from verified payment",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Int64("total_amount", order.TotalAmount))

	// Post-insert effects are each independently fallible and never undo the
	// saved order.
	for _, item := range order.Items {
		if err := s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error("Failed to decrement stock after order",
				zap.String("order_id", order.ID),
				zap.String("product_id", item.ProductID),
				zap.Int64("quantity", item.Quantity),
				zap.Error(err))
		}
	}
	if err := s.cartRepo.Clear(ctx, cart.ID); err != nil {
		s.logger.Error("Failed to clear cart after order",
			zap.String("order_id", order.ID),
			zap.String("cart_id", cart.ID),
			zap.Error(err))
	}

	return &VerifyPaymentResponse{
		Message: "Payment verified and order placed",
		Order:   mapOrderToSummary(order),
	}, nil
}

func (s *orderService) placedOutboxMessages(order *domain.Order, customer *domain.Customer) ([]*outbox_repo.OutboxMessage, error) {
	orderMsg, err := newOutboxMessage(s.orderEventsTopic, order.ID, events.OrderEvent{
		Type:            events.TypeOrderPlaced,
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		Status:          string(order.Status),
		CustomerTitle:   "Order placed",
		CustomerMessage: fmt.Sprintf("Thank you for your order %s! We will confirm it shortly.", order.OrderNumber),
		AdminTitle:      "New order",
		AdminMessage:    fmt.Sprintf("Order %s has been placed.", order.OrderNumber),
		NotifyAdmins:    true,
	})
	if err != nil {
		return nil, err
	}

	emailMsg, err := newOutboxMessage(s.emailsTopic, order.ID, events.EmailEvent{
		To:       customer.Email,
		Subject:  fmt.Sprintf("Your SoftGlow order %s", order.OrderNumber),
		Template: "order_confirmation",
		Data: map[string]string{
			"order_number": order.OrderNumber,
			"total_amount": fmt.Sprintf("%d", order.TotalAmount),
			"currency":     order.Currency,
		},
	})
	if err != nil {
		return nil, err
	}

	return []*outbox_repo.OutboxMessage{orderMsg, emailMsg}, nil
}

func newOutboxMessage(topic, key string, payload interface{}) (*outbox_repo.OutboxMessage, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal outbox payload: %w", err)
	}
	return &outbox_repo.OutboxMessage{
		ID:        util.GenerateUUID(),
		Topic:     topic,
		Key:       key,
		Payload:   payloadBytes,
		Status:    outbox_repo.StatusPending,
		CreatedAt: time.Now(),
	}, nil
}

func (s *orderService) GetCustomerOrders(ctx context.Context, customerID string) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error("Failed to list orders for customer", zap.String("customer_id", customerID), zap.Error(err))
		return nil, errors.New("internal server error")
	}
	return mapOrdersToResponse(orders), nil
}

// getOwnedOrder loads an order and hides other customers' orders behind
// not-found.
func (s *orderService) getOwnedOrder(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) GetCustomerOrder(ctx context.Context, customerID, orderID string) (*OrderResponse, error) {
	order, err := s.getOwnedOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	return mapOrderToResponse(order), nil
}

func (s *orderService) CancelOrder(ctx context.Context, customerID, orderID string) (*OrderResponse, error) {
	order, err := s.getOwnedOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}

	before := len(order.History)
	if err := order.Cancel("Cancelled by customer"); err != nil {
		return nil, err
	}

	msg, err := newOutboxMessage(s.orderEventsTopic, order.ID, events.OrderEvent{
		Type:            events.TypeOrderCancelled,
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		Status:          string(order.Status),
		CustomerTitle:   "Order cancelled",
		CustomerMessage: domain.OrderStatusMessages[domain.OrderStatusCancelled],
		AdminTitle:      "Order cancelled",
		AdminMessage:    fmt.Sprintf("Order %s was cancelled by the customer.", order.OrderNumber),
		NotifyAdmins:    true,
	})
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatusAndOutboxMessages(ctx, order, order.History[before:], []*outbox_repo.OutboxMessage{msg}); err != nil {
		s.logger.Error("Failed to persist order cancellation", zap.String("order_id", order.ID), zap.Error(err))
		return nil, errors.New("failed to cancel order")
	}

	s.logger.Info("Order cancelled by customer", zap.String("order_id", order.ID))
	return mapOrderToResponse(order), nil
}

func (s *orderService) ReturnOrder(ctx context.Context, customerID, orderID string) (*OrderResponse, error) {
	order, err := s.getOwnedOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}

	before := len(order.History)
	if err := order.RequestReturn("Return requested by customer", time.Now()); err != nil {
		return nil, err
	}

	msg, err := newOutboxMessage(s.orderEventsTopic, order.ID, events.OrderEvent{
		Type:            events.TypeOrderReturnRequested,
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		Status:          string(order.Status),
		CustomerTitle:   "Return requested",
		CustomerMessage: domain.OrderStatusMessages[domain.OrderStatusReturn],
		AdminTitle:      "Return requested",
		AdminMessage:    fmt.Sprintf("A return was requested for order %s.", order.OrderNumber),
		NotifyAdmins:    true,
	})
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatusAndOutboxMessages(ctx, order, order.History[before:], []*outbox_repo.OutboxMessage{msg}); err != nil {
		s.logger.Error("Failed to persist return request", zap.String("order_id", order.ID), zap.Error(err))
		return nil, errors.New("failed to request return")
	}

	s.logger.Info("Return requested", zap.String("order_id", order.ID))
	return mapOrderToResponse(order), nil
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list all orders", zap.Error(err))
		return nil, errors.New("internal server error")
	}
	return mapOrdersToResponse(orders), nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return mapOrderToResponse(order), nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, note string) (*OrderResponse, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	before := len(order.History)
	if err := order.SetStatus(status, note); err != nil {
		return nil, err
	}

	msg, err := newOutboxMessage(s.orderEventsTopic, order.ID, events.OrderEvent{
		Type:            events.TypeOrderStatusChanged,
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		Status:          string(status),
		CustomerTitle:   "Order update",
		CustomerMessage: domain.OrderStatusMessages[status],
		AdminTitle:      "Order refunded",
		AdminMessage:    fmt.Sprintf("Order %s has been refunded.", order.OrderNumber),
		NotifyAdmins:    status == domain.OrderStatusRefunded,
	})
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatusAndOutboxMessages(ctx, order, order.History[before:], []*outbox_repo.OutboxMessage{msg}); err != nil {
		s.logger.Error("Failed to persist status update",
			zap.String("order_id", order.ID),
			zap.String("new_status", string(status)),
			zap.Error(err))
		return nil, errors.New("failed to update order status")
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", order.ID),
		zap.String("new_status", string(status)))
	return mapOrderToResponse(order), nil
}

func (s *orderService) ProcessOutbox(ctx context.Context) error {
	messages, err := s.outboxRepo.GetUnsentMessages(ctx)
	if err != nil {
		s.logger.Error("Failed to get unsent outbox messages", zap.Error(err))
		return fmt.Errorf("failed to get unsent outbox messages: %w", err)
	}

	if len(messages) == 0 {
		return nil
	}

	s.logger.Debug("Processing unsent outbox messages", zap.Int("count", len(messages)))

	for _, msg := range messages {
		if err := s.kafkaProducer.Produce(ctx, msg.Topic, []byte(msg.Key), msg.Payload); err != nil {
			s.logger.Error("Failed to produce outbox message to Kafka",
				zap.String("message_id", msg.ID),
				zap.String("topic", msg.Topic),
				zap.Error(err))
			continue
		}
		if err := s.outboxRepo.MarkMessageSent(ctx, msg.ID); err != nil {
			s.logger.Error("Failed to mark outbox message as sent",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}
	return nil
}
