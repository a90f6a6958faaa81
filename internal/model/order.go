package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/acrsolucoedig-spec/cellparts/internal/cep"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusProblem   OrderStatus = "problem"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady,
		OrderStatusInTransit, OrderStatusDelivered, OrderStatusCancelled, OrderStatusProblem:
		return true
	}
	return false
}

// Final reports whether no further tracking is expected.
func (s OrderStatus) Final() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPix        PaymentMethod = "pix"
	PaymentBankSlip   PaymentMethod = "bank_slip"
	PaymentCash       PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentBankSlip, PaymentCash:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type OrderItem struct {
	ID                      string           `json:"id"`
	OrderID                 string           `json:"orderId"`
	ProductID               string           `json:"productId"`
	ProductName             string           `json:"productName"`
	ProductPrice            decimal.Decimal  `json:"productPrice"`
	ProductPromotionalPrice *decimal.Decimal `json:"productPromotionalPrice,omitempty"`
	ProductImageURL         string           `json:"productImageUrl,omitempty"`
	Quantity                int              `json:"quantity"`
	TotalPrice              decimal.Decimal  `json:"totalPrice"`
	CreatedAt               time.Time        `json:"createdAt"`
	UpdatedAt               time.Time        `json:"updatedAt"`
}

type Order struct {
	ID                    string          `json:"id"`
	CustomerID            string          `json:"customerId"`
	Customer              *User           `json:"customer,omitempty"`
	DriverID              string          `json:"driverId,omitempty"`
	Status                OrderStatus     `json:"status"`
	PaymentMethod         PaymentMethod   `json:"paymentMethod"`
	PaymentStatus         PaymentStatus   `json:"paymentStatus"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	Shipping              decimal.Decimal `json:"shipping"`
	Discount              decimal.Decimal `json:"discount"`
	Total                 decimal.Decimal `json:"total"`
	DeliveryAddress       string          `json:"deliveryAddress"`
	DeliveryNumber        string          `json:"deliveryNumber"`
	DeliveryComplement    string          `json:"deliveryComplement,omitempty"`
	DeliveryNeighborhood  string          `json:"deliveryNeighborhood"`
	DeliveryCity          string          `json:"deliveryCity"`
	DeliveryState         string          `json:"deliveryState"`
	DeliveryZipCode       string          `json:"deliveryZipCode"`
	RecipientName         string          `json:"recipientName"`
	RecipientPhone        string          `json:"recipientPhone"`
	Notes                 string          `json:"notes,omitempty"`
	Items                 []OrderItem     `json:"items"`
	EstimatedDeliveryTime *time.Time      `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time      `json:"actualDeliveryTime,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

type OrderStats struct {
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

var stateRe = regexp.MustCompile(`^[A-Za-z]{2}$`)

type CreateOrderRequest struct {
	PaymentMethod        PaymentMethod `json:"paymentMethod"`
	DeliveryAddress      string        `json:"deliveryAddress"`
	DeliveryNumber       string        `json:"deliveryNumber"`
	DeliveryComplement   string        `json:"deliveryComplement,omitempty"`
	DeliveryNeighborhood string        `json:"deliveryNeighborhood"`
	DeliveryCity         string        `json:"deliveryCity"`
	DeliveryState        string        `json:"deliveryState"`
	DeliveryZipCode      string        `json:"deliveryZipCode"`
	RecipientName        string        `json:"recipientName"`
	RecipientPhone       string        `json:"recipientPhone"`
	Notes                string        `json:"notes,omitempty"`
}

// Normalize trims text fields, upper-cases the state and reduces the zip code to digits.
func (r *CreateOrderRequest) Normalize() {
	for _, f := range []*string{
		&r.DeliveryAddress, &r.DeliveryNumber, &r.DeliveryComplement, &r.DeliveryNeighborhood,
		&r.DeliveryCity, &r.DeliveryState, &r.RecipientName, &r.RecipientPhone, &r.Notes,
	} {
		*f = strings.TrimSpace(*f)
	}
	r.DeliveryState = strings.ToUpper(r.DeliveryState)
	r.DeliveryZipCode = cep.Normalize(r.DeliveryZipCode)
}

func (r CreateOrderRequest) Validate() error {
	if !r.PaymentMethod.Valid() {
		return invalid("paymentMethod", "forma de pagamento inválida")
	}
	required := []struct{ field, value string }{
		{"deliveryAddress", r.DeliveryAddress},
		{"deliveryNumber", r.DeliveryNumber},
		{"deliveryNeighborhood", r.DeliveryNeighborhood},
		{"deliveryCity", r.DeliveryCity},
		{"deliveryState", r.DeliveryState},
		{"recipientName", r.RecipientName},
		{"recipientPhone", r.RecipientPhone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return invalid(f.field, f.field+" é obrigatório")
		}
	}
	if !stateRe.MatchString(r.DeliveryState) {
		return invalid("deliveryState", "UF deve conter 2 letras")
	}
	if _, err := cep.Validate(r.DeliveryZipCode); err != nil {
		return invalid("deliveryZipCode", err.Error())
	}
	return nil
}
