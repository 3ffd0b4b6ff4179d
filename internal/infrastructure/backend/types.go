// internal/infrastructure/backend/types.go
package backend

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category describes a product category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Material describes a product as served by the catalog endpoints
type Material struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Category    *Category       `json:"category,omitempty"`
}

// VariantSelection is the size/color/storage combination chosen for a
// product. Together with the material id it identifies a line item; empty
// fields mean "not applicable".
type VariantSelection struct {
	SelectedSize    string `json:"selectedSize,omitempty"`
	SelectedColor   string `json:"selectedColor,omitempty"`
	SelectedStorage string `json:"selectedStorage,omitempty"`
}

// CartItemRequest is the body for cart add/remove/delete calls
type CartItemRequest struct {
	MaterialID string `json:"materialId"`
	VariantSelection
}

// CartItem is one cart line item as served by GET /cart
type CartItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
	VariantSelection
	Material Material `json:"material"`
}

// Cart is the authoritative cart as served by GET /cart
type Cart struct {
	Items []CartItem `json:"items"`
}

// CheckoutRequest is the body for POST /order/checkout
type CheckoutRequest struct {
	ShippingAddress  string `json:"shippingAddress"`
	UseLoyaltyPoints bool   `json:"useLoyaltyPoints"`
}

// Payment status values for orders
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
)

// Delivery status values for orders
const (
	DeliveryStatusNotDelivered = "NOT_DELIVERED"
	DeliveryStatusShipped      = "SHIPPED"
	DeliveryStatusDelivered    = "DELIVERED"
)

// OrderItem is a snapshot of a cart line item at checkout time
type OrderItem struct {
	ID       string          `json:"id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Material Material        `json:"material"`
}

// Order is a server-side order record. Item contents and TotalPrice are
// immutable once created; only the status fields transition.
type Order struct {
	ID              string          `json:"id"`
	Items           []OrderItem     `json:"items"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	PaymentStatus   string          `json:"paymentStatus"`
	DeliveryStatus  string          `json:"deliveryStatus"`
	ShippingAddress string          `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	User            *OrderUser      `json:"user,omitempty"`
}

// OrderUser identifies the buyer on admin order listings
type OrderUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PaymentInitRequest is the body for POST /payment/initialize
type PaymentInitRequest struct {
	Order *Order      `json:"order"`
	User  PaymentUser `json:"user"`
}

// PaymentUser carries the payer identity the gateway provider needs
type PaymentUser struct {
	Email string `json:"email"`
}

// PaymentInitResponse is the provider handoff returned by payment/initialize
type PaymentInitResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

// Succeeded reports whether payment initialization produced a usable
// hosted-checkout URL
func (r *PaymentInitResponse) Succeeded() bool {
	return r != nil && r.Status == "success" && r.Data.CheckoutURL != ""
}

// VerifyResponse is returned by GET /payment/verify/:id. Payment providers
// are eventually consistent, so anything other than an explicit success is
// "pending", not a failure.
type VerifyResponse struct {
	Status string `json:"status"`
	Data   *struct {
		Status string `json:"status"`
	} `json:"data,omitempty"`
}

// Succeeded reports whether the provider confirmed the payment
func (r *VerifyResponse) Succeeded() bool {
	if r == nil {
		return false
	}
	if r.Status == "success" {
		return true
	}
	return r.Data != nil && r.Data.Status == "success"
}

// Credentials is the body for auth login/register
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by POST /auth/login
type AuthResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// Profile is the account record served by GET /profile
type Profile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	LoyaltyPoints int64  `json:"loyaltyPoints"`
}

// ProfileUpdate is the body for PUT /profile
type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileStats is the account summary served by GET /profile/stats
type ProfileStats struct {
	TotalOrders   int             `json:"totalOrders"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	LoyaltyPoints int64           `json:"loyaltyPoints"`
}

// Customer is one row of the admin customer directory
type Customer struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	LoyaltyPoints int64     `json:"loyaltyPoints"`
	CreatedAt     time.Time `json:"createdAt"`
}

// MarketShareEntry is one slice of the admin market-share report
type MarketShareEntry struct {
	Category string          `json:"category"`
	Orders   int             `json:"orders"`
	Revenue  decimal.Decimal `json:"revenue"`
	Share    float64         `json:"share"`
}

// Notification is one entry of the notification feed
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// SupportMessage is one chat message in a support conversation
type SupportMessage struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	FromAdmin bool      `json:"fromAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// Conversation summarizes one customer's support thread for admins
type Conversation struct {
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	LastMessage string    `json:"lastMessage"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
