package model

import (
	"errors"
	"time"
)

// Page is the step of the order flow a draft is on.
type Page string

const (
	PageForm     Page = "form"
	PageSummary  Page = "summary"
	PageReceipt  Page = "receipt"
	PageThankYou Page = "thankyou"
)

// Route returns the storefront path of the page for a college.
func (p Page) Route(college string) string {
	switch p {
	case PageSummary, PageReceipt, PageThankYou:
		return "/" + college + "/" + string(p)
	}
	return "/" + college
}

// ValidationResult is the outcome of checking an order against pack sizes.
type ValidationResult struct {
	IsValid             bool     `json:"is_valid"`
	ErrorMessage        string   `json:"error_message,omitempty"`
	Errors              []string `json:"errors,omitempty"`
	InvalidProductPaths []string `json:"invalid_product_paths"`
}

// Draft is the persisted state of an order being filled in.
type Draft struct {
	ID                string    `json:"id" bson:"_id"`
	College           string    `json:"college" bson:"college"`
	Page              Page      `json:"page" bson:"page"`
	Form              FormData  `json:"form" bson:"form"`
	OrderID           string    `json:"order_id,omitempty" bson:"order_id,omitempty"`
	ConfirmationError string    `json:"confirmation_error,omitempty" bson:"confirmation_error,omitempty"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}

// Key returns the storage key of the draft.
func (d Draft) Key() string {
	return DraftKey(d.College, d.ID)
}

// DraftKey builds the storage key of a draft.
func DraftKey(college, id string) string {
	return college + ":" + id
}

// OrderStatus is the fulfilment state of a submitted order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ErrInvalidOrderStatus is returned for an unknown order status.
var ErrInvalidOrderStatus = errors.New("invalid order status")

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderLine is one product line of a submitted order.
type OrderLine struct {
	Category    string     `json:"category" bson:"category"`
	ProductName string     `json:"product_name" bson:"product_name"`
	ImagePath   string     `json:"image_path" bson:"image_path"`
	SKU         string     `json:"sku" bson:"sku"`
	Quantities  SizeCounts `json:"quantities,omitempty" bson:"quantities,omitempty"`
	Quantity    int        `json:"quantity" bson:"quantity"`
	Version     Version    `json:"version,omitempty" bson:"version,omitempty"`
	Color       string     `json:"color,omitempty" bson:"color,omitempty"`
	Style       string     `json:"style,omitempty" bson:"style,omitempty"`
}

// Order is the finalized snapshot of a submitted draft.
type Order struct {
	ID             string         `json:"id" bson:"_id"`
	College        string         `json:"college" bson:"college"`
	SchoolName     string         `json:"school_name" bson:"school_name"`
	Store          StoreInfo      `json:"store" bson:"store"`
	Status         OrderStatus    `json:"status" bson:"status"`
	TotalItems     int            `json:"total_items" bson:"total_items"`
	Lines          []OrderLine    `json:"lines" bson:"lines"`
	Form           FormData       `json:"form" bson:"form"`
	TemplateParams TemplateParams `json:"template_params" bson:"template_params"`
	EmailSent      bool           `json:"email_sent" bson:"email_sent"`
	AdminNotes     string         `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" bson:"updated_at"`
}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	College string
	Status  OrderStatus
	Limit   int
}

// OrderStats summarizes stored orders.
type OrderStats struct {
	TotalOrders   int64 `json:"total_orders"`
	RecentOrders  int64 `json:"recent_orders"`
	Pending       int64 `json:"pending"`
	Completed     int64 `json:"completed"`
	Cancelled     int64 `json:"cancelled"`
	TotalProducts int64 `json:"total_products"`
}
