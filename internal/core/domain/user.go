package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID      string
	Name    string
	Email   string
	IsAdmin bool
}

type Address struct {
	FullName      string
	StreetAddress string
	City          string
	State         string
	PostalCode    string
	Country       string
	Phone         string
}

var (
	ErrIncompleteAddress  = errors.New("full name, street address, city, state, postal code and country are required")
	ErrUnknownOrderStatus = errors.New("unknown order status")
)

// Validate checks that every address field but the phone is not blank.
func (a Address) Validate() error {
	for _, v := range []string{
		a.FullName, a.StreetAddress, a.City, a.State, a.PostalCode, a.Country,
	} {
		if strings.TrimSpace(v) == "" {
			return ErrIncompleteAddress
		}
	}
	return nil
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus returns the status named s.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch v := OrderStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return v, nil
	}
	return "", ErrUnknownOrderStatus
}

type Order struct {
	ID              string
	UserID          string
	Items           []CartLine
	Total           decimal.Decimal
	Status          OrderStatus
	ShippingAddress Address
	CreatedAt       time.Time
}

// An OrderSummary is a row of the admin order list.
type OrderSummary struct {
	ID       string
	Customer string
	Email    string
	Date     time.Time
	Items    int
	Total    decimal.Decimal
	Status   OrderStatus
}
