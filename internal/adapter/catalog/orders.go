package catalog

import (
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Orders returns the sample orders shown to administrators, newest first.
func Orders() []domain.OrderSummary {
	return []domain.OrderSummary{
		order("ORD-123456", "John Smith", "john@example.com", 26, 3, "89.97", domain.OrderPending),
		order("ORD-123455", "Emily Johnson", "emily@example.com", 25, 2, "125.50", domain.OrderProcessing),
		order("ORD-123454", "Michael Brown", "michael@example.com", 24, 1, "59.99", domain.OrderShipped),
		order("ORD-123453", "Sarah Davis", "sarah@example.com", 23, 4, "149.95", domain.OrderDelivered),
		order("ORD-123452", "Robert Wilson", "robert@example.com", 22, 2, "74.99", domain.OrderCancelled),
		order("ORD-123451", "Jennifer Lee", "jennifer@example.com", 21, 3, "99.99", domain.OrderDelivered),
		order("ORD-123450", "David Martinez", "david@example.com", 20, 5, "189.95", domain.OrderDelivered),
	}
}

func order(
	id, customer, email string,
	aprilDay, items int,
	total string,
	status domain.OrderStatus,
) domain.OrderSummary {
	return domain.OrderSummary{
		ID:       id,
		Customer: customer,
		Email:    email,
		Date:     time.Date(2023, time.April, aprilDay, 0, 0, 0, 0, time.UTC),
		Items:    items,
		Total:    price(total),
		Status:   status,
	}
}
