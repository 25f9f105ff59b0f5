package constants

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusValid     OrderStatus = "VALID"
	OrderStatusTracking  OrderStatus = "TRACKING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
	OrderStatusInvalid   OrderStatus = "INVALID"
)

// Live reports whether the order still takes part in the task's lifecycle.
func (s OrderStatus) Live() bool {
	return s != OrderStatusCanceled && s != OrderStatusInvalid
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusValid, OrderStatusTracking,
		OrderStatusCompleted, OrderStatusCanceled, OrderStatusInvalid:
		return true
	}
	return false
}

// DeadOrderStatuses lists the statuses that do not count as live.
var DeadOrderStatuses = []OrderStatus{OrderStatusCanceled, OrderStatusInvalid}
