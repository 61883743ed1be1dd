package order

// Status represents the lifecycle status of an order.
// Values match the strings persisted by the storefront, including the
// space in "Pending Approval".
type Status string

const (
	StatusPendingApproval Status = "Pending Approval"
	StatusApproved        Status = "Approved"
	StatusRejected        Status = "Rejected"
	StatusCancelled       Status = "Cancelled"
	StatusShipped         Status = "Shipped"
	StatusDelivered       Status = "Delivered"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPendingApproval, StatusApproved, StatusRejected,
		StatusCancelled, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no transition is defined out of the status
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusDelivered:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status.
// Same-status writes are not legal transitions.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPendingApproval:
		return target == StatusApproved || target == StatusRejected
	case StatusApproved:
		return target == StatusShipped
	case StatusShipped:
		return target == StatusDelivered
	case StatusRejected, StatusCancelled, StatusDelivered:
		return false // Terminal states
	}
	return false
}

// CountsTowardRevenue returns true if orders in this status are included
// in revenue totals. Rejected and Cancelled are excluded.
func (s Status) CountsTowardRevenue() bool {
	return s != StatusRejected && s != StatusCancelled
}
