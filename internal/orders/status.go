package orders

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var knownStatuses = map[Status]bool{
	StatusPending:    true,
	StatusConfirmed:  true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

func (s Status) Known() bool { return knownStatuses[s] }

// Cancelled is the only classification that matters for inventory: every
// non-cancelled status keeps the order's items reserved. The finer labels
// are display states with no stock effect.
func (s Status) Cancelled() bool { return s == StatusCancelled }
