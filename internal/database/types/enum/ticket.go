package enum

// TicketPriority represents the priority of a support ticket.
//
//go:generate go tool enumer -type=TicketPriority -trimprefix=TicketPriority -transform=lower
type TicketPriority int

const (
	TicketPriorityLow TicketPriority = iota
	TicketPriorityNormal
	TicketPriorityHigh
)
