package interfaces

// Event is a realtime notification addressed to one user. Delivery is
// at-least-once with no ordering guarantee across conversations; consumers
// must tolerate duplicates.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	EventTypeMessage       = "chat_message"
	EventTypeConversation  = "conversation_update"
	EventTypeBookingStatus = "booking_status"
)

// IEventPublisher abstracts the realtime change-notification channel the
// chat and booking flows emit into. Publish never blocks request handling.
type IEventPublisher interface {
	Publish(userID string, event Event)
}
