package request

import (
	"strings"

	"limpflix/internal/usecase"
)

// BookingActionRequest identifies who is acting on the booking. The use case
// decides whether that party may perform the transition.
type BookingActionRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
}

type ReviewRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Review   string `json:"review"`
}

func (r ReviewRequest) ToCommand(bookingID string) usecase.ReviewCommand {
	return usecase.ReviewCommand{
		BookingID: bookingID,
		ClientID:  strings.TrimSpace(r.ClientID),
		Rating:    r.Rating,
		Review:    strings.TrimSpace(r.Review),
	}
}
