package domain

import "time"

type ParkedCarEventType string

const (
	EventParkedCarCreated     ParkedCarEventType = "created"
	EventRetrievalRequested   ParkedCarEventType = "retrieval_requested"
	EventDriverAssigned       ParkedCarEventType = "driver_assigned"
	EventParkedCarStatusMoved ParkedCarEventType = "status_updated"
)

// ParkedCarEvent is pushed to the lot feed (WebSocket) and the event exchange.
type ParkedCarEvent struct {
	Type          ParkedCarEventType `json:"type"`
	ParkedCarID   int                `json:"parked_car_id"`
	ParkingSpotID int                `json:"parking_spot_id"`
	Status        ParkedCarStatus    `json:"status"`
	DriverID      *int               `json:"driver_id,omitempty"`
	ParkedPos     string             `json:"parked_pos,omitempty"`
	OccurredAt    time.Time          `json:"occurred_at"`
}

func NewParkedCarEvent(t ParkedCarEventType, pc *ParkedCar) ParkedCarEvent {
	ev := ParkedCarEvent{
		Type:          t,
		ParkedCarID:   pc.ID,
		ParkingSpotID: pc.ParkingSpotID,
		Status:        pc.Status,
		ParkedPos:     pc.ParkedPos,
		OccurredAt:    time.Now().UTC(),
	}
	if pc.DriverID.Valid {
		id := int(pc.DriverID.Int64)
		ev.DriverID = &id
	}
	return ev
}
