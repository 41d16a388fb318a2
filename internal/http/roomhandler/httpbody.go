package roomhandler

type RoomInfoResponse struct {
	RoomID  string `json:"room_id" example:"AbC123"`
	Members int    `json:"members" example:"2"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
