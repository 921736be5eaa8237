package signal

// sdpRequest carries an opaque handshake payload. The relay never parses it.
type sdpRequest struct {
	SDP string `json:"sdp" example:"v=0\r\no=- 4611731400430051336..." minLength:"1"` // Opaque offer or answer blob
}

// createRoomResponse returns the short code the host shares out-of-band
type createRoomResponse struct {
	Code string `json:"code" example:"WK4T"` // Room code to give to the guest
}

// offerResponse returns the host's stored offer
type offerResponse struct {
	Offer string `json:"offer"` // Opaque offer blob stored at creation
}

// submitAnswerResponse acknowledges a stored answer
type submitAnswerResponse struct {
	Success bool `json:"success" example:"true"`
}

// answerResponse returns the guest's answer; the room is gone afterwards
type answerResponse struct {
	Answer string `json:"answer"` // Opaque answer blob
}

// waitingResponse tells a polling host to retry
type waitingResponse struct {
	Waiting bool `json:"waiting" example:"true"`
}
