package fonnte

// SendResponse модель ответа шлюза Fonnte
type SendResponse struct {
	Status bool   `json:"status"`
	Reason string `json:"reason,omitempty"`
}
