package update_status

// UpdateStatusRequest HTTP request model смены статуса
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
