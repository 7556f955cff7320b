package viewmodels

// GetStatusResponse response struct for service status
type GetStatusResponse struct {
	Message string `json:"message"`
}
