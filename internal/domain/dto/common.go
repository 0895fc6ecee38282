package dto

// swagger:model
type ErrorResponse struct {
	Error string `json:"error" example:"Not found"`
}

// swagger:model
type MessageResponse struct {
	Message string `json:"message" example:"User record was deleted"`
}

type ServiceInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Stage   string `json:"stage"`
}
