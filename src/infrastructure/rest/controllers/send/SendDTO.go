package send

type SendResponse struct {
	Message string `json:"message"`
	RunID   string `json:"runId"`
}
