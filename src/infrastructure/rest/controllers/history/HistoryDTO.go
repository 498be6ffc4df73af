package history

type DeliveryRecordResponse struct {
	ID          int    `json:"id"`
	RunID       string `json:"runId"`
	ContactName string `json:"contactName"`
	Number      string `json:"number"`
	Status      string `json:"status"`
	Message     string `json:"message"`
	Error       string `json:"error,omitempty"`
	SentAt      string `json:"sentAt"`
}
