package status

type StatusResponse struct {
	IsReady bool   `json:"isReady"`
	QRCode  string `json:"qrCode"`
}
