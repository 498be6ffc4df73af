package contacts

import "go-bulk-messaging-dashboard/src/domain/campaign"

type UploadResponse struct {
	Contacts []campaign.Contact `json:"contacts"`
	Count    int                `json:"count"`
}
