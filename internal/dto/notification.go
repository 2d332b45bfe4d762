package dto

type NotificationRequest struct {
	RecipientIDs          []string `json:"recipient_ids" validate:"required,min=1,dive,required"`
	Title                 string   `json:"title" validate:"required"`
	Body                  string   `json:"body" validate:"required"`
	DeeplinkPageName      string   `json:"deeplink_page_name,omitempty"`
	DeepLinkParameterName string   `json:"deep_link_parameter_name,omitempty"`
	DestinationID         string   `json:"destination_id,omitempty"`
	ImageURL              string   `json:"image_url,omitempty" validate:"omitempty,url"`
}

type NotificationResult struct {
	Recipients int `json:"recipients"`
	Tokens     int `json:"tokens"`
	Success    int `json:"success"`
	Failure    int `json:"failure"`
}
