package models

import (
	"encoding/json"
	"fmt"
)

// DeepLink points a push notification at an app page, optionally with a
// single page parameter.
type DeepLink struct {
	Page          string `json:"ff_page"`
	ParameterName string `json:"deep_link_parameter_name,omitempty"`
	DestinationID string `json:"destination_id,omitempty"`
	Name          string `json:"name,omitempty"`
}

// Route returns the in-app route data the mobile client reads from the
// notification payload, or nil when no page is set.
func (d DeepLink) Route() map[string]string {
	if d.Page == "" {
		return nil
	}
	route := map[string]string{"initialPageName": d.Page}
	if d.ParameterName != "" && d.DestinationID != "" {
		params, _ := json.Marshal(map[string]string{d.ParameterName: d.DestinationID})
		route["parameterData"] = string(params)
	}
	return route
}

// RouteURI builds base/page[/destination], or "" when no page is set.
func (d DeepLink) RouteURI(base string) string {
	switch {
	case d.Page == "":
		return ""
	case d.DestinationID != "":
		return fmt.Sprintf("%s/%s/%s", base, d.Page, d.DestinationID)
	default:
		return fmt.Sprintf("%s/%s", base, d.Page)
	}
}

type Notification struct {
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	ImageURL string    `json:"image_url,omitempty"`
	DeepLink *DeepLink `json:"deep_link,omitempty"`
}

// FCMToken is a device registration stored under users/{uid}/fcm_tokens.
type FCMToken struct {
	Token      string `firestore:"fcm_token"`
	DeviceType string `firestore:"device_type"`
}
