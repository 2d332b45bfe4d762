package firebaseclient

import (
	"context"

	"firebase.google.com/go/v4/messaging"

	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
)

// FCM accepts at most 500 tokens per multicast.
const multicastLimit = 500

type MessagingAdapter struct {
	client *messaging.Client
}

func NewMessagingAdapter(client *messaging.Client) *MessagingAdapter {
	return &MessagingAdapter{client: client}
}

func (a *MessagingAdapter) SendMulticast(ctx context.Context, tokens []string, n models.Notification, data map[string]string) (success, failure int, err error) {
	for start := 0; start < len(tokens); start += multicastLimit {
		end := min(start+multicastLimit, len(tokens))
		msg := &messaging.MulticastMessage{
			Tokens: tokens[start:end],
			Data:   data,
			Notification: &messaging.Notification{
				Title:    n.Title,
				Body:     n.Body,
				ImageURL: n.ImageURL,
			},
		}
		resp, err := a.client.SendEachForMulticast(ctx, msg)
		if err != nil {
			return success, failure, errs.NewExternalServiceError("fcm", "Error encountered while sending notifications.", true, err)
		}
		success += resp.SuccessCount
		failure += resp.FailureCount
	}
	return success, failure, nil
}
