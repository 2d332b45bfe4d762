package services

import (
	"context"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

type tokenStore interface {
	FCMTokens(ctx context.Context, uid string) ([]string, error)
}

type messenger interface {
	SendMulticast(ctx context.Context, tokens []string, n models.Notification, data map[string]string) (success, failure int, err error)
}

type notificationService struct {
	Tokens      tokenStore
	Messenger   messenger
	DeepLinkURI string
}

func NewNotificationService(tokens tokenStore, messenger messenger, deepLinkURI string) *notificationService {
	return &notificationService{
		Tokens:      tokens,
		Messenger:   messenger,
		DeepLinkURI: deepLinkURI,
	}
}

// Send pushes one notification to every registered device of each recipient.
func (s *notificationService) Send(ctx context.Context, req dto.NotificationRequest) (dto.NotificationResult, error) {
	log := logger.FromContext(ctx)
	var res dto.NotificationResult

	n := models.Notification{Title: req.Title, Body: req.Body, ImageURL: req.ImageURL}
	if req.DeeplinkPageName != "" {
		n.DeepLink = &models.DeepLink{
			Page:          req.DeeplinkPageName,
			ParameterName: req.DeepLinkParameterName,
			DestinationID: req.DestinationID,
		}
	}

	seenUID := make(map[string]bool, len(req.RecipientIDs))
	seenTok := make(map[string]bool)
	var tokens []string
	for _, uid := range req.RecipientIDs {
		if seenUID[uid] {
			continue
		}
		seenUID[uid] = true

		userTokens, err := s.Tokens.FCMTokens(ctx, uid)
		if err != nil {
			return res, err
		}
		for _, t := range userTokens {
			if !seenTok[t] {
				seenTok[t] = true
				tokens = append(tokens, t)
			}
		}
	}
	res.Recipients = len(seenUID)
	res.Tokens = len(tokens)

	if len(tokens) == 0 {
		return res, errs.NewValidationError("none of the recipients have a registered device")
	}

	success, failure, err := s.Messenger.SendMulticast(ctx, tokens, n, s.payload(n))
	if err != nil {
		log.Error("failed to send notifications", "tokens", len(tokens), "error", err)
		return res, err
	}
	res.Success, res.Failure = success, failure

	log.Info("notifications sent", "recipients", res.Recipients, "success", success, "failure", failure)
	return res, nil
}

// payload is the FCM data block the mobile app reads to route the user.
func (s *notificationService) payload(n models.Notification) map[string]string {
	data := map[string]string{}
	if n.DeepLink == nil {
		return data
	}
	for k, v := range n.DeepLink.Route() {
		data[k] = v
	}
	if s.DeepLinkURI != "" {
		if uri := n.DeepLink.RouteURI(s.DeepLinkURI); uri != "" {
			data["link"] = uri
		}
	}
	return data
}
