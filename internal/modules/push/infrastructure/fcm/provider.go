package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/lendly/lendly-backend/internal/modules/push/domain"
)

// Provider sends pushes through Firebase Cloud Messaging.
type Provider struct {
	client *messaging.Client
}

func NewProvider(ctx context.Context, projectID, credentialsJSON string) (*Provider, error) {
	app, err := firebase.NewApp(ctx,
		&firebase.Config{ProjectID: projectID},
		option.WithCredentialsJSON([]byte(credentialsJSON)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client: %w", err)
	}

	return &Provider{client: client}, nil
}

func (p *Provider) Send(ctx context.Context, tokens []string, payload domain.Payload) ([]domain.SendResult, error) {
	messages := make([]*messaging.Message, 0, len(tokens))
	for _, token := range tokens {
		messages = append(messages, &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: payload.Title,
				Body:  payload.Body,
			},
			Data: payload.Data,
		})
	}

	batch, err := p.client.SendEach(ctx, messages)
	if err != nil {
		// Whole-batch failure: per-token outcomes are unknown.
		return nil, fmt.Errorf("fcm batch send failed: %w", err)
	}

	// SendEach returns one response per message in submission order;
	// zip them back onto the tokens we sent.
	results := make([]domain.SendResult, len(tokens))
	for i, resp := range batch.Responses {
		results[i] = domain.SendResult{Token: tokens[i]}
		if resp.Error != nil {
			results[i].Err = resp.Error
			results[i].Invalid = messaging.IsUnregistered(resp.Error) ||
				errorutils.IsInvalidArgument(resp.Error)
		}
	}
	return results, nil
}
