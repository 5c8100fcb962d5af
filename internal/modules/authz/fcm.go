// README: FCM-backed upgrade requester; pushes a prompt request to the device.
package authz

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// PushRequester delivers authorization-upgrade prompts to the user's device
// via an FCM data message.
type PushRequester struct {
	client      *messaging.Client
	deviceToken string
}

func NewPushRequester(client *messaging.Client, deviceToken string) *PushRequester {
	return &PushRequester{client: client, deviceToken: deviceToken}
}

func (r *PushRequester) RequestUpgrade(ctx context.Context) error {
	if r.deviceToken == "" {
		return fmt.Errorf("no device token registered")
	}
	msg := &messaging.Message{
		Token: r.deviceToken,
		Data: map[string]string{
			"type": "request_always_authorization",
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
	if _, err := r.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending FCM to token %s: %w", r.deviceToken, err)
	}
	return nil
}
