package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/AleeDe/nafaverse/internal/client/client"
)

type ContactService interface {
	Submit(ctx context.Context, name, email, message string) error
}

type contactService struct {
	client client.Client
}

func NewContactService(c client.Client) ContactService {
	return &contactService{client: c}
}

func (c *contactService) Submit(ctx context.Context, name, email, message string) error {
	if err := required("name", name); err != nil {
		return err
	}
	if err := validEmail(email); err != nil {
		return err
	}
	if err := required("message", message); err != nil {
		return err
	}
	err := c.client.SubmitContactFeedback(ctx, client.ContactRequest{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
	})
	if err != nil {
		return fmt.Errorf("contact feedback: %w", err)
	}
	return nil
}
