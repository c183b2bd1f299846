package events

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/notify"
)

type contactLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// EmailNotifier mails the trainer when a request arrives and the trainee
// once it has been decided.
type EmailNotifier struct {
	sender   notify.Sender
	contacts contactLookup
	appURL   string
}

func NewEmailNotifier(sender notify.Sender, contacts contactLookup, appURL string) *EmailNotifier {
	return &EmailNotifier{
		sender:   sender,
		contacts: contacts,
		appURL:   strings.TrimRight(appURL, "/"),
	}
}

func (n *EmailNotifier) Notify(ctx context.Context, event RequestEvent) error {
	recipientID := event.TraineeID
	if event.Type == RequestCreated {
		recipientID = event.TrainerID
	}

	recipient, err := n.contacts.GetByID(ctx, recipientID)
	if err != nil {
		return fmt.Errorf("load recipient: %w", err)
	}
	if strings.TrimSpace(recipient.Email) == "" {
		return nil
	}

	subject, body := n.render(event)
	if _, err := n.sender.Send(ctx, notify.SendRequest{
		To:      []string{recipient.Email},
		Subject: subject,
		HTML:    body,
	}); err != nil {
		return fmt.Errorf("send %s email: %w", event.Type, err)
	}
	return nil
}

func (n *EmailNotifier) render(event RequestEvent) (string, string) {
	var subject, line, link string
	switch event.Type {
	case RequestAccepted:
		subject = "Your training request was accepted"
		line = "Good news: your trainer accepted your request."
		link = n.appURL + "/trainee/trainers"
	case RequestRejected:
		subject = "Your training request was declined"
		line = "Your trainer declined your request. You can browse other trainers any time."
		link = n.appURL + "/trainee/trainers"
	default:
		subject = "New training request"
		line = "A trainee wants to train with you."
		link = n.appURL + "/trainer/requests"
	}

	body := fmt.Sprintf("<p>%s</p>", html.EscapeString(line))
	if n.appURL != "" {
		body += fmt.Sprintf(`<p><a href="%s">Open Gym Trainer</a></p>`, html.EscapeString(link))
	}
	return subject, body
}
