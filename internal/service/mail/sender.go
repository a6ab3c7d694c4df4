package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"AsmiDesk/internal/config"
	"AsmiDesk/internal/lib/sl"
)

// Service relays replies to email-channel chats through Gmail. Like the
// gateway sender it is best effort: errors are logged by the caller and
// never reach the inbound transaction.
type Service struct {
	service *gmail.Service
	from    string
	log     *slog.Logger
}

func NewService(ctx context.Context, conf *config.Config, logger *slog.Logger) (*Service, error) {
	if !conf.Gmail.Enabled {
		return nil, nil
	}

	oauthConf := &oauth2.Config{
		ClientID:     conf.Gmail.ClientID,
		ClientSecret: conf.Gmail.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}
	token := &oauth2.Token{RefreshToken: conf.Gmail.RefreshToken}
	client := oauthConf.Client(ctx, token)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("gmail service: %w", err)
	}

	return &Service{
		service: service,
		from:    conf.Gmail.From,
		log:     logger.With(sl.Module("mail")),
	}, nil
}

// SendText delivers one plain-text reply to the customer's email address.
func (s *Service) SendText(to, subject, text string) error {
	raw := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		s.from, to, subject, text,
	)
	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	_, err := s.service.Users.Messages.Send("me", msg).Do()
	if err != nil {
		s.log.With(
			slog.String("to", to),
			sl.Err(err),
		).Error("send mail")
		return fmt.Errorf("gmail send: %w", err)
	}

	s.log.With(
		slog.String("to", to),
	).Info("mail sent")
	return nil
}
