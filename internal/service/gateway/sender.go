package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"AsmiDesk/entity"
	"AsmiDesk/internal/config"
	"AsmiDesk/internal/lib/sl"
)

// Service sends outbound text messages to the external messaging gateway.
// Every failure stays inside the returned DispatchResult; nothing here can
// abort an inbound transaction.
type Service struct {
	token   string
	baseUrl string
	client  *http.Client
	log     *slog.Logger
}

func NewService(conf *config.Config, logger *slog.Logger) *Service {
	return &Service{
		token:   conf.Whapi.Token,
		baseUrl: conf.Whapi.BaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     logger.With(sl.Module("gateway")),
	}
}

type sendRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// SendText posts one text message to the gateway. Success is any 2xx.
func (s *Service) SendText(to, text string) entity.DispatchResult {
	defer func() {
		if r := recover(); r != nil {
			s.log.With(
				slog.Any("panic", r),
			).Error("send gateway msg")
		}
	}()

	url := fmt.Sprintf("%s/messages/text", s.baseUrl)

	bodyBytes, err := json.Marshal(sendRequest{To: to, Body: text})
	if err != nil {
		s.log.With(sl.Err(err)).Error("marshal send body")
		return entity.DispatchResult{Error: err.Error()}
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		s.log.With(sl.Err(err)).Error("create send request")
		return entity.DispatchResult{Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.With(
			slog.String("to", to),
			sl.Err(err),
		).Error("send HTTP")
		return entity.DispatchResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.With(
			slog.String("to", to),
			slog.Int("status", resp.StatusCode),
		).Error("non-2xx from gateway")
		return entity.DispatchResult{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			Error:      fmt.Sprintf("gateway responded with %d", resp.StatusCode),
		}
	}

	s.log.With(
		slog.String("to", to),
	).Info("message sent")
	return entity.DispatchResult{
		Ok:         true,
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
	}
}
