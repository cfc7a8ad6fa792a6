package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/babadairy/backend/internal/config"
)

// WhatsAppSender posts template-free text messages through the Meta Graph
// API. Without a token it only logs the message, mirroring the mailer.
type WhatsAppSender struct {
	cfg    config.WhatsAppConfig
	client *http.Client
	log    *zap.Logger
}

func NewWhatsAppSender(cfg config.WhatsAppConfig, log *zap.Logger) *WhatsAppSender {
	return &WhatsAppSender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

func (w *WhatsAppSender) Send(ctx context.Context, toPhone, message string) error {
	if w.cfg.Token == "" || w.cfg.PhoneNumber == "" {
		w.log.Info("whatsapp not configured, would send",
			zap.String("to", toPhone), zap.String("message", message))
		return nil
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                toPhone,
		"type":              "text",
		"text":              map[string]string{"body": message},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", w.cfg.APIUrl, w.cfg.PhoneNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+w.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp send: unexpected status %d", resp.StatusCode)
	}
	w.log.Info("whatsapp message sent", zap.String("to", toPhone))
	return nil
}
