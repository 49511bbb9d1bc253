package notification

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const maxErrorBodyBytes = 4 * 1024

type EmailJSConfig struct {
	Endpoint    string
	ServiceID   string
	PublicKey   string
	AccessToken string
	Templates   map[Template]string
	Timeout     time.Duration
}

type emailJSRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams map[string]any `json:"template_params"`
}

// EmailJSSender posts template sends to the EmailJS REST API.
type EmailJSSender struct {
	cfg    EmailJSConfig
	client *http.Client
	log    *zap.Logger
}

func NewEmailJSSender(cfg EmailJSConfig, log *zap.Logger) *EmailJSSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
	}
	return &EmailJSSender{
		cfg:    cfg,
		client: &http.Client{Transport: transport},
		log:    log.Named("emailjs"),
	}
}

func (s *EmailJSSender) Send(ctx context.Context, msg Message) error {
	templateID := s.cfg.Templates[msg.Template]
	if s.cfg.ServiceID == "" || templateID == "" || s.cfg.PublicKey == "" {
		return &EmailError{Err: ErrNotConfigured}
	}

	params := make(map[string]any, len(msg.Params)+3*len(msg.Attachments))
	for k, v := range msg.Params {
		params[k] = v
	}
	s.addAttachments(params, msg.Attachments)

	body, err := json.Marshal(emailJSRequest{
		ServiceID:      s.cfg.ServiceID,
		TemplateID:     templateID,
		UserID:         s.cfg.PublicKey,
		AccessToken:    s.cfg.AccessToken,
		TemplateParams: params,
	})
	if err != nil {
		return &EmailError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return &EmailError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return &EmailError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		s.log.Debug("emailjs rejected send",
			zap.String("template", string(msg.Template)),
			zap.Int("status", resp.StatusCode))
		return &EmailError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// addAttachments writes attachment, attachment_name, attachment_type for the
// first file and attachment_N, attachment_N_name, attachment_N_type after.
func (s *EmailJSSender) addAttachments(params map[string]any, atts []Attachment) {
	for i, a := range atts {
		prefix := "attachment"
		if i > 0 {
			prefix = fmt.Sprintf("attachment_%d", i)
		}
		params[prefix] = base64.StdEncoding.EncodeToString(a.Data)
		params[prefix+"_name"] = a.Name
		params[prefix+"_type"] = a.MIMEType
	}
}
