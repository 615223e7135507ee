package Email

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client talks to the transactional email provider's HTTP API.
type Client struct {
	httpClient *resty.Client
	from       string
	logger     *zap.Logger
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func NewClient(logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(os.Getenv("EMAIL_API_URL")).
		SetTimeout(15 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+os.Getenv("EMAIL_API_KEY"))

	return &Client{
		httpClient: client,
		from:       os.Getenv("EMAIL_FROM"),
		logger:     logger,
	}
}

func (c *Client) Send(to, subject, html string) error {
	if to == "" {
		return fmt.Errorf("empty recipient")
	}

	resp, err := c.httpClient.R().
		SetBody(sendRequest{From: c.from, To: to, Subject: subject, HTML: html}).
		Post("/emails")
	if err != nil {
		c.logger.Error("email send failed", zap.String("to", to), zap.Error(err))
		return err
	}
	if resp.IsError() {
		c.logger.Error("email provider rejected message",
			zap.String("to", to),
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()))
		return fmt.Errorf("email provider returned %d", resp.StatusCode())
	}

	c.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
