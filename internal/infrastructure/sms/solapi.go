package sms

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	sendPath       = "/messages/v4/send"
	dateLayout     = "2006-01-02 15:04:05"
)

// SolapiClient sends messages through the SOLAPI REST API. Every request is
// signed with HMAC-SHA256 over date+salt.
type SolapiClient struct {
	BaseURL    string
	APIKey     string
	APISecret  string
	From       string
	HTTPClient *http.Client

	now  func() time.Time
	salt func() (string, error)
}

func NewSolapiClient(baseURL, apiKey, apiSecret, from string) (*SolapiClient, error) {
	if apiKey == "" || apiSecret == "" || from == "" {
		return nil, errors.New("solapi: api key, secret and sender are required")
	}
	return &SolapiClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		APISecret:  apiSecret,
		From:       from,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		now:        time.Now,
		salt:       randomSalt,
	}, nil
}

type solapiMessage struct {
	To   string `json:"to"`
	From string `json:"from"`
	Text string `json:"text"`
}

type solapiRequest struct {
	Message solapiMessage `json:"message"`
}

func (c *SolapiClient) SendSMS(ctx context.Context, to, message string) error {
	raw, err := json.Marshal(solapiRequest{Message: solapiMessage{To: to, From: c.From, Text: message}})
	if err != nil {
		return err
	}
	auth, err := c.authorization()
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+sendPath, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("solapi send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("solapi send: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func (c *SolapiClient) authorization() (string, error) {
	salt, err := c.salt()
	if err != nil {
		return "", err
	}
	date := c.now().Format(dateLayout)
	return fmt.Sprintf("HMAC-SHA256 apiKey=%s, date=%s, salt=%s, signature=%s",
		c.APIKey, date, salt, Sign(c.APISecret, date, salt)), nil
}

// Sign returns hex(HMAC-SHA256(secret, date+salt)).
func Sign(secret, date, salt string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(date + salt))
	return hex.EncodeToString(mac.Sum(nil))
}

func randomSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}
