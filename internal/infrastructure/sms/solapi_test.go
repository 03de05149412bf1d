package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *SolapiClient {
	t.Helper()
	c, err := NewSolapiClient(baseURL, "key", "secret", "0212345678")
	require.NoError(t, err)
	c.now = func() time.Time { return time.Date(2025, 5, 18, 9, 3, 4, 0, time.UTC) }
	c.salt = func() (string, error) { return "00112233445566778899aabbccddeeff", nil }
	return c
}

func TestSign_KnownVector(t *testing.T) {
	// hex(HMAC-SHA256("key", "The quick brown fox jumps over the lazy dog"))
	assert.Equal(t,
		"f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8",
		Sign("key", "The quick brown fox ", "jumps over the lazy dog"))
}

func TestSolapi_SendSMS_SignsRequest(t *testing.T) {
	var gotAuth string
	var gotBody solapiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/messages/v4/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/")
	require.NoError(t, c.SendSMS(context.Background(), "01012345678", "인증번호는 [123456] 입니다."))

	date := "2025-05-18 09:03:04"
	salt := "00112233445566778899aabbccddeeff"
	assert.Equal(t,
		"HMAC-SHA256 apiKey=key, date="+date+", salt="+salt+", signature="+Sign("secret", date, salt),
		gotAuth)
	assert.Equal(t, solapiMessage{To: "01012345678", From: "0212345678", Text: "인증번호는 [123456] 입니다."}, gotBody.Message)
}

func TestSolapi_SendSMS_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errorCode":"InvalidPhoneNumber"}`))
	}))
	defer srv.Close()

	err := newTestClient(t, srv.URL).SendSMS(context.Background(), "01012345678", "hi")
	assert.ErrorContains(t, err, "status 400")
	assert.ErrorContains(t, err, "InvalidPhoneNumber")
}

func TestSolapi_SendSMS_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	err := newTestClient(t, srv.URL).SendSMS(context.Background(), "01012345678", "hi")
	assert.Error(t, err)
}

func TestRandomSalt(t *testing.T) {
	a, err := randomSalt()
	require.NoError(t, err)
	b, err := randomSalt()
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
