package clients

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRazorpayClient_CreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "rzp_test_secret", pass)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(61000), req["amount"])
		assert.Equal(t, "INR", req["currency"])
		assert.Equal(t, "receipt_order-1", req["receipt"])

		json.NewEncoder(w).Encode(map[string]string{"id": "order_rzp_123"})
	}))
	defer server.Close()

	client := NewRazorpayClient(RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
		BaseURL:   server.URL,
	})

	id, err := client.CreateOrder(context.Background(), 61000, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order_rzp_123", id)
}

func TestRazorpayClient_CreateOrderGatewayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"description":"Authentication failed"}}`)
	}))
	defer server.Close()

	client := NewRazorpayClient(RazorpayConfig{KeyID: "bad", KeySecret: "bad", BaseURL: server.URL})

	_, err := client.CreateOrder(context.Background(), 100, "order-1")
	require.Error(t, err)
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "razorpay", gwErr.Provider)
	assert.Contains(t, gwErr.Detail, "401")
}

func TestRazorpayClient_VerifyPaymentSignature(t *testing.T) {
	client := NewRazorpayClient(RazorpayConfig{KeyID: "key", KeySecret: "secret"})

	mac := hmac.New(sha256.New, []byte("secret"))
	fmt.Fprint(mac, "order_rzp_123|pay_456")
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, client.VerifyPaymentSignature("order_rzp_123", "pay_456", valid))
	assert.False(t, client.VerifyPaymentSignature("order_rzp_123", "pay_456", "deadbeef"))
	assert.False(t, client.VerifyPaymentSignature("order_rzp_999", "pay_456", valid))
}

func TestTwilioClient_SendWhatsApp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "whatsapp:+14155238886", r.PostForm.Get("From"))
		assert.Equal(t, "whatsapp:+918184932229", r.PostForm.Get("To"))
		assert.NotEmpty(t, r.PostForm.Get("Body"))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"sid": "SM123"})
	}))
	defer server.Close()

	client := NewTwilioClient(TwilioConfig{
		AccountSID:   "AC123",
		AuthToken:    "token",
		WhatsAppFrom: "whatsapp:+14155238886",
		BaseURL:      server.URL,
	})

	sid, err := client.SendWhatsApp(context.Background(), "918184932229", "order confirmed")
	require.NoError(t, err)
	assert.Equal(t, "SM123", sid)
}

func TestTwilioClient_SendWhatsAppProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"message": "The 'To' number is not a valid phone number", "code": 21211})
	}))
	defer server.Close()

	client := NewTwilioClient(TwilioConfig{AccountSID: "AC123", AuthToken: "token", WhatsAppFrom: "whatsapp:+1", BaseURL: server.URL})

	_, err := client.SendWhatsApp(context.Background(), "12", "hi")
	require.Error(t, err)
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "twilio", gwErr.Provider)
	assert.Contains(t, gwErr.Detail, "not a valid phone number")
}
