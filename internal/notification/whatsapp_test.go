package notification

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

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "6281234567", NormalizePhone("081234567"))
	assert.Equal(t, "6281234567", NormalizePhone("+62 812-34567"))
	assert.Equal(t, "6281234567", NormalizePhone("6281234567"))
}

func TestWhatsAppSender_Send(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		if gotBody["target"] == "62999" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"status":false,"reason":"invalid target"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":true}`))
	}))
	defer srv.Close()

	s := NewWhatsAppSender(srv.URL, "token-wa", 5*time.Second)
	require.NoError(t, s.Send(context.Background(), Message{Destination: "0812", Body: "halo"}))
	assert.Equal(t, "token-wa", gotAuth)
	assert.Equal(t, "62812", gotBody["target"])
	assert.Equal(t, "halo", gotBody["message"])

	err := s.Send(context.Background(), Message{Destination: "0999", Body: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")

	assert.Error(t, NewWhatsAppSender("", "", 0).Send(context.Background(), Message{}))
}
