package hunter

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

func TestDomainSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/domain-search", r.URL.Path)
		assert.Equal(t, "acme.io", r.URL.Query().Get("domain"))
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))

		resp := domainSearchResponse{}
		resp.Data.Domain = "acme.io"
		resp.Data.Emails = []Email{
			{Value: "jane@acme.io", FirstName: "Jane", LastName: "Doe", Position: "CTO", Confidence: 94},
			{Value: "sam@acme.io", FirstName: "Sam", LastName: "Lee", Position: "Recruiter", Confidence: 80},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewWithBaseURL("secret", srv.URL, time.Second)
	emails, err := c.DomainSearch(context.Background(), "acme.io", 10)
	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Equal(t, "jane@acme.io", emails[0].Value)
	assert.Equal(t, 94, emails[0].Confidence)
}

func TestDomainSearchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"invalid key", http.StatusUnauthorized, ErrInvalidKey},
		{"quota exceeded", http.StatusTooManyRequests, ErrQuotaExceeded},
		{"server error", http.StatusInternalServerError, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewWithBaseURL("secret", srv.URL, time.Second)
			_, err := c.DomainSearch(context.Background(), "acme.io", 10)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDomainSearchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewWithBaseURL("secret", srv.URL, 20*time.Millisecond)
	_, err := c.DomainSearch(context.Background(), "acme.io", 10)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestConfigured(t *testing.T) {
	assert.False(t, New("", time.Second).Configured())
	assert.True(t, New("key", time.Second).Configured())
}
