package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobbuddy/api/internal/hunter"
	"github.com/jobbuddy/api/internal/model"
)

func discoveryServer(t *testing.T, handler http.HandlerFunc) *hunter.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return hunter.NewWithBaseURL("test-key", srv.URL, time.Second)
}

func TestDiscoverStoresNewContacts(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.registerUser(t)

	website := "https://www.acme.example.com/careers"
	company := env.seedCompany(t, user.ID)
	company.Website = &website
	require.NoError(t, env.companies.Update(company))

	client := discoveryServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "acme.example.com", r.URL.Query().Get("domain"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"domain":"acme.example.com","emails":[
			{"value":"jane.doe@acme.example.com","first_name":"Jane","last_name":"Doe","position":"Recruiter","confidence":95},
			{"value":"hiring@acme.example.com","first_name":"","last_name":"","position":"","confidence":60}
		]}}`))
	})
	contacts := NewContactService(env.contacts, env.companies, client)

	created, err := contacts.Discover(context.Background(), user.ID, company.ID, "")
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "Jane Doe", created[0].Name)
	require.NotNil(t, created[0].Role)
	assert.Equal(t, "Recruiter", *created[0].Role)
	assert.Equal(t, model.ContactSourceAPI, created[0].Source)

	// Nameless addresses fall back to the address itself.
	assert.Equal(t, "hiring@acme.example.com", created[1].Name)

	// A second run finds nothing new.
	created, err = contacts.Discover(context.Background(), user.ID, company.ID, "")
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestDiscoverExplicitDomainSkipsWebsite(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.registerUser(t)
	company := env.seedCompany(t, user.ID)

	client := discoveryServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "override.example.com", r.URL.Query().Get("domain"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"domain":"override.example.com","emails":[]}}`))
	})
	contacts := NewContactService(env.contacts, env.companies, client)

	created, err := contacts.Discover(context.Background(), user.ID, company.ID, "override.example.com")
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestDiscoverErrorMapping(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.registerUser(t)

	website := "acme.example.com"
	company := env.seedCompany(t, user.ID)
	company.Website = &website
	require.NoError(t, env.companies.Update(company))

	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"quota exceeded", http.StatusTooManyRequests, ErrDiscoveryQuota},
		{"invalid key", http.StatusUnauthorized, ErrDiscoveryUnavailable},
		{"server error", http.StatusInternalServerError, ErrDiscoveryUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := discoveryServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			contacts := NewContactService(env.contacts, env.companies, client)

			_, err := contacts.Discover(context.Background(), user.ID, company.ID, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDiscoverRequiresConfiguration(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.registerUser(t)
	company := env.seedCompany(t, user.ID)

	contacts := NewContactService(env.contacts, env.companies, hunter.New("", time.Second))
	_, err := contacts.Discover(context.Background(), user.ID, company.ID, "")
	assert.ErrorIs(t, err, ErrDiscoveryDisabled)
}

func TestDiscoverNeedsCompanyDomain(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.registerUser(t)
	company := env.seedCompany(t, user.ID)

	client := discoveryServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for a company without a website")
	})
	contacts := NewContactService(env.contacts, env.companies, client)

	_, err := contacts.Discover(context.Background(), user.ID, company.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
