package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobbuddy/api/internal/model"
)

func newOutreachEnv(t *testing.T) (*testEnv, *OutreachService) {
	t.Helper()

	env := newTestEnv(t, false)
	svc := NewOutreachService(env.conn, env.outreach, env.contacts, env.appsRepo, env.companies, env.lifecycle)
	return env, svc
}

func (e *testEnv) seedContact(t *testing.T, userID, companyID string) *model.Contact {
	t.Helper()

	contact, err := NewContactService(e.contacts, e.companies, nil).Create(userID, ContactInput{
		CompanyID: companyID,
		Name:      "Jane Doe",
	})
	require.NoError(t, err)
	return contact
}

func TestOutreachCreateRequiresOneAnchor(t *testing.T) {
	env, svc := newOutreachEnv(t)
	user := env.registerUser(t)
	company := env.seedCompany(t, user.ID)
	contact := env.seedContact(t, user.ID, company.ID)

	// Neither anchor.
	_, err := svc.Create(user.ID, OutreachInput{
		ContactID: contact.ID,
		Channel:   model.OutreachChannelEmail,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Both anchors.
	appID := "some-app"
	_, err = svc.Create(user.ID, OutreachInput{
		ApplicationID: &appID,
		CompanyID:     &company.ID,
		ContactID:     contact.ID,
		Channel:       model.OutreachChannelEmail,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOutreachCreateBumpsCounter(t *testing.T) {
	env, svc := newOutreachEnv(t)
	user := env.registerUser(t)
	company := env.seedCompany(t, user.ID)
	contact := env.seedContact(t, user.ID, company.ID)

	activity, err := svc.Create(user.ID, OutreachInput{
		CompanyID: &company.ID,
		ContactID: contact.ID,
		Channel:   model.OutreachChannelLinkedIn,
	})
	require.NoError(t, err)
	assert.Equal(t, model.OutreachStatusSent, activity.Status)
	assert.False(t, activity.SentDate.IsZero())

	goal, err := env.goalService.Current(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, goal.OutreachCurrent)

	// Deleting the activity leaves the counter earned.
	require.NoError(t, svc.Delete(user.ID, activity.ID))
	goal, err = env.goalService.Current(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, goal.OutreachCurrent)
}

func TestOutreachUpdateKeepsAnchor(t *testing.T) {
	env, svc := newOutreachEnv(t)
	user := env.registerUser(t)
	company := env.seedCompany(t, user.ID)
	contact := env.seedContact(t, user.ID, company.ID)

	activity, err := svc.Create(user.ID, OutreachInput{
		CompanyID: &company.ID,
		ContactID: contact.ID,
		Channel:   model.OutreachChannelEmail,
	})
	require.NoError(t, err)

	responded := model.OutreachStatusResponded
	updated, err := svc.Update(user.ID, activity.ID, OutreachUpdate{Status: &responded})
	require.NoError(t, err)
	assert.Equal(t, model.OutreachStatusResponded, updated.Status)
	require.NotNil(t, updated.CompanyID)
	assert.Equal(t, company.ID, *updated.CompanyID)

	bad := "Ghosted"
	_, err = svc.Update(user.ID, activity.ID, OutreachUpdate{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOutreachRejectsForeignAnchors(t *testing.T) {
	env, svc := newOutreachEnv(t)
	owner := env.registerUser(t)
	intruder := env.registerUser(t)
	company := env.seedCompany(t, owner.ID)
	contact := env.seedContact(t, owner.ID, company.ID)

	_, err := svc.Create(intruder.ID, OutreachInput{
		CompanyID: &company.ID,
		ContactID: contact.ID,
		Channel:   model.OutreachChannelEmail,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
