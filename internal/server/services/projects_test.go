package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCreate_UnknownClient(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.Projects.Create(ctx, models.ProjectInput{
		Name:       ptr("Orphan"),
		ClientID:   ptr("no-such-client"),
		HourlyRate: ptr(decimal.NewFromInt(10)),
	})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, "Client not found", err.Error())

	all, err := e.svc.Projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProjectCreate_Defaults(t *testing.T) {
	e := newEnv(t)
	p := e.project(t, e.client(t, "c@c.io").ID)

	assert.Equal(t, "EUR", p.Currency)
	assert.Equal(t, models.ProjectActive, p.Status)
	assert.Nil(t, p.Description)
}

func TestProjectUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := e.client(t, "c@c.io")
	p, err := e.svc.Projects.Create(ctx, models.ProjectInput{
		Name:        ptr("Site"),
		Description: ptr("landing page"),
		ClientID:    ptr(c.ID),
		HourlyRate:  ptr(decimal.RequireFromString("72.50")),
		StartDate:   ptr("2024-01-01"),
	})
	require.NoError(t, err)

	updated, err := e.svc.Projects.Update(ctx, p.ID, patch[models.ProjectPatch](t,
		`{"status":"on-hold","hourly_rate":90.25,"description":null}`))
	require.NoError(t, err)

	assert.Equal(t, models.ProjectOnHold, updated.Status)
	assert.True(t, decimal.RequireFromString("90.25").Equal(updated.HourlyRate))
	assert.Nil(t, updated.Description)
	require.NotNil(t, updated.StartDate)
	assert.Equal(t, "2024-01-01", *updated.StartDate)
}

func TestProjectUpdate_UnknownClient(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.project(t, e.client(t, "c@c.io").ID)

	_, err := e.svc.Projects.Update(ctx, p.ID, patch[models.ProjectPatch](t, `{"client_id":"nope"}`))
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, "Client not found", err.Error())
}

func TestProjectUpdate_NotFound(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Projects.Update(context.Background(), "missing", models.ProjectPatch{})
	assert.Equal(t, "Project not found", err.Error())
}

func TestProjectDelete_WithEntries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.project(t, e.client(t, "c@c.io").ID)
	te := e.entry(t, p.ID)

	err := e.svc.Projects.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, common.ErrorConflict)
	assert.Equal(t, "Cannot delete project with existing time entries", err.Error())

	require.NoError(t, e.svc.TimeEntries.Delete(ctx, te.ID))
	require.NoError(t, e.svc.Projects.Delete(ctx, p.ID))

	_, err = e.svc.Projects.Get(ctx, p.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
