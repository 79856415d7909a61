package service

import (
	"context"
	"testing"

	"github.com/comexweb/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactCreateRequiresEmail(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewContactService(gdb)
	ctx := context.Background()

	_, err := svc.Create(ctx, ContactInput{Name: "Juan", Message: "Necesito cotizar un contenedor"})
	requireField(t, err, "email")

	_, err = svc.Create(ctx, ContactInput{Name: "Juan", Email: "juan@", Message: "Hola"})
	verr := requireField(t, err, "email")
	assert.Equal(t, "Email inválido", verr.Message)

	var count int64
	require.NoError(t, gdb.Model(&db.ContactQuery{}).Count(&count).Error)
	assert.Zero(t, count)

	query, err := svc.Create(ctx, ContactInput{Name: " Juan ", Email: "Juan@Mail.com", Message: "Hola"})
	require.NoError(t, err)
	assert.Equal(t, "Juan", query.Name)
	assert.Equal(t, "juan@mail.com", query.Email)
	assert.Equal(t, db.StatusNew, query.Status)
}

func TestContactUpdateStatus(t *testing.T) {
	svc := NewContactService(setupServiceTestDB(t))
	ctx := context.Background()

	query, err := svc.Create(ctx, ContactInput{Name: "Juan", Email: "juan@mail.com", Message: "Hola"})
	require.NoError(t, err)

	resolved, err := svc.UpdateStatus(ctx, query.ID, "resolved")
	require.NoError(t, err)
	assert.Equal(t, db.QueryStatusResolved, resolved.Status)

	_, err = svc.UpdateStatus(ctx, query.ID, "APPROVED")
	requireField(t, err, "status")

	_, err = svc.UpdateStatus(ctx, 9999, db.QueryStatusArchived)
	assert.ErrorIs(t, err, ErrContactQueryNotFound)

	open, err := svc.List(ctx, db.StatusNew)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestLeadLifecycle(t *testing.T) {
	svc := NewLeadService(setupServiceTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, LeadInput{Name: "Laura", Email: "laura@bazar.com"})
	requireField(t, err, "companyName")

	lead, err := svc.Create(ctx, LeadInput{
		CompanyName: "Bazar Central",
		CUIT:        "30-12345678-9",
		Name:        "Laura",
		Email:       "laura@bazar.com",
		City:        "Rosario",
	})
	require.NoError(t, err)
	assert.Equal(t, db.StatusNew, lead.Status)

	approved, err := svc.UpdateStatus(ctx, lead.ID, db.LeadStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, db.LeadStatusApproved, approved.Status)

	listed, err := svc.List(ctx, "approved")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "30-12345678-9", listed[0].CUIT)

	_, err = svc.UpdateStatus(ctx, 9999, db.LeadStatusRejected)
	assert.ErrorIs(t, err, ErrLeadNotFound)
}
