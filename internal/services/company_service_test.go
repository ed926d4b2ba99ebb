package services

import (
	"testing"

	"workrate_backend/internal/models"
	"workrate_backend/internal/services/dto"
	"workrate_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCompanyOnePerAdmin(t *testing.T) {
	t.Parallel()
	testConfig()
	companyRepo := newFakeCompanyRepo()
	service := NewCompanyService(companyRepo)

	created, err := service.CreateCompany("admin-1", &dto.CreateCompanyRequest{
		Name:     "Acme",
		Industry: "Software",
		Location: "Berlin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", created.Name)
	assert.Equal(t, 0.0, created.OverallRating)

	_, err = service.CreateCompany("admin-1", &dto.CreateCompanyRequest{
		Name:     "Acme Two",
		Industry: "Software",
		Location: "Berlin",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestCompanyNameUnique(t *testing.T) {
	t.Parallel()
	testConfig()
	companyRepo := newFakeCompanyRepo()
	service := NewCompanyService(companyRepo)

	_, err := service.CreateCompany("admin-1", &dto.CreateCompanyRequest{
		Name:     "Acme",
		Industry: "Software",
		Location: "Berlin",
	})
	require.NoError(t, err)

	// Имя занято другой компанией
	_, err = service.CreateCompany("admin-2", &dto.CreateCompanyRequest{
		Name:     "Acme",
		Industry: "Fintech",
		Location: "Munich",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPCode)

	other, err := service.CreateCompany("admin-2", &dto.CreateCompanyRequest{
		Name:     "Beta",
		Industry: "Fintech",
		Location: "Munich",
	})
	require.NoError(t, err)

	// Переименование в занятое имя - тоже конфликт
	taken := "Acme"
	_, err = service.UpdateCompany("admin-2", other.ID, &dto.UpdateCompanyRequest{Name: &taken})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPCode)

	free := "Gamma"
	renamed, err := service.UpdateCompany("admin-2", other.ID, &dto.UpdateCompanyRequest{Name: &free})
	require.NoError(t, err)
	assert.Equal(t, "Gamma", renamed.Name)
}

func TestUpdateForeignCompanyLooksMissing(t *testing.T) {
	t.Parallel()
	testConfig()
	companyRepo := newFakeCompanyRepo()
	service := NewCompanyService(companyRepo)

	created, err := service.CreateCompany("admin-1", &dto.CreateCompanyRequest{
		Name:     "Acme",
		Industry: "Software",
		Location: "Berlin",
	})
	require.NoError(t, err)

	name := "Hijacked"
	_, err = service.UpdateCompany("admin-2", created.ID, &dto.UpdateCompanyRequest{Name: &name})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode)

	// Владелец обновляет частично
	industry := "Fintech"
	updated, err := service.UpdateCompany("admin-1", created.ID, &dto.UpdateCompanyRequest{Industry: &industry})
	require.NoError(t, err)
	assert.Equal(t, "Fintech", updated.Industry)
	assert.Equal(t, "Acme", updated.Name)
}

func TestDeleteCompanyPermissions(t *testing.T) {
	t.Parallel()
	testConfig()
	companyRepo := newFakeCompanyRepo()
	service := NewCompanyService(companyRepo)

	created, err := service.CreateCompany("admin-1", &dto.CreateCompanyRequest{
		Name:     "Acme",
		Industry: "Software",
		Location: "Berlin",
	})
	require.NoError(t, err)

	err = service.DeleteCompany("admin-2", models.UserRoleCompanyAdmin, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	err = service.DeleteCompany("sysadmin-1", models.UserRoleSystemAdmin, created.ID)
	require.NoError(t, err)

	_, err = service.GetCompany(created.ID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode)
}
