package services

import (
	"testing"

	"workrate_backend/internal/models"
	"workrate_backend/internal/services/dto"
	"workrate_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEmployeeVisibility(t *testing.T) {
	t.Parallel()
	testConfig()
	employeeRepo := newFakeEmployeeRepo()
	service := NewEmployeeService(employeeRepo)

	private := &models.Employee{UserID: "owner-1", FullName: "Private Person", Visibility: models.VisibilityPrivate}
	require.NoError(t, employeeRepo.Create(private))

	// Посторонний не видит приватный профиль
	_, err := service.GetEmployee("viewer-1", models.UserRoleEmployee, private.ID)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotPublic)

	// Владелец видит
	resp, err := service.GetEmployee("owner-1", models.UserRoleEmployee, private.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private Person", resp.FullName)

	// Системный админ видит
	_, err = service.GetEmployee("sysadmin-1", models.UserRoleSystemAdmin, private.ID)
	assert.NoError(t, err)
}

func TestGetEmployeePublic(t *testing.T) {
	t.Parallel()
	testConfig()
	employeeRepo := newFakeEmployeeRepo()
	service := NewEmployeeService(employeeRepo)

	public := &models.Employee{UserID: "owner-1", FullName: "Open Person", Visibility: models.VisibilityPublic}
	require.NoError(t, employeeRepo.Create(public))

	resp, err := service.GetEmployee("viewer-1", models.UserRoleEmployee, public.ID)
	require.NoError(t, err)
	assert.Equal(t, "Open Person", resp.FullName)
}

func TestUpdateMyProfile(t *testing.T) {
	t.Parallel()
	testConfig()
	employeeRepo := newFakeEmployeeRepo()
	service := NewEmployeeService(employeeRepo)

	employee := &models.Employee{UserID: "owner-1", FullName: "Old Name", Visibility: models.VisibilityPublic}
	require.NoError(t, employeeRepo.Create(employee))

	name := "New Name"
	visibility := "private"
	resp, err := service.UpdateMyProfile("owner-1", &dto.UpdateEmployeeRequest{
		FullName:   &name,
		Skills:     []string{"Go", "SQL"},
		Visibility: &visibility,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", resp.FullName)
	assert.Equal(t, []string{"Go", "SQL"}, resp.Skills)
	assert.Equal(t, "private", resp.Visibility)

	// Профиль без учетки сотрудника
	_, err = service.UpdateMyProfile("nobody", &dto.UpdateEmployeeRequest{FullName: &name})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode)
}
