package services

import (
	"testing"
	"time"

	"workrate_backend/internal/models"
	"workrate_backend/internal/services/dto"
	"workrate_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testReviewContent = "Decent place to work overall, fair management and reasonable hours."

type reviewFixture struct {
	service        ReviewService
	reviewRepo     *fakeReviewRepo
	employmentRepo *fakeEmploymentRepo
	employeeRepo   *fakeEmployeeRepo
	companyRepo    *fakeCompanyRepo

	employee *models.Employee
	company  *models.Company

	employeeUserID string
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	testConfig()

	employeeRepo := newFakeEmployeeRepo()
	companyRepo := newFakeCompanyRepo()
	employmentRepo := newFakeEmploymentRepo()
	reviewRepo := newFakeReviewRepo()

	employee := &models.Employee{UserID: "user-1", FullName: "Test Worker"}
	require.NoError(t, employeeRepo.Create(employee))
	company := &models.Company{UserID: "admin-1", Name: "Acme"}
	require.NoError(t, companyRepo.Create(company))

	return &reviewFixture{
		service:        NewReviewService(reviewRepo, employmentRepo, employeeRepo, companyRepo),
		reviewRepo:     reviewRepo,
		employmentRepo: employmentRepo,
		employeeRepo:   employeeRepo,
		companyRepo:    companyRepo,
		employee:       employee,
		company:        company,
		employeeUserID: "user-1",
	}
}

// approve регистрирует approved-трудоустройство для пары
func (f *reviewFixture) approve(t *testing.T, employeeID string) {
	t.Helper()
	require.NoError(t, f.employmentRepo.Create(&models.Employment{
		EmployeeID:         employeeID,
		CompanyID:          f.company.ID,
		Position:           "Engineer",
		StartDate:          time.Now().AddDate(-1, 0, 0),
		IsCurrent:          true,
		VerificationStatus: models.EmploymentStatusApproved,
	}))
}

func (f *reviewFixture) create(t *testing.T, rating int, anonymous bool) *dto.ReviewResponse {
	t.Helper()
	resp, err := f.service.CreateReview(f.employeeUserID, &dto.CreateReviewRequest{
		CompanyID:     f.company.ID,
		OverallRating: rating,
		Content:       testReviewContent,
		IsAnonymous:   anonymous,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateReviewRequiresApprovedEmployment(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)

	_, err := f.service.CreateReview(f.employeeUserID, &dto.CreateReviewRequest{
		CompanyID:     f.company.ID,
		OverallRating: 4,
		Content:       testReviewContent,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotVerifiedEmployment)

	// pending тоже недостаточно
	require.NoError(t, f.employmentRepo.Create(&models.Employment{
		EmployeeID:         f.employee.ID,
		CompanyID:          f.company.ID,
		Position:           "Engineer",
		StartDate:          time.Now(),
		VerificationStatus: models.EmploymentStatusPending,
	}))
	_, err = f.service.CreateReview(f.employeeUserID, &dto.CreateReviewRequest{
		CompanyID:     f.company.ID,
		OverallRating: 4,
		Content:       testReviewContent,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotVerifiedEmployment)
}

func TestCreateReviewSetsEditWindow(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	f.approve(t, f.employee.ID)

	before := time.Now()
	resp := f.create(t, 4, false)

	assert.WithinDuration(t, before.Add(ReviewEditWindow), resp.CanEditUntil, 5*time.Second)
}

func TestCreateReviewDuplicate(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	f.approve(t, f.employee.ID)

	f.create(t, 4, false)
	_, err := f.service.CreateReview(f.employeeUserID, &dto.CreateReviewRequest{
		CompanyID:     f.company.ID,
		OverallRating: 2,
		Content:       testReviewContent,
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateReview)
}

func TestCreateReviewUpdatesAggregate(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	f.approve(t, f.employee.ID)

	// Второй сотрудник с другой оценкой
	other := &models.Employee{UserID: "user-2", FullName: "Second Worker"}
	require.NoError(t, f.employeeRepo.Create(other))
	f.approve(t, other.ID)

	f.create(t, 4, false)
	_, err := f.service.CreateReview("user-2", &dto.CreateReviewRequest{
		CompanyID:     f.company.ID,
		OverallRating: 3,
		Content:       testReviewContent,
	})
	require.NoError(t, err)

	company, err := f.companyRepo.FindByID(f.company.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.5, company.OverallRating)
	assert.Equal(t, int64(2), company.TotalReviews)
}

func TestAggregateRounding(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)

	users := []string{"user-1", "user-2", "user-3"}
	ratings := []int{5, 5, 4}
	for i, userID := range users {
		var employee *models.Employee
		if i == 0 {
			employee = f.employee
		} else {
			employee = &models.Employee{UserID: userID, FullName: "Worker"}
			require.NoError(t, f.employeeRepo.Create(employee))
		}
		f.approve(t, employee.ID)
		_, err := f.service.CreateReview(userID, &dto.CreateReviewRequest{
			CompanyID:     f.company.ID,
			OverallRating: ratings[i],
			Content:       testReviewContent,
		})
		require.NoError(t, err)
	}

	// 14/3 = 4.666... -> 4.7
	company, err := f.companyRepo.FindByID(f.company.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.7, company.OverallRating)
}

func TestDeleteLastReviewResetsAggregate(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	f.approve(t, f.employee.ID)

	resp := f.create(t, 5, false)

	err := f.service.DeleteReview(f.employeeUserID, models.UserRoleEmployee, resp.ID)
	require.NoError(t, err)

	company, err := f.companyRepo.FindByID(f.company.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, company.OverallRating)
	assert.Equal(t, int64(0), company.TotalReviews)
}

func TestUpdateReviewInsideWindow(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	f.approve(t, f.employee.ID)

	created := f.create(t, 3, false)

	newRating := 5
	resp, err := f.service.UpdateReview(f.employeeUserID, created.ID, &dto.UpdateReviewRequest{
		OverallRating: &newRating,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.OverallRating)
	assert.NotNil(t, resp.EditedAt)

	company, err := f.companyRepo.FindByID(f.company.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, company.OverallRating)
}

func TestUpdateReviewExpiredWindow(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	f.approve(t, f.employee.ID)

	created := f.create(t, 3, false)

	// Сдвигаем границу окна в прошлое напрямую в хранилище
	stored, err := f.reviewRepo.FindByID(created.ID)
	require.NoError(t, err)
	stored.CanEditUntil = time.Now().Add(-time.Hour)
	require.NoError(t, f.reviewRepo.Update(stored))

	newRating := 5
	_, err = f.service.UpdateReview(f.employeeUserID, created.ID, &dto.UpdateReviewRequest{
		OverallRating: &newRating,
	})
	assert.ErrorIs(t, err, apperrors.ErrEditWindowExpired)
}

func TestUpdateForeignReviewLooksMissing(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	f.approve(t, f.employee.ID)

	created := f.create(t, 3, false)

	other := &models.Employee{UserID: "user-2", FullName: "Other"}
	require.NoError(t, f.employeeRepo.Create(other))

	newRating := 1
	_, err := f.service.UpdateReview("user-2", created.ID, &dto.UpdateReviewRequest{
		OverallRating: &newRating,
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestDeleteReviewPermissions(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	f.approve(t, f.employee.ID)

	created := f.create(t, 3, false)

	stranger := &models.Employee{UserID: "user-2", FullName: "Stranger"}
	require.NoError(t, f.employeeRepo.Create(stranger))

	err := f.service.DeleteReview("user-2", models.UserRoleEmployee, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	// Системный админ удаляет чужой отзыв
	err = f.service.DeleteReview("sysadmin-1", models.UserRoleSystemAdmin, created.ID)
	require.NoError(t, err)

	_, err = f.service.GetReview(created.ID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestAnonymousReviewMasking(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	f.approve(t, f.employee.ID)

	created := f.create(t, 4, true)

	// Публичное чтение скрывает автора
	public, err := f.service.GetReview(created.ID)
	require.NoError(t, err)
	assert.Nil(t, public.EmployeeID)
	assert.Nil(t, public.Employee)
	assert.True(t, public.IsAnonymous)

	// Автор видит себя в собственном списке
	mine, err := f.service.GetMyReviews(f.employeeUserID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].EmployeeID)
	assert.Equal(t, f.employee.ID, *mine[0].EmployeeID)
}

func TestReportReview(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	f.approve(t, f.employee.ID)

	created := f.create(t, 4, false)

	report, err := f.service.ReportReview(created.ID, "reporter-1", &dto.ReportReviewRequest{
		Reason:      models.ReportReasonSpam,
		Description: "looks like spam",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)

	_, err = f.service.ReportReview(created.ID, "reporter-1", &dto.ReportReviewRequest{
		Reason: "nonsense",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestRoundRating(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 4.7, roundRating(4.666666))
	assert.Equal(t, 3.5, roundRating(3.5))
	assert.Equal(t, 4.0, roundRating(3.96))
	assert.Equal(t, 0.0, roundRating(0))
}
