package services

import (
	"sync"
	"time"

	"workrate_backend/internal/config"
	"workrate_backend/internal/email"
	"workrate_backend/internal/models"
	"workrate_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory реализации репозиториев для unit-тестов сервисов.
// Все фейки защищены мьютексом: сервисы шлют уведомления в горутинах.

var testConfigOnce sync.Once

func testConfig() {
	testConfigOnce.Do(func() {
		cfg := &config.Config{}
		cfg.JWT.Secret = "test-secret"
		cfg.JWT.TTL = 15
		cfg.JWT.RefreshTTLDay = 7
		config.AppConfig = cfg
	})
}

func nowPtr() *time.Time {
	now := time.Now()
	return &now
}

// --- user repo ---

type fakeUserRepo struct {
	mu            sync.Mutex
	users         map[string]*models.User
	refreshTokens map[string]*models.RefreshToken
	verifyTokens  map[string]*models.EmailVerificationToken
	resetTokens   map[string]*models.PasswordResetToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:         make(map[string]*models.User),
		refreshTokens: make(map[string]*models.RefreshToken),
		verifyTokens:  make(map[string]*models.EmailVerificationToken),
		resetTokens:   make(map[string]*models.PasswordResetToken),
	}
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(em string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == em {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) SetEmailVerified(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.EmailVerified = true
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (r *fakeUserRepo) CreateRefreshToken(token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	cp := *token
	r.refreshTokens[token.Token] = &cp
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.refreshTokens[token]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, repositories.ErrTokenNotFound
}

func (r *fakeUserRepo) RevokeRefreshToken(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.refreshTokens[token]; ok {
		t.IsRevoked = true
	}
	return nil
}

func (r *fakeUserRepo) RevokeUserRefreshTokens(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.refreshTokens {
		if t.UserID == userID {
			t.IsRevoked = true
		}
	}
	return nil
}

func (r *fakeUserRepo) CreateEmailVerificationToken(token *models.EmailVerificationToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	cp := *token
	r.verifyTokens[token.Token] = &cp
	return nil
}

func (r *fakeUserRepo) FindEmailVerificationToken(token string) (*models.EmailVerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.verifyTokens[token]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, repositories.ErrTokenNotFound
}

func (r *fakeUserRepo) MarkEmailVerificationTokenUsed(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.verifyTokens {
		if t.ID == id {
			now := nowPtr()
			t.UsedAt = now
		}
	}
	return nil
}

func (r *fakeUserRepo) CreatePasswordResetToken(token *models.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	cp := *token
	r.resetTokens[token.Token] = &cp
	return nil
}

func (r *fakeUserRepo) FindPasswordResetToken(token string) (*models.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.resetTokens[token]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, repositories.ErrTokenNotFound
}

func (r *fakeUserRepo) MarkPasswordResetTokenUsed(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.resetTokens {
		if t.ID == id {
			now := nowPtr()
			t.UsedAt = now
		}
	}
	return nil
}

// --- employee repo ---

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]*models.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]*models.Employee)}
}

func (r *fakeEmployeeRepo) FindByID(id string) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.employees[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, repositories.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) FindByUserID(userID string) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.UserID == userID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repositories.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) Create(employee *models.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}
	cp := *employee
	r.employees[employee.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) Update(employee *models.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *employee
	r.employees[employee.ID] = &cp
	return nil
}

// --- company repo ---

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]*models.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*models.Company)}
}

func (r *fakeCompanyRepo) FindByID(id string) (*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repositories.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) FindByUserID(userID string) (*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) FindByName(name string) (*models.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) FindWithFilter(filter repositories.CompanyFilter) ([]models.Company, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Company
	for _, c := range r.companies {
		if filter.Industry != "" && c.Industry != filter.Industry {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCompanyRepo) Create(company *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.UserID == company.UserID || c.Name == company.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	cp := *company
	r.companies[company.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) Update(company *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.companies {
		if id != company.ID && c.Name == company.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *company
	r.companies[company.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) SoftDelete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.companies, id)
	return nil
}

func (r *fakeCompanyRepo) UpdateRating(companyID string, rating float64, totalReviews int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.companies[companyID]; ok {
		c.OverallRating = rating
		c.TotalReviews = totalReviews
	}
	return nil
}

func (r *fakeCompanyRepo) GetRatingDistribution(companyID string) (repositories.RatingDistribution, error) {
	dist := make(repositories.RatingDistribution, 5)
	for i := 1; i <= 5; i++ {
		dist[i] = 0
	}
	return dist, nil
}

// --- employment repo ---

type fakeEmploymentRepo struct {
	mu          sync.Mutex
	employments map[string]*models.Employment
}

func newFakeEmploymentRepo() *fakeEmploymentRepo {
	return &fakeEmploymentRepo{employments: make(map[string]*models.Employment)}
}

func (r *fakeEmploymentRepo) Create(employment *models.Employment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employments {
		if e.EmployeeID == employment.EmployeeID && e.CompanyID == employment.CompanyID {
			return gorm.ErrDuplicatedKey
		}
	}
	if employment.ID == "" {
		employment.ID = uuid.NewString()
	}
	cp := *employment
	r.employments[employment.ID] = &cp
	return nil
}

func (r *fakeEmploymentRepo) FindByID(id string) (*models.Employment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.employments[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, repositories.ErrEmploymentNotFound
}

func (r *fakeEmploymentRepo) FindActiveByPair(employeeID, companyID string) (*models.Employment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employments {
		if e.EmployeeID == employeeID && e.CompanyID == companyID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repositories.ErrEmploymentNotFound
}

func (r *fakeEmploymentRepo) FindApprovedByPair(employeeID, companyID string) (*models.Employment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employments {
		if e.EmployeeID == employeeID && e.CompanyID == companyID &&
			e.VerificationStatus == models.EmploymentStatusApproved {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repositories.ErrEmploymentNotFound
}

func (r *fakeEmploymentRepo) FindByEmployee(employeeID string) ([]models.Employment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Employment
	for _, e := range r.employments {
		if e.EmployeeID == employeeID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEmploymentRepo) FindPendingByCompany(companyID string) ([]models.Employment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Employment
	for _, e := range r.employments {
		if e.CompanyID == companyID && e.VerificationStatus == models.EmploymentStatusPending {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEmploymentRepo) Update(employment *models.Employment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *employment
	r.employments[employment.ID] = &cp
	return nil
}

// --- review repo ---

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*models.CompanyReview
	reports map[string]*models.Report
	deleted map[string]bool
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews: make(map[string]*models.CompanyReview),
		reports: make(map[string]*models.Report),
		deleted: make(map[string]bool),
	}
}

func (r *fakeReviewRepo) Create(review *models.CompanyReview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rv := range r.reviews {
		if r.deleted[id] {
			continue
		}
		if rv.EmployeeID == review.EmployeeID && rv.CompanyID == review.CompanyID {
			return gorm.ErrDuplicatedKey
		}
	}
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) FindByID(id string) (*models.CompanyReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rv, ok := r.reviews[id]; ok && !r.deleted[id] {
		cp := *rv
		return &cp, nil
	}
	return nil, repositories.ErrReviewNotFound
}

func (r *fakeReviewRepo) FindByPair(employeeID, companyID string) (*models.CompanyReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rv := range r.reviews {
		if r.deleted[id] {
			continue
		}
		if rv.EmployeeID == employeeID && rv.CompanyID == companyID {
			cp := *rv
			return &cp, nil
		}
	}
	return nil, repositories.ErrReviewNotFound
}

func (r *fakeReviewRepo) FindByCompany(companyID string, filter repositories.ReviewFilter) ([]models.CompanyReview, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CompanyReview
	for id, rv := range r.reviews {
		if r.deleted[id] || !rv.IsPublished || rv.CompanyID != companyID {
			continue
		}
		out = append(out, *rv)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReviewRepo) FindByEmployee(employeeID string) ([]models.CompanyReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CompanyReview
	for id, rv := range r.reviews {
		if r.deleted[id] || rv.EmployeeID != employeeID {
			continue
		}
		out = append(out, *rv)
	}
	return out, nil
}

func (r *fakeReviewRepo) Update(review *models.CompanyReview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) SoftDelete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted[id] = true
	return nil
}

func (r *fakeReviewRepo) AggregateForCompany(companyID string) (*repositories.ReviewAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum, count int64
	for id, rv := range r.reviews {
		if r.deleted[id] || !rv.IsPublished || rv.CompanyID != companyID {
			continue
		}
		sum += int64(rv.OverallRating)
		count++
	}
	agg := &repositories.ReviewAggregate{TotalReviews: count}
	if count > 0 {
		agg.AverageRating = float64(sum) / float64(count)
	}
	return agg, nil
}

func (r *fakeReviewRepo) CreateReport(report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	cp := *report
	r.reports[report.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) FindReports(status string, page, pageSize int) ([]models.Report, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Report
	for _, rep := range r.reports {
		if status != "" && rep.Status != status {
			continue
		}
		out = append(out, *rep)
	}
	return out, int64(len(out)), nil
}

// --- feedback repo ---

type fakeFeedbackRepo struct {
	mu        sync.Mutex
	feedbacks []*models.EmployeeFeedback
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{}
}

func (r *fakeFeedbackRepo) Create(feedback *models.EmployeeFeedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.feedbacks {
		if f.ReviewerID == feedback.ReviewerID &&
			f.RatedEmployeeID == feedback.RatedEmployeeID &&
			f.CompanyID == feedback.CompanyID &&
			f.Quarter == feedback.Quarter && f.Year == feedback.Year {
			return gorm.ErrDuplicatedKey
		}
	}
	if feedback.ID == "" {
		feedback.ID = uuid.NewString()
	}
	cp := *feedback
	r.feedbacks = append(r.feedbacks, &cp)
	return nil
}

func (r *fakeFeedbackRepo) Exists(reviewerID, ratedEmployeeID, companyID string, quarter, year int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.feedbacks {
		if f.ReviewerID == reviewerID && f.RatedEmployeeID == ratedEmployeeID &&
			f.CompanyID == companyID && f.Quarter == quarter && f.Year == year {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFeedbackRepo) FindReceived(employeeID string, quarter, year int) ([]models.EmployeeFeedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.EmployeeFeedback
	for _, f := range r.feedbacks {
		if f.RatedEmployeeID != employeeID {
			continue
		}
		if quarter > 0 && f.Quarter != quarter {
			continue
		}
		if year > 0 && f.Year != year {
			continue
		}
		out = append(out, *f)
	}
	return out, nil
}

func (r *fakeFeedbackRepo) SummaryForEmployee(employeeID string) (*repositories.FeedbackSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summary := &repositories.FeedbackSummary{}
	var p, c, t, rel int
	for _, f := range r.feedbacks {
		if f.RatedEmployeeID != employeeID {
			continue
		}
		summary.TotalFeedbacks++
		p += f.Professionalism
		c += f.Communication
		t += f.Teamwork
		rel += f.Reliability
	}
	if summary.TotalFeedbacks > 0 {
		n := float64(summary.TotalFeedbacks)
		summary.Professionalism = float64(p) / n
		summary.Communication = float64(c) / n
		summary.Teamwork = float64(t) / n
		summary.Reliability = float64(rel) / n
	}
	return summary, nil
}

// --- email provider ---

type fakeEmailProvider struct{}

func (f *fakeEmailProvider) Send(msg *email.Email) error { return nil }
func (f *fakeEmailProvider) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	return nil
}
func (f *fakeEmailProvider) SendWelcome(to, name string) error                    { return nil }
func (f *fakeEmailProvider) SendVerification(to, name, token string) error        { return nil }
func (f *fakeEmailProvider) SendPasswordReset(to, name, token string) error       { return nil }
func (f *fakeEmailProvider) SendEmploymentRequested(to, e, c string) error        { return nil }
func (f *fakeEmailProvider) SendEmploymentDecision(to, c, status, n string) error { return nil }
func (f *fakeEmailProvider) Validate() error                                      { return nil }
func (f *fakeEmailProvider) Close() error                                         { return nil }
