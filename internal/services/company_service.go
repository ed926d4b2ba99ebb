package services

import (
	"errors"

	"workrate_backend/internal/models"
	"workrate_backend/internal/repositories"
	"workrate_backend/internal/services/dto"
	"workrate_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CompanyService interface {
	GetCompanies(criteria dto.CompanySearchCriteria) (*dto.CompanyListResponse, error)
	GetCompany(companyID string) (*dto.CompanyResponse, error)
	CreateCompany(adminUserID string, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	UpdateCompany(adminUserID, companyID string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	DeleteCompany(userID string, role models.UserRole, companyID string) error
	GetCompanyStats(companyID string) (*dto.CompanyStatsResponse, error)
}

type companyService struct {
	companyRepo repositories.CompanyRepository
}

func NewCompanyService(companyRepo repositories.CompanyRepository) CompanyService {
	return &companyService{companyRepo: companyRepo}
}

func (s *companyService) GetCompanies(criteria dto.CompanySearchCriteria) (*dto.CompanyListResponse, error) {
	page := criteria.Page
	if page <= 0 {
		page = 1
	}
	pageSize := criteria.Limit
	if pageSize <= 0 {
		pageSize = 10
	}

	companies, total, err := s.companyRepo.FindWithFilter(repositories.CompanyFilter{
		Query:     criteria.Query,
		Industry:  criteria.Industry,
		Location:  criteria.Location,
		MinRating: criteria.MinRating,
		MaxRating: criteria.MaxRating,
		SortBy:    criteria.SortBy,
		SortOrder: criteria.SortOrder,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		responses = append(responses, buildCompanyResponse(&companies[i]))
	}

	return &dto.CompanyListResponse{
		Companies:  responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}

func (s *companyService) GetCompany(companyID string) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrNotFound(err, "company", "Company not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return buildCompanyResponse(company), nil
}

func (s *companyService) CreateCompany(adminUserID string, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	// Один админ - одна компания
	if _, err := s.companyRepo.FindByUserID(adminUserID); err == nil {
		return nil, apperrors.ErrConflict(nil, "company", "Company profile already exists for this account")
	} else if !errors.Is(err, repositories.ErrCompanyNotFound) {
		return nil, apperrors.InternalError(err)
	}

	// Имя компании глобально уникально среди неудаленных
	if _, err := s.companyRepo.FindByName(req.Name); err == nil {
		return nil, apperrors.ErrConflict(nil, "company", "Company name is already taken")
	} else if !errors.Is(err, repositories.ErrCompanyNotFound) {
		return nil, apperrors.InternalError(err)
	}

	company := &models.Company{
		UserID:      adminUserID,
		Name:        req.Name,
		Industry:    req.Industry,
		Location:    req.Location,
		Description: req.Description,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
	}

	if err := s.companyRepo.Create(company); err != nil {
		// Гонка на любом из unique-индексов (user_id либо name)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrConflict(err, "company", "Company already exists")
		}
		return nil, apperrors.InternalError(err)
	}

	return buildCompanyResponse(company), nil
}

func (s *companyService) UpdateCompany(adminUserID, companyID string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := s.findOwned(adminUserID, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}
	if req.Location != nil {
		company.Location = *req.Location
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.LogoURL != nil {
		company.LogoURL = *req.LogoURL
	}

	if err := s.companyRepo.Update(company); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrConflict(err, "company", "Company name is already taken")
		}
		return nil, apperrors.InternalError(err)
	}
	return buildCompanyResponse(company), nil
}

func (s *companyService) DeleteCompany(userID string, role models.UserRole, companyID string) error {
	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return apperrors.ErrNotFound(err, "company", "Company not found")
		}
		return apperrors.InternalError(err)
	}

	if role != models.UserRoleSystemAdmin && company.UserID != userID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.companyRepo.SoftDelete(company.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *companyService) GetCompanyStats(companyID string) (*dto.CompanyStatsResponse, error) {
	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrNotFound(err, "company", "Company not found")
		}
		return nil, apperrors.InternalError(err)
	}

	dist, err := s.companyRepo.GetRatingDistribution(companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CompanyStatsResponse{
		CompanyID:          company.ID,
		OverallRating:      company.OverallRating,
		TotalReviews:       company.TotalReviews,
		RatingDistribution: dist,
	}, nil
}

// findOwned возвращает компанию, только если она принадлежит вызывающему
// админу. Чужая компания неотличима от несуществующей.
func (s *companyService) findOwned(adminUserID, companyID string) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrNotFound(err, "company", "Company not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if company.UserID != adminUserID {
		return nil, apperrors.ErrNotFound(repositories.ErrCompanyNotFound, "company", "Company not found")
	}
	return company, nil
}
