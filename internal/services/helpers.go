package services

import (
	"encoding/json"
	"math"

	"workrate_backend/internal/models"
	"workrate_backend/internal/services/dto"
)

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

// roundRating округляет до одного знака после запятой
func roundRating(rating float64) float64 {
	return math.Round(rating*10) / 10
}

func buildCompanyInfo(company *models.Company) *dto.CompanyInfo {
	if company == nil {
		return nil
	}
	return &dto.CompanyInfo{
		ID:       company.ID,
		Name:     company.Name,
		Industry: company.Industry,
		Location: company.Location,
		LogoURL:  company.LogoURL,
	}
}

func buildEmployeeInfo(employee *models.Employee) *dto.EmployeeInfo {
	if employee == nil {
		return nil
	}
	return &dto.EmployeeInfo{
		ID:              employee.ID,
		FullName:        employee.FullName,
		CurrentPosition: employee.CurrentPosition,
	}
}

func buildEmployeeResponse(employee *models.Employee) *dto.EmployeeResponse {
	if employee == nil {
		return nil
	}

	var skills []string
	if len(employee.Skills) > 0 {
		// Некорректный JSON в колонке просто дает пустой список
		_ = json.Unmarshal(employee.Skills, &skills)
	}

	return &dto.EmployeeResponse{
		ID:              employee.ID,
		UserID:          employee.UserID,
		FullName:        employee.FullName,
		CurrentPosition: employee.CurrentPosition,
		Bio:             employee.Bio,
		Skills:          skills,
		Visibility:      string(employee.Visibility),
		CreatedAt:       employee.CreatedAt,
	}
}

func buildCompanyResponse(company *models.Company) *dto.CompanyResponse {
	if company == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:            company.ID,
		Name:          company.Name,
		Industry:      company.Industry,
		Location:      company.Location,
		Description:   company.Description,
		Website:       company.Website,
		LogoURL:       company.LogoURL,
		OverallRating: company.OverallRating,
		TotalReviews:  company.TotalReviews,
		IsVerified:    company.IsVerified,
		CreatedAt:     company.CreatedAt,
	}
}
