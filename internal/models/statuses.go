package models

type UserRole string

const (
	UserRoleEmployee     UserRole = "employee"
	UserRoleCompanyAdmin UserRole = "company_admin"
	UserRoleSystemAdmin  UserRole = "system_admin"
)

// EmploymentStatus - статус верификации трудоустройства.
// pending -> approved | rejected; approved -> ended (end_date, is_current=false).
type EmploymentStatus string

const (
	EmploymentStatusPending  EmploymentStatus = "pending"
	EmploymentStatusApproved EmploymentStatus = "approved"
	EmploymentStatusRejected EmploymentStatus = "rejected"
)

type ProfileVisibility string

const (
	VisibilityPublic  ProfileVisibility = "public"
	VisibilityPrivate ProfileVisibility = "private"
)

const (
	ReportReasonFalseInfo  = "false_info"
	ReportReasonSpam       = "spam"
	ReportReasonHarassment = "harassment"
	ReportReasonOther      = "other"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

func IsValidReportReason(reason string) bool {
	switch reason {
	case ReportReasonFalseInfo, ReportReasonSpam, ReportReasonHarassment, ReportReasonOther:
		return true
	}
	return false
}
