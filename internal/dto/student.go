package dto

import (
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubjectShareRequest is one subject of a student's fee structure.
type SubjectShareRequest struct {
	SubjectName string          `json:"subjectName" binding:"required" validate:"required"`
	TeacherID   string          `json:"teacherID" binding:"required" validate:"required"`
	FeeShare    decimal.Decimal `json:"feeShare"`
}

// CreateStudentRequest defines the data needed to register a student.
type CreateStudentRequest struct {
	StudentID  string                `json:"studentID" binding:"required" validate:"required,max=64"` // Roll number
	Name       string                `json:"name" binding:"required" validate:"required"`
	Class      string                `json:"class" binding:"required" validate:"required"`
	MonthlyFee decimal.Decimal       `json:"monthlyFee"`
	Subjects   []SubjectShareRequest `json:"subjects" binding:"required,min=1,dive" validate:"required,min=1,dive"`
}

// UpdateFeeStructureRequest replaces a student's monthly fee and subject shares.
type UpdateFeeStructureRequest struct {
	MonthlyFee decimal.Decimal       `json:"monthlyFee"`
	Subjects   []SubjectShareRequest `json:"subjects" binding:"required,min=1,dive" validate:"required,min=1,dive"`
	IsActive   *bool                 `json:"isActive"` // Optional
}

// ListStudentsParams holds the query parameters of the student listing.
type ListStudentsParams struct {
	Class     string `form:"class"`
	FeeStatus string `form:"feeStatus" binding:"omitempty,oneof=PENDING PARTIAL PAID OVERDUE"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset    int    `form:"offset" binding:"omitempty,min=0"`
}

// StudentResponse defines the data returned for a student.
type StudentResponse struct {
	StudentID              string                `json:"studentID"`
	Name                   string                `json:"name"`
	Class                  string                `json:"class"`
	Subjects               []domain.SubjectShare `json:"subjects"`
	MonthlyFee             decimal.Decimal       `json:"monthlyFee"`
	TotalFee               decimal.Decimal       `json:"totalFee"`
	FeeStatus              domain.FeeStatus      `json:"feeStatus"`
	LastFeeGeneratedPeriod string                `json:"lastFeeGeneratedPeriod"`
	IsActive               bool                  `json:"isActive"`
	CreatedAt              time.Time             `json:"createdAt"`
	CreatedBy              string                `json:"createdBy"`
	LastUpdatedAt          time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy          string                `json:"lastUpdatedBy"`
}

// ToStudentResponse converts a domain.Student to StudentResponse DTO
func ToStudentResponse(s *domain.Student) StudentResponse {
	subjects := s.Subjects
	if subjects == nil {
		subjects = []domain.SubjectShare{}
	}
	return StudentResponse{
		StudentID:              s.StudentID,
		Name:                   s.Name,
		Class:                  s.Class,
		Subjects:               subjects,
		MonthlyFee:             s.MonthlyFee,
		TotalFee:               s.TotalFee,
		FeeStatus:              s.FeeStatus,
		LastFeeGeneratedPeriod: s.LastFeeGeneratedPeriod.String(),
		IsActive:               s.IsActive,
		CreatedAt:              s.CreatedAt,
		CreatedBy:              s.CreatedBy,
		LastUpdatedAt:          s.LastUpdatedAt,
		LastUpdatedBy:          s.LastUpdatedBy,
	}
}

// ToStudentResponses converts a slice of domain.Student to []StudentResponse.
func ToStudentResponses(students []domain.Student) []StudentResponse {
	responses := make([]StudentResponse, len(students))
	for i := range students {
		responses[i] = ToStudentResponse(&students[i])
	}
	return responses
}

// ToSubjectShares converts request subjects to domain subject shares.
func ToSubjectShares(reqs []SubjectShareRequest) []domain.SubjectShare {
	shares := make([]domain.SubjectShare, len(reqs))
	for i, r := range reqs {
		shares[i] = domain.SubjectShare{SubjectName: r.SubjectName, TeacherID: r.TeacherID, FeeShare: r.FeeShare}
	}
	return shares
}
