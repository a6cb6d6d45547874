package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/dto"
	"github.com/SscSPs/academy_fee_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// studentHandler handles the student registry and everything hanging off a
// student: balance, payments and income history.
type studentHandler struct {
	studentService portssvc.StudentSvcFacade
	paymentService portssvc.PaymentSvcFacade
}

func newStudentHandler(ss portssvc.StudentSvcFacade, ps portssvc.PaymentSvcFacade) *studentHandler {
	return &studentHandler{studentService: ss, paymentService: ps}
}

// registerStudentRoutes registers routes related to students.
func registerStudentRoutes(rg *gin.RouterGroup, studentService portssvc.StudentSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	h := newStudentHandler(studentService, paymentService)

	students := rg.Group("/students")
	{
		students.POST("", h.createStudent)
		students.GET("", h.listStudents)
		students.GET("/:studentID", h.getStudent)
		students.PUT("/:studentID/fee-structure", h.updateFeeStructure)
		students.GET("/:studentID/balance", h.getStudentBalance)
		students.POST("/:studentID/payments", h.recordPayment)
		students.GET("/:studentID/income", h.listIncome)
	}
}

// createStudent godoc
// @Summary Register a student
// @Description Registers a student with a monthly fee split across subjects. Subject shares must add up to the monthly fee.
// @Tags students
// @Accept  json
// @Produce  json
// @Param   student body dto.CreateStudentRequest true "Student details"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input or fee shares do not match the monthly fee"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 409 {object} handlers.ErrorResponse "Roll number already registered"
// @Failure 500 {object} handlers.ErrorResponse "Failed to create student"
// @Security BearerAuth
// @Router /students [post]
func (h *studentHandler) createStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateStudent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to create student")
		return
	}
	c.JSON(http.StatusCreated, dto.ToStudentResponse(student))
}

// listStudents godoc
// @Summary List students
// @Description Lists students ordered by roll number, optionally filtered by class or fee status
// @Tags students
// @Produce  json
// @Param   class query string false "Class"
// @Param   feeStatus query string false "Fee status" Enums(PENDING, PARTIAL, PAID, OVERDUE)
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.StudentResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to list students"
// @Security BearerAuth
// @Router /students [get]
func (h *studentHandler) listStudents(c *gin.Context) {
	var params dto.ListStudentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	students, err := h.studentService.ListStudents(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list students")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentResponses(students))
}

// getStudent godoc
// @Summary Get a student
// @Tags students
// @Produce  json
// @Param   studentID path string true "Roll number"
// @Success 200 {object} dto.StudentResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Student not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to retrieve student"
// @Security BearerAuth
// @Router /students/{studentID} [get]
func (h *studentHandler) getStudent(c *gin.Context) {
	student, err := h.studentService.GetStudent(c.Request.Context(), c.Param("studentID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve student")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// updateFeeStructure godoc
// @Summary Replace a student's fee structure
// @Description Replaces the monthly fee and subject shares. The outstanding balance is kept; only future billing changes.
// @Tags students
// @Accept  json
// @Produce  json
// @Param   studentID path string true "Roll number"
// @Param   feeStructure body dto.UpdateFeeStructureRequest true "New fee structure"
// @Success 200 {object} dto.StudentResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input or fee shares do not match the monthly fee"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Student not found"
// @Failure 409 {object} handlers.ErrorResponse "Concurrent modification"
// @Failure 500 {object} handlers.ErrorResponse "Failed to update fee structure"
// @Security BearerAuth
// @Router /students/{studentID}/fee-structure [put]
func (h *studentHandler) updateFeeStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateFeeStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateFeeStructure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	student, err := h.studentService.UpdateFeeStructure(c.Request.Context(), c.Param("studentID"), req, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to update fee structure")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// getStudentBalance godoc
// @Summary Get a student's outstanding balance
// @Tags payments
// @Produce  json
// @Param   studentID path string true "Roll number"
// @Success 200 {object} domain.StudentBalance
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Student not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to retrieve balance"
// @Security BearerAuth
// @Router /students/{studentID}/balance [get]
func (h *studentHandler) getStudentBalance(c *gin.Context) {
	balance, err := h.paymentService.GetStudentBalance(c.Request.Context(), c.Param("studentID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

// recordPayment godoc
// @Summary Record a fee payment
// @Description Records a payment against the student's balance. Overpayments settle the balance; the excess is not kept as credit.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   studentID path string true "Roll number"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} handlers.ErrorResponse "Amount must be greater than zero"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Student not found"
// @Failure 409 {object} handlers.ErrorResponse "Receipt already recorded or concurrent modification"
// @Failure 500 {object} handlers.ErrorResponse "Failed to record payment"
// @Security BearerAuth
// @Router /students/{studentID}/payments [post]
func (h *studentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := actorFromContext(c)
	if !ok {
		return
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), c.Param("studentID"), req.Amount, req.ReceiptID, actorID)
	if err != nil {
		respondWithError(c, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(result))
}

// listIncome godoc
// @Summary List a student's income
// @Description Lists income rows of a student oldest first. Rows replaced by a payout split are included only with includeHistory.
// @Tags payments
// @Produce  json
// @Param   studentID path string true "Roll number"
// @Param   includeHistory query bool false "Include split parents"
// @Success 200 {object} dto.ListIncomeResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Student not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to list income"
// @Security BearerAuth
// @Router /students/{studentID}/income [get]
func (h *studentHandler) listIncome(c *gin.Context) {
	var params dto.ListIncomeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	studentID := c.Param("studentID")
	incomes, err := h.paymentService.ListIncomeForStudent(c.Request.Context(), studentID, params.IncludeHistory)
	if err != nil {
		respondWithError(c, err, "Failed to list income")
		return
	}
	c.JSON(http.StatusOK, dto.ListIncomeResponse{StudentID: studentID, Incomes: dto.ToIncomeResponses(incomes)})
}
