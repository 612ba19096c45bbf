package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edusync/edusync/internal/app/models"
	"github.com/edusync/edusync/internal/app/models/dto"
	"github.com/edusync/edusync/internal/app/services"
	"github.com/edusync/edusync/internal/middleware"
)

// StudentController handles student record operations
type StudentController struct {
	studentService services.StudentService
	exportService  services.ExportService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, exportService services.ExportService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		exportService:  exportService,
		logger:         logger,
	}
}

// List returns students, optionally filtered
// @Summary List students
// @Description Lists all students ordered by first name. Supports search by
// @Description name and filtering by faculty or group code.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name search term"
// @Param facultad query string false "Faculty filter"
// @Param grupo query string false "Group code filter"
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse}
// @Router /students [get]
func (c *StudentController) List(ctx *gin.Context) {
	var (
		students []models.Student
		err      error
	)

	switch {
	case ctx.Query("search") != "":
		students, err = c.studentService.Search(ctx.Request.Context(), ctx.Query("search"))
	case ctx.Query("facultad") != "":
		students, err = c.studentService.ListByFacultad(ctx.Request.Context(), ctx.Query("facultad"))
	case ctx.Query("grupo") != "":
		students, err = c.studentService.ListByGrupo(ctx.Request.Context(), ctx.Query("grupo"))
	default:
		students, err = c.studentService.List(ctx.Request.Context())
	}

	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.StudentListResponse{
		Students: students,
		Total:    len(students),
	}))
}

// Get returns a single student by cedula
// @Summary Get student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param cedula path string true "National ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{cedula} [get]
func (c *StudentController) Get(ctx *gin.Context) {
	student, err := c.studentService.Get(ctx.Request.Context(), ctx.Param("cedula"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// Create registers a new student
// @Summary Register student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student data"
// @Success 201 {object} dto.APIResponse{data=models.Student}
// @Failure 409 {object} dto.ErrorResponse "Cedula already registered"
// @Router /students [post]
func (c *StudentController) Create(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create student payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.Create(ctx.Request.Context(), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("cedula", student.Cedula).Msg("Student registered")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(student))
}

// Update applies a partial update to a student
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cedula path string true "National ID"
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "New cedula already registered"
// @Router /students/{cedula} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.Update(ctx.Request.Context(), ctx.Param("cedula"), req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// Delete removes a student
// @Summary Delete student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param cedula path string true "National ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{cedula} [delete]
func (c *StudentController) Delete(ctx *gin.Context) {
	if err := c.studentService.Delete(ctx.Request.Context(), ctx.Param("cedula")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Student deleted"}))
}

// StatsByGender returns student counts grouped by gender
// @Summary Gender statistics
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StatsResponse}
// @Router /students/stats/genero [get]
func (c *StudentController) StatsByGender(ctx *gin.Context) {
	counts, err := c.studentService.StatsByGender(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.StatsResponse{Counts: counts}))
}

// StatsByFacultad returns student counts grouped by faculty
// @Summary Faculty statistics
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StatsResponse}
// @Router /students/stats/facultad [get]
func (c *StudentController) StatsByFacultad(ctx *gin.Context) {
	counts, err := c.studentService.StatsByFacultad(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.StatsResponse{Counts: counts}))
}

// Export renders a printable student document
// @Summary Export student document
// @Description Returns the student record rendered as a standalone HTML page
// @Tags students
// @Produce html
// @Security BearerAuth
// @Param cedula path string true "National ID"
// @Success 200 {string} string "HTML document"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{cedula}/export [get]
func (c *StudentController) Export(ctx *gin.Context) {
	doc, err := c.exportService.StudentDocument(ctx.Request.Context(), ctx.Param("cedula"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}
