package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/travault/crm-service/internal/api/dto"
	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/service"
)

// SubjectsHandler manages the subject catalog endpoints.
type SubjectsHandler struct {
	service *service.SubjectService
}

// NewSubjectsHandler constructs handler.
func NewSubjectsHandler(subjectService *service.SubjectService) *SubjectsHandler {
	return &SubjectsHandler{service: subjectService}
}

// ListSubjects GET /subjects.
func (h *SubjectsHandler) ListSubjects(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	subjects, err := h.service.List(c.UserContext(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		items = append(items, dto.SubjectResponse{
			ID:          s.ID,
			Subject:     s.Subject,
			TicketCount: s.TicketCount,
			CreatedAt:   s.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateSubject POST /subjects. Returns the existing row when the text
// is already catalogued.
func (h *SubjectsHandler) CreateSubject(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.SubjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	subject, created, err := h.service.GetOrCreate(c.UserContext(), actor, req.Subject)
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": subjectResponse(subject)})
}

// RenameSubject PUT /subjects/:id.
func (h *SubjectsHandler) RenameSubject(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.SubjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	subject, err := h.service.Rename(c.UserContext(), actor, c.Params("id"), req.Subject)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": subjectResponse(subject)})
}

// DeleteSubject DELETE /subjects/:id. Subjects still referenced by
// tickets are protected.
func (h *SubjectsHandler) DeleteSubject(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func subjectResponse(s *domain.TicketSubject) dto.SubjectResponse {
	return dto.SubjectResponse{
		ID:        s.ID,
		Subject:   s.Subject,
		CreatedAt: s.CreatedAt,
	}
}
