package handlers

import (
	"fmt"
	"net/http"

	"noteshub/internal/catalog/app"
	"noteshub/internal/catalog/domain"
	"noteshub/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ResourceHandler definition resource catalog handler
type ResourceHandler struct {
	Usecase app.CatalogUseCase
}

// NewResourceHandler create ResourceHandler
func NewResourceHandler(uc app.CatalogUseCase) *ResourceHandler {
	return &ResourceHandler{Usecase: uc}
}

// Subjects list one branch's subjects
// @Summary List the subjects of a branch
// @Tags Catalog
// @Param branch path string true "Branch (cs|it)"
// @Success 200 {array} domain.Subject
// @Failure 404 {object} map[string]string
// @Router /catalog/{branch}/subjects [get]
func (h *ResourceHandler) Subjects(c *fiber.Ctx) error {
	subjects, err := h.Usecase.Subjects(domain.Branch(c.Params("branch")))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(subjects)
}

// ListResources list the resources of one subject under a tag filter
// @Summary List resources for a subject
// @Tags Catalog
// @Param branch path string true "Branch (cs|it)"
// @Param subject path string true "Subject id"
// @Param tag query string false "Tag filter, default All"
// @Success 200 {array} domain.Resource
// @Failure 404 {object} map[string]string
// @Router /catalog/{branch}/{subject}/resources [get]
func (h *ResourceHandler) ListResources(c *fiber.Ctx) error {
	tag := domain.Tag(c.Query("tag", string(domain.TagAll)))
	resources, err := h.Usecase.ListResources(c.Context(),
		domain.Branch(c.Params("branch")), c.Params("subject"), tag)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(resources)
}

// UploadResource accept a multipart upload and register its metadata
// @Summary Upload a resource file
// @Tags Catalog
// @Accept multipart/form-data
// @Param branch path string true "Branch (cs|it)"
// @Param subject path string true "Subject id"
// @Param tag formData string true "Resource tag"
// @Param file formData file true "Resource file"
// @Success 200 {object} domain.UploadResourceRes
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /catalog/{branch}/{subject}/resources [post]
func (h *ResourceHandler) UploadResource(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		// validation stops here, nothing has been sent anywhere
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Please select a file to upload"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("open uploaded file failed: %v", err)})
	}
	defer file.Close()

	res, err := h.Usecase.UploadResource(c.Context(), domain.UploadResourceReq{
		Branch:    domain.Branch(c.Params("branch")),
		SubjectID: c.Params("subject"),
		FileName:  fileHeader.Filename,
		FileSize:  fileHeader.Size,
		Tag:       domain.Tag(c.FormValue("tag")),
		File:      file,
	})
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	logger.Log.Info(fmt.Sprintf("resource uploaded [%s/%s] %s", c.Params("branch"), c.Params("subject"), fileHeader.Filename))
	return c.JSON(res)
}

// DownloadResource redirect the caller at the stored object
// @Summary Download a resource
// @Tags Catalog
// @Param id path string true "Resource id"
// @Success 302
// @Failure 404 {object} map[string]string
// @Router /catalog/resources/{id}/download [get]
func (h *ResourceHandler) DownloadResource(c *fiber.Ctx) error {
	fileURL, fileName, err := h.Usecase.DownloadResource(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return c.Redirect(fileURL, http.StatusFound)
}
