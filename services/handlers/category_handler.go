package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Talynk/talynk-backend-sub002/dto"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

type CategoryHandler struct {
	categorySvc CategoryServiceInterface
}

func NewCategoryHandler(categorySvc CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{
		categorySvc: categorySvc,
	}
}

// @Summary Get Categories
// @Description Get the full two-level category hierarchy
// @Tags categories
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=[]dto.CategoryResponse}
// @Router /api/categories [get]
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.categorySvc.GetHierarchy()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", categories)
}

// @Summary Get Popular Categories
// @Description Get categories ranked by post count
// @Tags categories
// @Accept json
// @Produce json
// @Param limit query int false "Limit results" default(10)
// @Success 200 {object} shared.Response{data=[]dto.PopularCategoryResponse}
// @Router /api/categories/popular [get]
func (h *CategoryHandler) GetPopularCategories(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	categories, err := h.categorySvc.GetPopularCategories(limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", categories)
}

// @Summary Get Subcategories
// @Description Get the subcategories of a top-level category
// @Tags categories
// @Accept json
// @Produce json
// @Param parentId path string true "Parent Category ID"
// @Success 200 {object} shared.Response{data=[]dto.CategoryResponse}
// @Router /api/categories/{parentId}/subcategories [get]
func (h *CategoryHandler) GetSubcategories(c *fiber.Ctx) error {
	parentID := c.Params("parentId")

	categories, err := h.categorySvc.GetSubcategories(parentID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", categories)
}

// @Summary Get Category
// @Description Get a single category by id
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} shared.Response{data=dto.CategoryResponse}
// @Router /api/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	category, err := h.categorySvc.GetCategory(id)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", category)
}

// @Summary Upsert Category (Admin)
// @Description Create or update a category keyed on its unique name
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param upsertRequest body dto.UpsertCategoryInput true "Category payload"
// @Success 200 {object} shared.Response{data=dto.CategoryResponse}
// @Router /api/admin/categories [post]
func (h *CategoryHandler) UpsertCategory(c *fiber.Ctx) error {
	var req dto.UpsertCategoryInput
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return shared.NewValidationError("Validation failed", dto.FormatValidationErrors(err))
	}

	category, err := h.categorySvc.UpsertCategory(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Category saved", category)
}
