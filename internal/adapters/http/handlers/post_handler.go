package handlers

import (
	"errors"

	"y4d-cms/internal/adapters/http/middleware"
	"y4d-cms/internal/core/domain"
	"y4d-cms/internal/core/services"
	"y4d-cms/internal/pkg/response"
	"y4d-cms/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// PostHandler handles media post endpoints. Post types (blog, newsletter,
// event, story, documentary) are sub-sections of the media section, so write
// operations are authorized per type.
type PostHandler struct {
	contentService    *services.ContentService
	permissionService *services.PermissionService
}

// NewPostHandler creates a new post handler
func NewPostHandler(contentService *services.ContentService, permissionService *services.PermissionService) *PostHandler {
	return &PostHandler{
		contentService:    contentService,
		permissionService: permissionService,
	}
}

func (h *PostHandler) authorize(c *fiber.Ctx, postType, action string) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	err := h.permissionService.Authorize(c.Context(), user, "media", postType, action)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return response.Forbidden(c, "You don't have permission for this post type")
		}
		return response.InternalServerError(c, "Failed to check permissions")
	}
	return nil
}

// ListPublic lists published posts for the public site
// @Summary List published posts
// @Description List published posts, optionally filtered by type
// @Tags Posts
// @Produce json
// @Param type query string false "Post type (blog/newsletter/event/story/documentary)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /posts [get]
func (h *PostHandler) ListPublic(c *fiber.Ctx) error {
	input := &services.ListPostsInput{
		Type:          c.Query("type"),
		PublishedOnly: true,
		Page:          c.QueryInt("page", 1),
		Limit:         c.QueryInt("limit", 10),
	}

	result, err := h.contentService.ListPosts(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid post type")
		}
		return response.InternalServerError(c, "Failed to list posts")
	}

	return response.Success(c, "Posts retrieved", result)
}

// GetPublicBySlug gets a published post by slug
// @Summary Get published post
// @Description Get a published post by slug
// @Tags Posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{slug} [get]
func (h *PostHandler) GetPublicBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return response.BadRequest(c, "Invalid slug")
	}

	post, err := h.contentService.GetPostBySlug(c.Context(), slug, true)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to get post")
	}

	return response.Success(c, "Post retrieved", fiber.Map{
		"post": post,
	})
}

// List lists posts for the CMS, drafts included
// @Summary List posts
// @Description List all posts including drafts
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param type query string false "Post type"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/posts [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	input := &services.ListPostsInput{
		Type:          c.Query("type"),
		PublishedOnly: false,
		Page:          c.QueryInt("page", 1),
		Limit:         c.QueryInt("limit", 10),
	}

	result, err := h.contentService.ListPosts(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Invalid post type")
		}
		return response.InternalServerError(c, "Failed to list posts")
	}

	return response.Success(c, "Posts retrieved", result)
}

// Get gets a post by ID, drafts included
// @Summary Get post
// @Description Get a post by ID
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/posts/{id} [get]
func (h *PostHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid post ID")
	}

	post, err := h.contentService.GetPost(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to get post")
	}

	return response.Success(c, "Post retrieved", fiber.Map{
		"post": post,
	})
}

// Create creates a new draft post
// @Summary Create post
// @Description Create a new draft post
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.PostInput true "Post data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	var req services.PostInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrs := validate.Struct(&req); fieldErrs != nil {
		return response.ValidationFailed(c, fieldErrs)
	}

	if err := h.authorize(c, req.Type, services.ActionCreate); err != nil {
		return err
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	post, err := h.contentService.CreatePost(c.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateSlug):
			return response.Conflict(c, "Slug is already in use")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid post type or title")
		default:
			return response.InternalServerError(c, "Failed to create post")
		}
	}

	return response.Created(c, "Post created", fiber.Map{
		"post": post,
	})
}

// Update updates a post
// @Summary Update post
// @Description Update a post
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param body body services.PostInput true "Post data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/posts/{id} [put]
func (h *PostHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid post ID")
	}

	var req services.PostInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if fieldErrs := validate.Struct(&req); fieldErrs != nil {
		return response.ValidationFailed(c, fieldErrs)
	}

	if err := h.authorize(c, req.Type, services.ActionEdit); err != nil {
		return err
	}

	post, err := h.contentService.UpdatePost(c.Context(), uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Post not found")
		case errors.Is(err, services.ErrDuplicateSlug):
			return response.Conflict(c, "Slug is already in use")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid post type")
		default:
			return response.InternalServerError(c, "Failed to update post")
		}
	}

	return response.Success(c, "Post updated", fiber.Map{
		"post": post,
	})
}

// SetPublished publishes or unpublishes a post
// @Summary Publish or unpublish post
// @Description Set the published flag of a post
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/posts/{id}/publish [patch]
func (h *PostHandler) SetPublished(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid post ID")
	}

	var req struct {
		Published bool `json:"published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Authorization needs the post type, load first
	post, err := h.contentService.GetPost(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to get post")
	}

	if err := h.authorize(c, post.Type, services.ActionPublish); err != nil {
		return err
	}

	post, err = h.contentService.SetPostPublished(c.Context(), uint(id), req.Published)
	if err != nil {
		return response.InternalServerError(c, "Failed to update post")
	}

	message := "Post unpublished"
	if req.Published {
		message = "Post published"
	}
	return response.Success(c, message, fiber.Map{
		"post": post,
	})
}

// Delete deletes a post
// @Summary Delete post
// @Description Delete a post
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/posts/{id} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid post ID")
	}

	post, err := h.contentService.GetPost(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to get post")
	}

	if err := h.authorize(c, post.Type, services.ActionDelete); err != nil {
		return err
	}

	if err := h.contentService.DeletePost(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete post")
	}

	return response.Success(c, "Post deleted", nil)
}
