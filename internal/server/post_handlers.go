package server

import (
	"marketplace/internal/models"
	"marketplace/internal/service"

	"github.com/gofiber/fiber/v2"
)

type editPriceRequest struct {
	Price int64 `json:"price"`
}

type editEndRequest struct {
	Days int `json:"days"`
}

// CreatePost handles PUT /api/p
// @Summary Create a post
// @Description Posts are published unless published is false.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreatePostInput true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Router /p [put]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req service.CreatePostInput
	if err := bindJSON(c, &req); err != nil {
		return nil
	}
	post, err := s.postService.CreatePost(c.UserContext(), callerHash(c), req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// ViewPost handles GET /api/p/:hash
// @Summary View a post
// @Description Counts a view unless the caller is the author.
// @Tags posts
// @Produce json
// @Param hash path string true "Post hash"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /p/{hash} [get]
func (s *Server) ViewPost(c *fiber.Ctx) error {
	hash, err := hashParam(c, "hash")
	if err != nil {
		return nil
	}
	return respondPost(c)(s.postService.ViewPost(c.UserContext(), callerHash(c), hash))
}

// PublishPost handles PATCH /api/p/:hash/publish
// @Summary Publish a draft
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param hash path string true "Post hash"
// @Success 200 {object} models.Post
// @Router /p/{hash}/publish [patch]
func (s *Server) PublishPost(c *fiber.Ctx) error {
	hash, err := hashParam(c, "hash")
	if err != nil {
		return nil
	}
	return respondPost(c)(s.postService.Publish(c.UserContext(), callerHash(c), hash))
}

// EditPostContent handles PATCH /api/p/:hash/edit/content
// @Summary Edit post content
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param hash path string true "Post hash"
// @Param request body editTextRequest true "New content"
// @Success 200 {object} models.Post
// @Router /p/{hash}/edit/content [patch]
func (s *Server) EditPostContent(c *fiber.Ctx) error {
	hash, req, ok := postTextEdit(c)
	if !ok {
		return nil
	}
	return respondPost(c)(s.postService.EditContent(c.UserContext(), callerHash(c), hash, req.Value))
}

// EditPostName handles PATCH /api/p/:hash/edit/name
// @Summary Edit post title
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param hash path string true "Post hash"
// @Param request body editTextRequest true "New title"
// @Success 200 {object} models.Post
// @Router /p/{hash}/edit/name [patch]
func (s *Server) EditPostName(c *fiber.Ctx) error {
	hash, req, ok := postTextEdit(c)
	if !ok {
		return nil
	}
	return respondPost(c)(s.postService.EditName(c.UserContext(), callerHash(c), hash, req.Value))
}

// EditPostLocation handles PATCH /api/p/:hash/edit/location
// @Summary Edit post location
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param hash path string true "Post hash"
// @Param request body editTextRequest true "New location"
// @Success 200 {object} models.Post
// @Router /p/{hash}/edit/location [patch]
func (s *Server) EditPostLocation(c *fiber.Ctx) error {
	hash, req, ok := postTextEdit(c)
	if !ok {
		return nil
	}
	return respondPost(c)(s.postService.EditLocation(c.UserContext(), callerHash(c), hash, req.Value))
}

// EditPostPrice handles PATCH /api/p/:hash/edit/price
// @Summary Edit post price
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param hash path string true "Post hash"
// @Param request body editPriceRequest true "Price in cents"
// @Success 200 {object} models.Post
// @Router /p/{hash}/edit/price [patch]
func (s *Server) EditPostPrice(c *fiber.Ctx) error {
	hash, err := hashParam(c, "hash")
	if err != nil {
		return nil
	}
	var req editPriceRequest
	if err := bindJSON(c, &req); err != nil {
		return nil
	}
	return respondPost(c)(s.postService.EditPrice(c.UserContext(), callerHash(c), hash, req.Price))
}

// EditPostEnd handles PATCH /api/p/:hash/edit/end
// @Summary Set when the listing ends
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param hash path string true "Post hash"
// @Param request body editEndRequest true "Days from now"
// @Success 200 {object} models.Post
// @Router /p/{hash}/edit/end [patch]
func (s *Server) EditPostEnd(c *fiber.Ctx) error {
	hash, err := hashParam(c, "hash")
	if err != nil {
		return nil
	}
	var req editEndRequest
	if err := bindJSON(c, &req); err != nil {
		return nil
	}
	return respondPost(c)(s.postService.EditEnd(c.UserContext(), callerHash(c), hash, req.Days))
}

// DeletePost handles DELETE /api/p/:hash
// @Summary Delete a post
// @Tags posts
// @Security BearerAuth
// @Param hash path string true "Post hash"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /p/{hash} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	hash, err := hashParam(c, "hash")
	if err != nil {
		return nil
	}
	if err := s.postService.RemovePost(c.UserContext(), callerHash(c), hash); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func postTextEdit(c *fiber.Ctx) (string, editTextRequest, bool) {
	var req editTextRequest
	hash, err := hashParam(c, "hash")
	if err != nil {
		return "", req, false
	}
	if err := bindJSON(c, &req); err != nil {
		return "", req, false
	}
	return hash, req, true
}

func respondPost(c *fiber.Ctx) func(*models.Post, error) error {
	return func(post *models.Post, err error) error {
		if err != nil {
			return models.RespondWithAppError(c, err)
		}
		return c.JSON(post)
	}
}
