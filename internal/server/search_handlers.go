package server

import (
	"marketplace/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SearchPosts handles GET /api/q/posts?q=...
// @Summary Search posts
// @Description Ranked full-text search over post names and content. A blank q returns an empty last page.
// @Tags search
// @Produce json
// @Param q query string false "Search text"
// @Param page query int false "1-based page number"
// @Success 200 {object} feed.Envelope[models.Post]
// @Router /q/posts [get]
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	page, q := parseListQuery(c)
	env, err := s.searchService.SearchPosts(c.UserContext(), callerHash(c), q, page)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(env)
}

// SearchPeople handles GET /api/q/people?q=...
// @Summary Search accounts
// @Tags search
// @Produce json
// @Param q query string false "Search text"
// @Param page query int false "1-based page number"
// @Success 200 {object} feed.Envelope[models.Account]
// @Router /q/people [get]
func (s *Server) SearchPeople(c *fiber.Ctx) error {
	page, q := parseListQuery(c)
	env, err := s.searchService.SearchUsers(c.UserContext(), callerHash(c), q, page)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(env)
}
