package server

import (
	"marketplace/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feeds
// @Summary Home feed
// @Description Published posts, newest first. Page size is fixed by the server.
// @Tags feeds
// @Produce json
// @Param page query int false "1-based page number"
// @Success 200 {object} feed.Envelope[models.Post]
// @Failure 401 {object} models.ErrorResponse
// @Router /feeds [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	page, _ := parseListQuery(c)
	env, err := s.feedService.FetchFeed(c.UserContext(), callerHash(c), page)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(env)
}

// GetTrendingUsers handles GET /api/feeds/users
// @Summary Trending accounts
// @Description Accounts with the most followers. The caller is never listed.
// @Tags feeds
// @Produce json
// @Param page query int false "1-based page number"
// @Success 200 {object} feed.Envelope[models.Account]
// @Router /feeds/users [get]
func (s *Server) GetTrendingUsers(c *fiber.Ctx) error {
	page, _ := parseListQuery(c)
	env, err := s.feedService.FetchTrendingUsers(c.UserContext(), callerHash(c), page)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(env)
}

// GetAuthorPosts handles GET /api/u/:hash/posts
// @Summary Posts by author
// @Tags profiles
// @Produce json
// @Param hash path string true "Account hash"
// @Param page query int false "1-based page number"
// @Success 200 {object} feed.Envelope[models.Post]
// @Failure 404 {object} models.ErrorResponse
// @Router /u/{hash}/posts [get]
func (s *Server) GetAuthorPosts(c *fiber.Ctx) error {
	subject, err := hashParam(c, "hash")
	if err != nil {
		return nil
	}
	page, _ := parseListQuery(c)
	env, err := s.feedService.FetchPostsByAuthor(c.UserContext(), callerHash(c), subject, page)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(env)
}

// GetFollowers handles GET /api/u/:hash/followers
// @Summary Followers of an account
// @Tags profiles
// @Produce json
// @Param hash path string true "Account hash"
// @Param page query int false "1-based page number"
// @Success 200 {object} feed.Envelope[models.Account]
// @Router /u/{hash}/followers [get]
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	subject, err := hashParam(c, "hash")
	if err != nil {
		return nil
	}
	page, _ := parseListQuery(c)
	env, err := s.feedService.FetchFollowers(c.UserContext(), callerHash(c), subject, page)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(env)
}

// GetFollowing handles GET /api/u/:hash/following
// @Summary Accounts an account follows
// @Tags profiles
// @Produce json
// @Param hash path string true "Account hash"
// @Param page query int false "1-based page number"
// @Success 200 {object} feed.Envelope[models.Account]
// @Router /u/{hash}/following [get]
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	subject, err := hashParam(c, "hash")
	if err != nil {
		return nil
	}
	page, _ := parseListQuery(c)
	env, err := s.feedService.FetchFollowing(c.UserContext(), callerHash(c), subject, page)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(env)
}
