package server

import (
	"marketplace/internal/models"

	"github.com/gofiber/fiber/v2"
)

type editTextRequest struct {
	Value string `json:"value"`
}

type editPasswordRequest struct {
	Current string `json:"current"`
	Next    string `json:"next"`
}

// GetProfile handles GET /api/u/:hash
// @Summary Account profile
// @Description Email and contact details are only returned to the owner.
// @Tags profiles
// @Produce json
// @Param hash path string true "Account hash"
// @Success 200 {object} models.Account
// @Failure 404 {object} models.ErrorResponse
// @Router /u/{hash} [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	subject, err := hashParam(c, "hash")
	if err != nil {
		return nil
	}
	account, err := s.accountService.GetProfile(c.UserContext(), callerHash(c), subject)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(account)
}

// ToggleFollow handles PATCH /api/u/:hash/follow
// @Summary Follow or unfollow an account
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param hash path string true "Account hash"
// @Success 200 {object} models.ToggleResult
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /u/{hash}/follow [patch]
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	subject, err := hashParam(c, "hash")
	if err != nil {
		return nil
	}
	result, err := s.connectionService.ToggleConnection(c.UserContext(), callerHash(c), subject)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(result)
}

// GetMe handles GET /api/user
// @Summary Current account
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Account
// @Router /user [get]
func (s *Server) GetMe(c *fiber.Ctx) error {
	account, err := s.accountService.GetMe(c.UserContext(), callerHash(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(account)
}

// EditName handles PATCH /api/user/edit/name
// @Summary Change display name
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body editTextRequest true "New name"
// @Success 200 {object} models.Account
// @Router /user/edit/name [patch]
func (s *Server) EditName(c *fiber.Ctx) error {
	var req editTextRequest
	if err := bindJSON(c, &req); err != nil {
		return nil
	}
	return respondAccount(c)(s.accountService.EditName(c.UserContext(), callerHash(c), req.Value))
}

// EditBio handles PATCH /api/user/edit/bio
// @Summary Change bio
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body editTextRequest true "New bio"
// @Success 200 {object} models.Account
// @Router /user/edit/bio [patch]
func (s *Server) EditBio(c *fiber.Ctx) error {
	var req editTextRequest
	if err := bindJSON(c, &req); err != nil {
		return nil
	}
	return respondAccount(c)(s.accountService.EditBio(c.UserContext(), callerHash(c), req.Value))
}

// EditPicture handles PATCH /api/user/edit/picture
// @Summary Change picture URL
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body editTextRequest true "Absolute http(s) URL"
// @Success 200 {object} models.Account
// @Router /user/edit/picture [patch]
func (s *Server) EditPicture(c *fiber.Ctx) error {
	var req editTextRequest
	if err := bindJSON(c, &req); err != nil {
		return nil
	}
	return respondAccount(c)(s.accountService.EditPicture(c.UserContext(), callerHash(c), req.Value))
}

// EditEmail handles PATCH /api/user/edit/email
// @Summary Change login email
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body editTextRequest true "New email"
// @Success 200 {object} models.Account
// @Failure 409 {object} models.ErrorResponse
// @Router /user/edit/email [patch]
func (s *Server) EditEmail(c *fiber.Ctx) error {
	var req editTextRequest
	if err := bindJSON(c, &req); err != nil {
		return nil
	}
	return respondAccount(c)(s.accountService.EditEmail(c.UserContext(), callerHash(c), req.Value))
}

// EditContact handles PATCH /api/user/edit/contact
// @Summary Replace contact details
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Contact true "Contact details"
// @Success 200 {object} models.Account
// @Router /user/edit/contact [patch]
func (s *Server) EditContact(c *fiber.Ctx) error {
	var req models.Contact
	if err := bindJSON(c, &req); err != nil {
		return nil
	}
	return respondAccount(c)(s.accountService.EditContact(c.UserContext(), callerHash(c), req))
}

// EditPassword handles PATCH /api/user/edit/password
// @Summary Change password
// @Tags account
// @Accept json
// @Security BearerAuth
// @Param request body editPasswordRequest true "Current and new password"
// @Success 204
// @Failure 401 {object} models.ErrorResponse
// @Router /user/edit/password [patch]
func (s *Server) EditPassword(c *fiber.Ctx) error {
	var req editPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		return nil
	}
	if err := s.accountService.EditPassword(c.UserContext(), callerHash(c), req.Current, req.Next); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func respondAccount(c *fiber.Ctx) func(*models.Account, error) error {
	return func(account *models.Account, err error) error {
		if err != nil {
			return models.RespondWithAppError(c, err)
		}
		return c.JSON(account)
	}
}
