package server

import (
	"errors"
	"net/url"
	"strings"

	"marketplace/internal/feed"
	"marketplace/internal/middleware"
	"marketplace/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/schema"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

var errRevocationUnavailable = errors.New("token revocation store unavailable")

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// listQuery holds the query parameters accepted by paginated reads.
// Page stays a string so a malformed value falls back to page 1 instead of failing.
type listQuery struct {
	Page  string `schema:"page"`
	Query string `schema:"q"`
}

// parseListQuery never fails: unreadable parameters mean page 1 and an empty query.
func parseListQuery(c *fiber.Ctx) (page int, q string) {
	var lq listQuery
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err == nil {
		_ = queryDecoder.Decode(&lq, values)
	}
	return feed.ParsePage(lq.Page), lq.Query
}

// hashParam reads a path hash. On failure it writes a 400 and returns errResponseWritten.
func hashParam(c *fiber.Ctx, name string) (string, error) {
	hash := strings.TrimSpace(c.Params(name))
	if hash == "" || len(hash) > 32 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+name))
		return "", errResponseWritten
	}
	return hash, nil
}

// bindJSON parses the body. On failure it writes a 400 and returns errResponseWritten.
func bindJSON(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

func callerHash(c *fiber.Ctx) string {
	return middleware.CallerHash(c)
}
