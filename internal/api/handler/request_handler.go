package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/allnik/property-service/internal/core/domain"
	"github.com/allnik/property-service/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry POST /api/requests safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// RequestHandler handles HTTP requests for property requests.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Create handles POST /api/requests.
//
// @Summary      Create a property request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        Idempotency-Key  header    string                false  "Client-generated key for safe retries"
// @Param        body             body      createRequestRequest  true   "Property request"
// @Success      201              {object}  messageResponse
// @Failure      400              {object}  messageResponse
// @Failure      401              {object}  messageResponse
// @Failure      403              {object}  messageResponse
// @Failure      404              {object}  messageResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return respondMessage(c, http.StatusUnauthorized, msgInvalidToken)
	}

	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return respondMessage(c, http.StatusBadRequest, msgInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	err := h.service.Create(c.Request().Context(), ports.CreateRequestInput{
		UserID:         userID,
		Type:           req.Type,
		Area:           req.Area,
		Location:       req.Location,
		Bedrooms:       req.Bedrooms,
		Style:          req.Style,
		Budget:         req.Budget,
		Payment:        req.Payment,
		Description:    req.Description,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return respondMessage(c, http.StatusNotFound, msgUserNotFound)
		}
		return respondValidation(c, err)
	}

	return respondMessage(c, http.StatusCreated, msgRequestCreated)
}

// List handles GET /api/requests. Only the caller's requests are returned,
// oldest first.
//
// @Summary      List the caller's property requests
// @Tags         requests
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   requestResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return respondMessage(c, http.StatusUnauthorized, msgInvalidToken)
	}

	items, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	out := make([]requestResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toRequestResponse(it))
	}
	return c.JSON(http.StatusOK, out)
}
