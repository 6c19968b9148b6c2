package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nexodus/nexodus-api/internal/api/response"
	"github.com/nexodus/nexodus-api/internal/domain"
	"github.com/nexodus/nexodus-api/internal/service"
)

var validate = validator.New()

// UserHandler handles registration, login, and the user record endpoint
type UserHandler struct {
	auth *service.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// Register handles POST /crud/User
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input domain.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	user, err := h.auth.Register(r.Context(), input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, map[string]any{
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
		"token": user.Token,
	})
}

// Login handles POST /crud/auth
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.UserLogin
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	token, err := h.auth.Login(r.Context(), input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]string{"token": token})
}

// Get handles GET /crud/User. This endpoint keeps the original's status
// mapping: a malformed token header is a 400, an unknown token a 404.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Authenticate(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMalformedAuthHeader):
			response.BadRequest(w, "Invalid token format.")
		case errors.Is(err, service.ErrUnknownToken):
			response.NotFound(w, "User not found.")
		default:
			response.FromError(w, err)
		}
		return
	}

	response.OK(w, map[string]any{
		"id":         user.ID.Hex(),
		"name":       user.Name,
		"email":      user.Email,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	})
}

// validationMessages flattens validator errors into a field→message map.
func validationMessages(err error) any {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make(map[string]string)
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages[e.Field()] = "field is required"
		case "email":
			messages[e.Field()] = "invalid email format"
		case "min":
			messages[e.Field()] = "must be at least " + e.Param() + " characters"
		case "max":
			messages[e.Field()] = "must be at most " + e.Param() + " characters"
		default:
			messages[e.Field()] = "validation failed on " + e.Tag()
		}
	}
	return messages
}
