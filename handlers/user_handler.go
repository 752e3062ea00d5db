package handlers

import (
	"net/http"

	"github.com/GastonDeS/SportMatch-Back/middleware"
	"github.com/GastonDeS/SportMatch-Back/services"
)

type UserHandler struct {
	userService   *services.UserService
	ratingService *services.RatingService
}

func NewUserHandler(userService *services.UserService, ratingService *services.RatingService) *UserHandler {
	return &UserHandler{userService: userService, ratingService: ratingService}
}

// GetUsers godoc
// @Summary List users, or look one up by email
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 404 {object} map[string]string "No user with that email"
// @Router /users [get]
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	if failures := validateQuery("GET /users", r.URL.Query()); failures != nil {
		failedValidationResponse(w, r, failures)
		return
	}

	if email := r.URL.Query().Get("email"); email != "" {
		user, err := h.userService.GetUserByEmail(r.Context(), email)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, user, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	users, err := h.userService.GetUsers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, users, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetUser godoc
// @Summary Get a user with sports, locations and rating aggregate
// @Tags users
// @Produce json
// @Success 200 {object} models.UserDetail
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{userId} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	detail, err := h.userService.GetUserDetail(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, detail, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateUser godoc
// @Summary Update the caller's phone number, locations or sports
// @Tags users
// @Accept json
// @Success 204
// @Security BearerAuth
// @Router /users/{userId} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	userID, err := getIDFromURL(r, "userId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if userID != callerID {
		forbiddenResponse(w, r, "users can only update their own profile")
		return
	}

	var input services.UpdateUserInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.userService.UpdateUser(r.Context(), userID, input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadAvatar godoc
// @Summary Upload the caller's avatar image
// @Tags users
// @Accept image/jpeg
// @Accept image/png
// @Produce json
// @Success 200 {object} map[string]string "Public URL of the stored avatar"
// @Security BearerAuth
// @Router /users/{userId}/avatar [put]
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	userID, err := getIDFromURL(r, "userId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if userID != callerID {
		forbiddenResponse(w, r, "users can only update their own avatar")
		return
	}

	defer r.Body.Close()
	url, err := h.userService.UpdateAvatar(r.Context(), userID, r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, map[string]string{"url": url}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type rateUserRequest struct {
	Rating  int `json:"rating"`
	EventID int `json:"eventId"`
}

// RateUser godoc
// @Summary Rate a user for a concluded event both parties attended
// @Tags users
// @Accept json
// @Produce json
// @Success 201 {object} models.RatingAggregate
// @Failure 400 {object} map[string]string "Event not concluded, self rating or score out of range"
// @Failure 409 {object} map[string]string "Already rated for this event"
// @Security BearerAuth
// @Router /users/{userId}/rating [post]
func (h *UserHandler) RateUser(w http.ResponseWriter, r *http.Request) {
	raterID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	ratedID, err := getIDFromURL(r, "userId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input rateUserRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	aggregate, err := h.ratingService.RateUser(r.Context(), raterID, ratedID, input.EventID, input.Rating)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, aggregate, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
