package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	portssvc "github.com/SscSPs/stock_opname_app/internal/core/ports/services"
	"github.com/SscSPs/stock_opname_app/internal/dto"
	"github.com/SscSPs/stock_opname_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// RegisterUserRoutes registers all user-related routes.
func RegisterUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	registerValidators()
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)         // Admin only
		users.GET("/me", h.getMe)          // Any authenticated user
		users.GET("/:id", h.getUser)       // Own or admin
		users.PUT("/:id", h.updateUser)    // Own or admin
		users.DELETE("/:id", h.deleteUser) // Admin only
		users.POST("", h.createUser)       // Admin only
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Provisions a unit (role user) or another admin. Admins only.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.APIResponse "Invalid input"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Failure 409 {object} dto.APIResponse "Email already registered"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to create user", slog.String("user_name", req.Name), slog.String("role", req.Role))

	createdUser, err := h.userService.CreateUser(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "create user")
		return
	}

	logger.Info("User created successfully", slog.String("new_user_id", createdUser.UserID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToUserResponse(createdUser)))
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves a user. Units may only read themselves.
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 403 {object} dto.APIResponse "Forbidden (trying to access another user's details)"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	userID := c.Param("id")
	if !actor.IsAdmin() && actor.ID != userID {
		respondError(c, apperrors.ErrForbidden, "get user")
		return
	}
	h.respondUser(c, userID)
}

// getMe godoc
// @Summary Current user
// @Tags users
// @Produce  json
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	h.respondUser(c, actor.ID)
}

func (h *userHandler) respondUser(c *gin.Context, userID string) {
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToUserResponse(user)))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce  json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.APIResponse{data=dto.ListUsersResponse}
// @Failure 403 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset, actor)
	if err != nil {
		respondError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToListUserResponse(users)))
}

// updateUser godoc
// @Summary Update a user
// @Description Admins may edit anyone; units may edit their own profile but not their role.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   user body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToUserResponse(user)))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Removes a unit's ledger and officials settings, then its credentials, then its profile. Admins only.
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse "Admins cannot delete themselves"
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse "Ledger removal failed, user kept"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	userID := c.Param("id")
	if err := h.userService.DeleteUser(c.Request.Context(), userID, actor); err != nil {
		respondError(c, err, "delete user")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User deleted", slog.String("target_user_id", userID))
	c.JSON(http.StatusOK, dto.OK(gin.H{"id": userID}))
}

