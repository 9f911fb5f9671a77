package app

import (
	"fmt"
	"net/http"

	"noteshub/pkg/logger"
	"noteshub/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler definition member auth/profile handler
type MemberHandler struct {
	Usecase        MemberUseCase
	ProfileUsecase ProfileUseCase
}

// NewMemberHandler create MemberHandler
func NewMemberHandler(uc MemberUseCase, pc ProfileUseCase) *MemberHandler {
	return &MemberHandler{Usecase: uc, ProfileUsecase: pc}
}

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileReq struct {
	Username string  `json:"username"`
	About    *string `json:"about"`
}

// Register create an account
// @Summary Register with email and password
// @Tags Member
// @Accept json
// @Param body body credentialsReq true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /member/register [post]
func (h *MemberHandler) Register(c *fiber.Ctx) error {
	var req credentialsReq
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "email and password required"})
	}

	if err := h.Usecase.Register(c.Context(), req.Email, req.Password); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "create success"})
}

// Login exchange credentials for a session token
// @Summary Login with email and password
// @Tags Member
// @Accept json
// @Param body body credentialsReq true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /member/login [post]
func (h *MemberHandler) Login(c *fiber.Ctx) error {
	var req credentialsReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "email and password required"})
	}

	token, err := h.Usecase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	c.Cookie(&fiber.Cookie{Name: middlewares.CookieToken, Value: token, HTTPOnly: true})
	return c.JSON(fiber.Map{"token": token, "message": "login success"})
}

// Logout drop the caller's session
// @Summary Logout
// @Tags Member
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /member/logout [post]
func (h *MemberHandler) Logout(c *fiber.Ctx) error {
	tokenStr := c.Query(middlewares.QueryToken)
	if tokenStr == "" {
		tokenStr = c.Cookies(middlewares.CookieToken)
	}
	if err := h.Usecase.Logout(c.Context(), tokenStr); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	c.ClearCookie(middlewares.CookieToken)
	return c.JSON(fiber.Map{"message": "logout success"})
}

// GetProfile fetch (or lazily create) the caller's profile
// @Summary Get own profile
// @Tags Member
// @Success 200 {object} domain.Profile
// @Failure 500 {object} map[string]string
// @Router /member/profile [get]
func (h *MemberHandler) GetProfile(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)
	profile, err := h.ProfileUsecase.GetOrCreate(c.Context(), memberID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(profile)
}

// UpdateProfile change username/about
// @Summary Update own profile
// @Tags Member
// @Accept json
// @Param body body updateProfileReq true "Profile fields"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]string
// @Router /member/profile [put]
func (h *MemberHandler) UpdateProfile(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	var req updateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid profile payload"})
	}

	profile, err := h.ProfileUsecase.Update(c.Context(), memberID, req.Username, req.About)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(profile)
}

// UploadAvatar store a new avatar image
// @Summary Upload own avatar
// @Tags Member
// @Accept multipart/form-data
// @Param file formData file true "Avatar image"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /member/profile/avatar [post]
func (h *MemberHandler) UploadAvatar(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Please select an image to upload"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("open uploaded file failed: %v", err)})
	}
	defer file.Close()

	profile, err := h.ProfileUsecase.UploadAvatar(c.Context(), memberID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	logger.Log.Info(fmt.Sprintf("avatar updated for member[%s]", memberID))
	return c.JSON(profile)
}
