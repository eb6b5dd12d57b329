package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/users/dto"
	"github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/features/users/model"
	helper "github.com/isirdeeq235/Atapoly-Skills-Center-sub001/internals/helpers"
)

type AuthController struct {
	DB           *gorm.DB
	JWTSecret    string
	CookieSecure bool
	Validate     *validator.Validate
}

func NewAuthController(db *gorm.DB, jwtSecret string, cookieSecure bool) *AuthController {
	return &AuthController{DB: db, JWTSecret: jwtSecret, CookieSecure: cookieSecure, Validate: validator.New()}
}

func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user := model.UserModel{
		UserName: strings.TrimSpace(req.UserName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Role:     model.RoleTrainee,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Could not hash password")
	}

	if err := ctl.DB.Create(&user).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return helper.Error(c, fiber.StatusConflict, "user_name or email already taken")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Could not create user")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registered", dto.FromUserModel(&user))
}

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	ident := strings.TrimSpace(req.Identifier)
	var user model.UserModel
	err := ctl.DB.
		Where("user_name = ? OR email = ?", ident, strings.ToLower(ident)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	if !user.IsActive || !user.CheckPassword(req.Password) {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := ctl.issueToken(&user)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Could not issue token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   ctl.CookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(24 * time.Hour),
	})

	return helper.Success(c, "Logged in", dto.LoginResponse{
		User:        dto.FromUserModel(&user),
		AccessToken: token,
	})
}

func (ctl *AuthController) issueToken(u *model.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"id":   u.ID.String(),
		"role": u.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(ctl.JWTSecret))
}
