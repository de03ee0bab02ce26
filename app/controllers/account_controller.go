package controllers

import (
	"net/http"
	"time"

	"github.com/pawmart/pawmart/app/services"
	"github.com/pawmart/pawmart/config"
	"github.com/pawmart/pawmart/pkg/bind"
	"github.com/pawmart/pawmart/pkg/middleware"
	"github.com/pawmart/pawmart/pkg/response"
)

type AccountController struct {
	accounts *services.AccountService
}

func NewAccountController(accounts *services.AccountService) *AccountController {
	return &AccountController{accounts: accounts}
}

func (c *AccountController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, "Malformed request body")
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.accounts.Register(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, user)
}

func (c *AccountController) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, "Malformed request body")
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, tokens, err := c.accounts.Login(in.Email, in.Password)
	if err != nil {
		fail(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    tokens.AccessToken,
		Path:     "/",
		Expires:  time.Now().Add(config.AccessTokenTTL()),
		HttpOnly: true,
		Secure:   config.AppEnv() == "production",
		SameSite: http.SameSiteLaxMode,
	})

	response.Success(w, map[string]interface{}{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

func (c *AccountController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	response.Message(w, "Logged out")
}

func (c *AccountController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.accounts.Me(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, user)
}
