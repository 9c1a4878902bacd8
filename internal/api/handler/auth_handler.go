package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/logger"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

type signupForm struct {
	Username  string `form:"username" json:"username" binding:"required,max=150"`
	Password  string `form:"password" json:"password" binding:"required"`
	FirstName string `form:"first_name" json:"first_name" binding:"max=150"`
	LastName  string `form:"last_name" json:"last_name" binding:"max=150"`
	Email     string `form:"email" json:"email" binding:"omitempty,email"`
}

type loginForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
	Next     string `form:"next" json:"next"`
}

// safeNext 只接受站内路径
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

// SignupForm 注册页
// @Summary 注册表单
// @Tags 账号
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/signup/ [get]
func (h *Handler) SignupForm(c *gin.Context) {
	response.Page(c, "users/signup", gin.H{"form": formView{Fields: map[string]string{}}})
}

// Signup 注册并登录
// @Summary 注册
// @Tags 账号
// @Accept x-www-form-urlencoded
// @Param username formData string true "用户名"
// @Param password formData string true "密码"
// @Param first_name formData string false "名"
// @Param last_name formData string false "姓"
// @Param email formData string false "邮箱"
// @Success 302 {string} string "跳转首页"
// @Success 200 {object} response.Response "表单校验失败"
// @Router /auth/signup/ [post]
func (h *Handler) Signup(c *gin.Context) {
	var f signupForm
	render := func(errs map[string][]string) {
		response.Page(c, "users/signup", gin.H{"form": formView{
			Fields: map[string]string{"username": f.Username, "first_name": f.FirstName, "last_name": f.LastName, "email": f.Email},
			Errors: errs,
		}})
	}
	if err := c.ShouldBind(&f); err != nil {
		if errs := formErrors(err); errs != nil {
			render(errs)
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.accountService.Signup(c.Request.Context(), service.SignupInput{
		Username:  f.Username,
		Password:  f.Password,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	})
	if errs := formErrors(err); errs != nil {
		render(errs)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.auth.SetSession(c, u); err != nil {
		h.fail(c, err)
		return
	}
	logger.Info("user signed up", zap.String("user", u.ID), zap.String("username", u.Username))
	response.Redirect(c, "/")
}

// LoginForm 登录页，携带 next
// @Summary 登录表单
// @Tags 账号
// @Produce json
// @Param next query string false "登录后返回的路径"
// @Success 200 {object} response.Response
// @Router /auth/login/ [get]
func (h *Handler) LoginForm(c *gin.Context) {
	response.Page(c, "users/login", gin.H{
		"form": formView{Fields: map[string]string{"username": ""}},
		"next": c.Query("next"),
	})
}

// Login 登录，成功后跳转 next
// @Summary 登录
// @Tags 账号
// @Accept x-www-form-urlencoded
// @Param username formData string true "用户名"
// @Param password formData string true "密码"
// @Param next formData string false "登录后返回的路径"
// @Success 302 {string} string "跳转 next 或首页"
// @Success 200 {object} response.Response "登录失败"
// @Router /auth/login/ [post]
func (h *Handler) Login(c *gin.Context) {
	var f loginForm
	if err := c.ShouldBind(&f); err != nil {
		errs := formErrors(err)
		if errs == nil {
			response.BadRequest(c, err.Error())
			return
		}
		h.renderLogin(c, f, errs)
		return
	}
	if f.Next == "" {
		f.Next = c.Query("next")
	}
	u, err := h.accountService.Authenticate(c.Request.Context(), f.Username, f.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.renderLogin(c, f, map[string][]string{"__all__": {"Please enter a correct username and password."}})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.auth.SetSession(c, u); err != nil {
		h.fail(c, err)
		return
	}
	response.Redirect(c, safeNext(f.Next))
}

func (h *Handler) renderLogin(c *gin.Context, f loginForm, errs map[string][]string) {
	response.Page(c, "users/login", gin.H{
		"form": formView{Fields: map[string]string{"username": f.Username}, Errors: errs},
		"next": f.Next,
	})
}

// Logout 退出登录
// @Summary 退出
// @Tags 账号
// @Success 302 {string} string "跳转首页"
// @Router /auth/logout/ [post]
func (h *Handler) Logout(c *gin.Context) {
	h.auth.ClearSession(c)
	response.Redirect(c, "/")
}
