package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/logger"
	"github.com/d60-Lab/gin-blog/pkg/token"
)

const currentUserKey = "current_user"

// Authenticator 基于 cookie 中 JWT 的会话
type Authenticator struct {
	tokens     *token.Manager
	accounts   service.AccountService
	cookieName string
	loginURL   string
}

func NewAuthenticator(tokens *token.Manager, accounts service.AccountService, cookieName, loginURL string) *Authenticator {
	return &Authenticator{tokens: tokens, accounts: accounts, cookieName: cookieName, loginURL: loginURL}
}

// Load 解析会话并注入当前用户；无会话或会话无效时按匿名处理
func (a *Authenticator) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(a.cookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}
		claims, err := a.tokens.Parse(raw)
		if err != nil {
			a.ClearSession(c)
			c.Next()
			return
		}
		u, err := a.accounts.GetByID(c.Request.Context(), claims.Subject)
		if err != nil {
			logger.Debug("session user not loaded", zap.String("user", claims.Subject), zap.Error(err))
			a.ClearSession(c)
			c.Next()
			return
		}
		c.Set(currentUserKey, u)
		c.Next()
	}
}

// Required 匿名访问跳转登录页，并带上原地址
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, a.LoginRedirect(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginRedirect 登录页地址，next 为登录后返回的路径
func (a *Authenticator) LoginRedirect(next string) string {
	return a.loginURL + "?next=" + url.QueryEscape(next)
}

func (a *Authenticator) SetSession(c *gin.Context, u *model.User) error {
	tok, err := a.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookieName, tok, int(a.tokens.TTL().Seconds()), "/", "", false, true)
	return nil
}

func (a *Authenticator) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookieName, "", -1, "/", "", false, true)
}

// CurrentUser 当前登录用户，匿名时为 nil
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}

// CurrentUserID 匿名时为空串
func CurrentUserID(c *gin.Context) string {
	if u := CurrentUser(c); u != nil {
		return u.ID
	}
	return ""
}
