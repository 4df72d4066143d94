package app

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/encurtador/shortener/internal/apperrors"
	"github.com/encurtador/shortener/internal/auth"
	"github.com/encurtador/shortener/internal/config"
	"github.com/encurtador/shortener/internal/hash"
	"github.com/encurtador/shortener/internal/logic"
	authMiddleware "github.com/encurtador/shortener/internal/middleware/auth"
	"github.com/encurtador/shortener/internal/models"
	"github.com/encurtador/shortener/internal/store"
)

const cookieMaxAge = 3600 * 24 * 30

var errBadRequestBody = errors.New("body cannot be decoded")

type App struct {
	config   *config.ServerConfig
	store    store.Store
	urls     *logic.URLService
	users    *logic.UserService
	resolver *auth.Resolver
	logger   *zap.SugaredLogger
}

func NewApp(config *config.ServerConfig, storage store.Store, logger *zap.SugaredLogger) *App {
	hasher := hash.NewHasher(config.BcryptCost)

	return &App{
		config:   config,
		store:    storage,
		urls:     logic.NewURLService(storage, logger.Named("urls")),
		users:    logic.NewUserService(storage, hasher, config.Secret, logger.Named("users")),
		resolver: auth.NewResolver(config.Secret, logger.Named("auth")),
		logger:   logger,
	}
}

// respondError is the single point translating domain errors into boundary
// responses.
func (a *App) respondError(c *gin.Context, err error) {
	status, body := apperrors.ToResponse(err, c.Request.URL.Path, a.config.DevMode)
	if status == http.StatusInternalServerError {
		a.logger.Errorf("unclassified failure on %s: %v", c.Request.URL.Path, err)
	}
	c.JSON(status, body)
}

func (a *App) shortURLFor(code string) (string, error) {
	result, err := url.JoinPath(a.config.RedirectBaseURL, code)
	if err != nil {
		return "", apperrors.NewOperationFailed("URL cannot be joined", err)
	}
	return result, nil
}

func (a *App) ShortenURL(c *gin.Context) {
	var req models.ShortenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		a.respondError(c, apperrors.NewInvalidInput("there are validation errors in the submitted data",
			apperrors.FieldError{Field: "url", Message: errBadRequestBody.Error()}))
		return
	}

	record, err := a.urls.Create(c.Request.Context(), req.URL, authMiddleware.CallerID(c))
	if err != nil {
		a.respondError(c, err)
		return
	}

	result, err := a.shortURLFor(record.ShortCode)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ShortenRes{
		Result:    result,
		ShortCode: record.ShortCode,
	})
}

func (a *App) RedirectToOriginal(c *gin.Context) {
	record, err := a.urls.Resolve(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, record.OriginalURL)
}

func (a *App) GetUserRecords(c *gin.Context) {
	records, err := a.urls.ListByOwner(c.Request.Context(), authMiddleware.CallerID(c))
	if err != nil {
		a.respondError(c, err)
		return
	}

	if len(records) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (a *App) UpdateUserURL(c *gin.Context) {
	var req models.UpdateURLReq
	if err := c.ShouldBindJSON(&req); err != nil {
		a.respondError(c, apperrors.NewInvalidInput("there are validation errors in the submitted data",
			apperrors.FieldError{Field: "url", Message: errBadRequestBody.Error()}))
		return
	}

	record, err := a.urls.Update(c.Request.Context(), c.Param("shortCode"), req.URL, authMiddleware.CallerID(c))
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (a *App) DeleteUserURL(c *gin.Context) {
	record, err := a.urls.Delete(c.Request.Context(), c.Param("shortCode"), authMiddleware.CallerID(c))
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (a *App) Register(c *gin.Context) {
	var req models.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		a.respondError(c, apperrors.NewInvalidInput("there are validation errors in the submitted data"))
		return
	}

	user, token, err := a.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.SetCookie(auth.CookieName, token, cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusCreated, models.AuthRes{User: user, Token: token})
}

func (a *App) Login(c *gin.Context) {
	var req models.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		a.respondError(c, apperrors.NewInvalidInput("there are validation errors in the submitted data"))
		return
	}

	user, token, err := a.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.SetCookie(auth.CookieName, token, cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, models.AuthRes{User: user, Token: token})
}

func (a *App) Ping(c *gin.Context) {
	if err := a.store.Ping(c.Request.Context()); err != nil {
		a.logger.Errorf("error opening connection to DB: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
