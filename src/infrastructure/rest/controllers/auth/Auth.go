package auth

import (
	"errors"
	"net/http"

	useCaseAuth "go-bulk-messaging-dashboard/src/application/usecases/auth"
	"go-bulk-messaging-dashboard/src/domain/common"
	domainErrors "go-bulk-messaging-dashboard/src/domain/errors"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"
	"go-bulk-messaging-dashboard/src/infrastructure/rest/controllers"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type IAuthController interface {
	Login(ctx *gin.Context)
	GetAccessTokenByRefreshToken(ctx *gin.Context)
}

type AuthController struct {
	authUseCase   useCaseAuth.IAuthUseCase
	commonService common.CommonService
	Logger        *logger.Logger
}

func NewAuthController(authUsecase useCaseAuth.IAuthUseCase, commonService common.CommonService, loggerInstance *logger.Logger) IAuthController {
	return &AuthController{
		authUseCase:   authUsecase,
		commonService: commonService,
		Logger:        loggerInstance,
	}
}

func (c *AuthController) Login(ctx *gin.Context) {
	c.Logger.Info("User login request")
	var request LoginRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		c.Logger.Error("Error binding JSON for login", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			c.commonService.AppendValidationErrors(ctx, ve, request)
			return
		}
		appError := domainErrors.NewAppError(err, domainErrors.ValidationError)
		_ = ctx.Error(appError)
		return
	}

	loggedIn, authTokens, err := c.authUseCase.Login(request.Email, request.Password)
	if err != nil {
		c.Logger.Error("Login failed", zap.Error(err), zap.String("email", request.Email))
		_ = ctx.Error(err)
		return
	}

	response := LoginResponse{
		Data: UserData{
			UserName: loggedIn.UserName,
			Email:    loggedIn.Email,
			Role:     loggedIn.Role,
			Status:   loggedIn.Status,
			ID:       loggedIn.ID,
		},
		Security: SecurityData{
			JWTAccessToken:            authTokens.AccessToken,
			JWTRefreshToken:           authTokens.RefreshToken,
			ExpirationAccessDateTime:  authTokens.ExpirationAccessDateTime,
			ExpirationRefreshDateTime: authTokens.ExpirationRefreshDateTime,
		},
	}

	c.Logger.Info("Login successful", zap.String("email", request.Email), zap.Int("userID", loggedIn.ID))
	ctx.JSON(http.StatusOK, response)
}

func (c *AuthController) GetAccessTokenByRefreshToken(ctx *gin.Context) {
	c.Logger.Info("Token refresh request")
	var request AccessTokenRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		c.Logger.Error("Error binding JSON for token refresh", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			c.commonService.AppendValidationErrors(ctx, ve, request)
			return
		}
		appError := domainErrors.NewAppError(err, domainErrors.ValidationError)
		_ = ctx.Error(appError)
		return
	}

	refreshed, authTokens, err := c.authUseCase.AccessTokenByRefreshToken(request.RefreshToken)
	if err != nil {
		c.Logger.Error("Token refresh failed", zap.Error(err))
		_ = ctx.Error(err)
		return
	}

	response := LoginResponse{
		Data: UserData{
			UserName: refreshed.UserName,
			Email:    refreshed.Email,
			Role:     refreshed.Role,
			Status:   refreshed.Status,
			ID:       refreshed.ID,
		},
		Security: SecurityData{
			JWTAccessToken:            authTokens.AccessToken,
			JWTRefreshToken:           authTokens.RefreshToken,
			ExpirationAccessDateTime:  authTokens.ExpirationAccessDateTime,
			ExpirationRefreshDateTime: authTokens.ExpirationRefreshDateTime,
		},
	}

	c.Logger.Info("Token refresh successful", zap.Int("userID", refreshed.ID))
	ctx.JSON(http.StatusOK, response)
}
