package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/yesser147/linkedinSocialMedia/internal/api/handler"
	"github.com/yesser147/linkedinSocialMedia/internal/api/middleware"
	"github.com/yesser147/linkedinSocialMedia/internal/core/ports"
	infrahttp "github.com/yesser147/linkedinSocialMedia/internal/infrastructure/http"
	"github.com/yesser147/linkedinSocialMedia/internal/infrastructure/http/handlers"
)

const (
	metricsSubsystem = "http"
	limiterSweep     = time.Minute
	bodyLimit        = "6M"
)

// Services bundles the use cases served over HTTP.
type Services struct {
	Auth        ports.AuthService
	Profiles    ports.ProfileService
	Connections ports.ConnectionService
	Messaging   ports.MessagingService
	Posts       ports.PostService
	Jobs        ports.JobService
	Admins      ports.AdminChecker
	Blocks      ports.BlockChecker
}

// Options tunes the HTTP surface.
type Options struct {
	JWTSecret      string
	TokenTTL       time.Duration
	SecureCookie   bool
	RateLimitRPS   float64
	RateLimitBurst int
	Renderer       echo.Renderer
	Checks         []handlers.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Background housekeeping started here stops when ctx is done.
func NewRouter(ctx context.Context, svc Services, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = opts.Renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddleware(metricsSubsystem))

	// --- Dependencies ---
	auth := middleware.Auth(opts.JWTSecret, nil)
	active := middleware.RejectBlocked(svc.Blocks)
	limiter := middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)
	limiter.StartCleanup(limiterSweep, ctx.Done())
	throttled := limiter.Middleware()

	authHandler := handler.NewAuthHandler(svc.Auth, opts.TokenTTL, opts.SecureCookie, log)
	profileHandler := handler.NewProfileHandler(svc.Profiles)
	connectionHandler := handler.NewConnectionHandler(svc.Connections)
	messageHandler := handler.NewMessageHandler(svc.Messaging)
	postHandler := handler.NewPostHandler(svc.Posts)
	jobHandler := handler.NewJobHandler(svc.Jobs)

	// --- Pages and account flows ---
	e.GET("/", profileHandler.Home, auth, active)
	e.POST("/signup", authHandler.Signup, throttled)
	e.POST("/signin", authHandler.Signin, throttled)
	e.Any("/logout", authHandler.Logout)
	e.GET("/verify/:token", authHandler.Verify)
	e.GET("/password/forgot", authHandler.ForgotPasswordForm)
	e.POST("/password/forgot", authHandler.ForgotPassword, throttled)
	e.GET("/password/reset/:token", authHandler.ResetPasswordForm)
	e.POST("/password/reset/:token", authHandler.ResetPassword, throttled)

	// --- API ---
	api := e.Group("/api")
	api.GET("/post/comments/count/:postId", postHandler.CountComments)

	secured := api.Group("", auth, active)

	profile := secured.Group("/profile")
	profile.GET("", profileHandler.GetOwn)
	profile.PUT("/update", profileHandler.Update)
	profile.POST("/uploadresume", profileHandler.UploadResume)
	profile.POST("/upload-profile-picture", profileHandler.UploadProfilePicture)
	profile.GET("/:username", profileHandler.GetByUsername)

	user := secured.Group("/user")
	user.GET("/search/:username", connectionHandler.Search)
	user.POST("/connection/:userID", connectionHandler.Request)
	user.POST("/connection/accept/:connectionId", connectionHandler.Accept)
	user.POST("/connection/decline/:connectionId", connectionHandler.Decline)
	user.GET("/notifications", connectionHandler.Notifications)
	user.GET("/profileviews", profileHandler.ProfileViews)
	user.GET("/connection/count", connectionHandler.Count)
	user.PUT("/:id/block-status", connectionHandler.SetBlockStatus, middleware.RequireAdmin(svc.Admins))

	messages := secured.Group("/messages")
	messages.GET("", messageHandler.List)
	messages.POST("/conversation/create", messageHandler.CreateConversation)
	messages.POST("/send", messageHandler.Send)
	messages.GET("/message/:conversationId", messageHandler.Open)

	post := secured.Group("/post")
	post.GET("/feed", postHandler.Feed)
	post.POST("/save", postHandler.Create)
	post.POST("/like/:postId", postHandler.ToggleLike)
	post.GET("/likes/:postId", postHandler.LikeStatus)
	post.POST("/comment/:postId", postHandler.AddComment)
	post.DELETE("/comment/:commentId", postHandler.DeleteComment)
	post.GET("/comments/:postId", postHandler.ListComments)
	post.DELETE("/:postId", postHandler.Delete)

	jobs := secured.Group("/jobs")
	jobs.GET("", jobHandler.List)
	jobs.POST("/create", jobHandler.Create)
	jobs.POST("/apply/:jobId", jobHandler.Apply)
	jobs.PUT("/deactivate/:jobId", jobHandler.Deactivate)

	// --- Ops (no auth required) ---
	infrahttp.RegisterHealth(e, opts.Checks...)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
