package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/three-level-auth/internal/config"
	"github.com/iliyamo/three-level-auth/internal/handler"
	"github.com/iliyamo/three-level-auth/internal/logging"
	"github.com/iliyamo/three-level-auth/internal/middleware"
)

// maxUploadSize caps multipart image uploads.
const maxUploadSize = "10M"

// Deps bundles everything the routes need.  Redis and Store may be nil: the
// rate limiter then passes every request and /healthz skips the store ping.
type Deps struct {
	Auth    *handler.AuthHandler
	Pattern *handler.PatternHandler
	Facial  *handler.FacialHandler
	Store   handler.Pinger

	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
	Redis     *redis.Client
	Log       logging.Logger
}

// New builds an Echo instance with the global middleware and every route
// registered.
func New(d Deps) *echo.Echo {
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	// rate-limit keys use the peer address; forwarding headers are client controlled
	e.IPExtractor = echo.ExtractIPDirect()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLog(d.Log))
	e.Use(middleware.CORS(d.CORS.AllowOrigins, d.CORS.AllowCredentials))

	RegisterRoutes(e, d)
	return e
}

// RegisterRoutes maps the credential endpoints.  Paths keep the casing the
// browser client already calls.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health(d.Store))

	rl := middleware.RateLimit(d.RateLimit, d.Redis, d.Log)

	// password factor
	e.POST("/SignUp", d.Auth.SignUp, rl)
	e.POST("/login", d.Auth.Login, rl)

	// pattern factor
	e.POST("/Pattern_Recognition", d.Pattern.Recognition, rl)
	e.POST("/Pattern_Validation", d.Pattern.Validation, rl)

	// facial factor
	e.POST("/api/facial_capture", d.Facial.Capture, rl)
	e.POST("/facial_verification", d.Facial.Verification, rl)

	// multipart uploads
	upload := echomw.BodyLimit(maxUploadSize)
	e.POST("/facial-register/", d.Facial.UploadRegister, rl, upload)
	e.POST("/facial-authentication/", d.Facial.UploadAuthenticate, rl, upload)
	e.POST("/facial_capture", d.Facial.UploadCapture, rl, upload)
}
