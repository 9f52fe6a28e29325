package cmd

import (
	"database/sql"
	"net"
	"net/http"

	"github.com/vibast-solutions/ms-go-menu/app/controller"
	menugrpc "github.com/vibast-solutions/ms-go-menu/app/grpc"
	"github.com/vibast-solutions/ms-go-menu/app/mailer"
	"github.com/vibast-solutions/ms-go-menu/app/middleware"
	"github.com/vibast-solutions/ms-go-menu/app/ratelimit"
	"github.com/vibast-solutions/ms-go-menu/app/repository"
	"github.com/vibast-solutions/ms-go-menu/app/service"
	"github.com/vibast-solutions/ms-go-menu/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Long:  `Start both HTTP (Echo) and gRPC servers for the menu service.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type services struct {
	sessions    *service.SessionManager
	auth        service.AuthService
	restaurants service.RestaurantService
	categories  service.CategoryService
	dishes      service.DishService
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	limiter, attempts := newLimiters(cfg)
	notifier := mailer.NewVerificationMailer(mailer.New(cfg.Mail), int(cfg.OTP.CodeTTL.Minutes()))
	if cfg.MockOTPEnabled() {
		logrus.WithField("env", cfg.Env).Warn("Mock verification code is enabled")
	}

	userRepo := repository.NewUserRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	dishRepo := repository.NewDishRepository(db)

	sessions := service.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL)
	svc := &services{
		sessions:    sessions,
		auth:        service.NewAuthService(db, userRepo, sessions, notifier, cfg,
			service.WithLimiter(limiter),
			service.WithAttemptCounter(attempts),
		),
		restaurants: service.NewRestaurantService(restaurantRepo, categoryRepo, dishRepo),
		categories:  service.NewCategoryService(restaurantRepo, categoryRepo, dishRepo),
		dishes:      service.NewDishService(db, restaurantRepo, categoryRepo, dishRepo),
	}

	go startGRPCServer(cfg, svc)

	startHTTPServer(cfg, db, svc)
}

// newLimiters builds the code request limiter and the verification attempt counter over one Redis client.
func newLimiters(cfg *config.Config) (ratelimit.Limiter, ratelimit.AttemptCounter) {
	if cfg.Redis.Addr == "" {
		logrus.Warn("REDIS_ADDR not set, verification codes are not rate limited")
		return ratelimit.NoopLimiter{}, ratelimit.NoopAttemptCounter{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	limiter := ratelimit.NewRedisLimiter(client, cfg.OTP.RequestCooldown, cfg.OTP.RequestWindow, cfg.OTP.RequestMax)
	attempts := ratelimit.NewRedisAttemptCounter(client, cfg.OTP.CodeTTL, cfg.OTP.MaxAttempts)
	return limiter, attempts
}

func newHTTPServer(cfg *config.Config, db *sql.DB, svc *services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	// Session cookies only travel cross-origin with credentials allowed.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOriginFunc:  func(string) (bool, error) { return true, nil },
		AllowCredentials: true,
	}))

	cookies := middleware.CookieOptions{Secure: cfg.IsProduction()}
	authController := controller.NewAuthController(svc.auth, cookies)
	dashboardController := controller.NewDashboardController()
	restaurantController := controller.NewRestaurantController(svc.restaurants)
	categoryController := controller.NewCategoryController(svc.categories)
	dishController := controller.NewDishController(svc.dishes)
	healthController := controller.NewHealthController(db)
	authMiddleware := middleware.NewAuthMiddleware(svc.sessions)

	e.GET("/health", healthController.Health)
	e.GET("/menu/:slug", restaurantController.Menu)

	auth := e.Group("/auth")
	auth.POST("/request-code", authController.RequestCode)
	auth.POST("/verify-code", authController.VerifyCode)
	auth.GET("/session", authController.GetSession)
	auth.POST("/logout", authController.Logout)
	auth.GET("/me", authController.Me, authMiddleware.RequireAuth)

	dashboard := e.Group("/dashboard", authMiddleware.RequireAuth)
	dashboard.GET("/email", dashboardController.GetEmail)
	dashboard.POST("/email", dashboardController.StoreEmail)

	restaurants := e.Group("/restaurants", authMiddleware.RequireAuth)
	restaurants.POST("", restaurantController.Create)
	restaurants.GET("", restaurantController.List)
	restaurants.GET("/:id", restaurantController.Get)
	restaurants.PUT("/:id", restaurantController.Update)
	restaurants.DELETE("/:id", restaurantController.Delete)
	restaurants.POST("/:id/categories", categoryController.Create)
	restaurants.GET("/:id/categories", categoryController.List)
	restaurants.POST("/:id/dishes", dishController.Create)
	restaurants.GET("/:id/dishes", dishController.List)

	categories := e.Group("/categories", authMiddleware.RequireAuth)
	categories.GET("/:id", categoryController.Get)
	categories.PUT("/:id", categoryController.Update)
	categories.DELETE("/:id", categoryController.Delete)

	dishes := e.Group("/dishes", authMiddleware.RequireAuth)
	dishes.GET("/:id", dishController.Get)
	dishes.PUT("/:id", dishController.Update)
	dishes.DELETE("/:id", dishController.Delete)

	return e
}

func startHTTPServer(cfg *config.Config, db *sql.DB, svc *services) {
	e := newHTTPServer(cfg, db, svc)
	defer e.Close()

	httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:         httpAddr,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}

func startGRPCServer(cfg *config.Config, svc *services) {
	grpcAddr := net.JoinHostPort(cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to listen on gRPC port")
	}

	grpcServer := grpc.NewServer(
		grpc.ForceServerCodec(menugrpc.Codec()),
		grpc.UnaryInterceptor(menugrpc.LoggingInterceptor()),
	)
	defer grpcServer.GracefulStop()
	menugrpc.RegisterAuthServiceServer(grpcServer, menugrpc.NewAuthServer(svc.auth, svc.restaurants))

	logrus.WithField("addr", grpcAddr).Info("Starting gRPC server")
	if err := grpcServer.Serve(lis); err != nil {
		logrus.WithError(err).Fatal("Failed to start gRPC server")
	}
}
