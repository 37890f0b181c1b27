package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/storage/redis/v3"
	"github.com/khanghh/vbs/internal/attendance"
	"github.com/khanghh/vbs/internal/audit"
	"github.com/khanghh/vbs/internal/categories"
	"github.com/khanghh/vbs/internal/common"
	"github.com/khanghh/vbs/internal/config"
	"github.com/khanghh/vbs/internal/events"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/internal/handlers/api"
	"github.com/khanghh/vbs/internal/handlers/web"
	"github.com/khanghh/vbs/internal/identity"
	"github.com/khanghh/vbs/internal/lockout"
	"github.com/khanghh/vbs/internal/middlewares"
	"github.com/khanghh/vbs/internal/middlewares/csrf"
	"github.com/khanghh/vbs/internal/middlewares/sessions"
	"github.com/khanghh/vbs/internal/render"
	"github.com/khanghh/vbs/internal/reports"
	"github.com/khanghh/vbs/internal/schedule"
	"github.com/khanghh/vbs/internal/settings"
	"github.com/khanghh/vbs/internal/store"
	"github.com/khanghh/vbs/internal/students"
	"github.com/khanghh/vbs/internal/users"
	"github.com/khanghh/vbs/model"
	"github.com/khanghh/vbs/params"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

var (
	app       *cli.App
	gitCommit string
	gitDate   string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML config file",
		Value: "config.yaml",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
	emailFlag = &cli.StringFlag{
		Name:     "email",
		Usage:    "Sign-in email of the new user",
		Required: true,
	}
	nameFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "Full name of the new user",
	}
	passwordFlag = &cli.StringFlag{
		Name:     "password",
		Usage:    "Initial password",
		Required: true,
	}
	roleFlag = &cli.StringFlag{
		Name:  "role",
		Usage: "VIEWER, STAFF or ADMIN",
		Value: model.RoleAdmin.String(),
	}
)

func init() {
	app = cli.NewApp()
	app.EnableBashCompletion = true
	app.Usage = "vbs - Vacation Bible School administration server"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name: "version",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
		{
			Name:   "create-user",
			Usage:  "Create a sign-in account, typically the first administrator",
			Flags:  []cli.Flag{emailFlag, nameFlag, passwordFlag, roleFlag},
			Action: createUser,
		},
	}
	app.Action = run
}

func mustInitLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func mustInitDatabase(dbConfig config.MySQLConfig) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dbConfig.Dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dbConfig.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if len(dbConfig.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(dbConfig.Replicas))
		for _, dsn := range dbConfig.Replicas {
			replicas = append(replicas, mysql.Open(dsn))
		}
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			slog.Error("Failed to register read replicas", "error", err)
			os.Exit(1)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Failed to get database handle", "error", err)
		os.Exit(1)
	}
	if dbConfig.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	}
	if dbConfig.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	}
	if dbConfig.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(dbConfig.ConnMaxIdleTime) * time.Second)
	}
	if dbConfig.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Second)
	}

	if err := model.AutoMigrate(db); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}
	return db
}

func mustInitRedisStorage(redisCfg config.RedisConfig) *redis.Storage {
	return store.NewRedisStorage(store.RedisConfig{
		URL:         redisCfg.URL,
		PoolSize:    redisCfg.PoolSize,
		ClusterMode: redisCfg.ClusterMode,
	})
}

func mustInitJWTSecret(secret string) string {
	if secret != "" {
		return secret
	}
	secret, err := common.GenerateSecret(32)
	if err != nil {
		slog.Error("Failed to generate jwt secret", "error", err)
		os.Exit(1)
	}
	slog.Warn("jwtSecret is not set, API tokens will not survive a restart")
	return secret
}

func newRateLimiter(storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        params.LoginRateLimitMax,
		Expiration: params.LoginRateLimitWindow,
		Storage:    store.StorageWithPrefix(storage, params.LimiterKeyPrefix),
		LimitReached: func(ctx *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	})
}

type appServices struct {
	authenticator *users.Authenticator
	tracker       *lockout.Tracker
	tokens        *identity.TokenProvider
	resolver      *events.Resolver
	users         *users.UserService
	events        *events.EventService
	students      *students.StudentService
	schedule      *schedule.ScheduleService
	attendance    *attendance.AttendanceService
	categories    *categories.CategoryService
	settings      *settings.SettingsService
	reports       *reports.ReportService
	audit         *audit.Service
}

func newAppServices(db *gorm.DB, siteName string, tracker *lockout.Tracker, tokens *identity.TokenProvider) *appServices {
	// repositories
	var (
		auditRepo      = audit.NewAuditRepository(db)
		userRepo       = users.NewUserRepository(db)
		eventRepo      = events.NewEventRepository(db)
		categoryRepo   = categories.NewCategoryRepository(db)
		studentRepo    = students.NewStudentRepository(db)
		scheduleRepo   = schedule.NewScheduleRepository(db)
		attendanceRepo = attendance.NewAttendanceRepository(db)
		settingsRepo   = settings.NewSettingsRepository(db)
		reportRepo     = reports.NewReportRepository(db)
	)

	auditWriter := audit.NewWriter(auditRepo)
	resolver := events.NewResolver(eventRepo)
	g := guard.New(guard.ContextProvider{}, resolver, guard.NewScopeRepository(db))
	categoryService := categories.NewCategoryService(g, categoryRepo, auditWriter)

	return &appServices{
		authenticator: users.NewAuthenticator(userRepo, tracker),
		tracker:       tracker,
		tokens:        tokens,
		resolver:      resolver,
		users:         users.NewUserService(g, userRepo, auditWriter),
		events:        events.NewEventService(g, eventRepo, auditWriter),
		students:      students.NewStudentService(g, studentRepo, categoryService, auditWriter),
		schedule:      schedule.NewScheduleService(g, scheduleRepo, categoryService, auditWriter),
		attendance:    attendance.NewAttendanceService(g, attendanceRepo, auditWriter),
		categories:    categoryService,
		settings:      settings.NewSettingsService(g, settingsRepo, auditWriter, siteName),
		reports:       reports.NewReportService(g, reportRepo, categoryRepo),
		audit:         audit.NewService(g, auditRepo),
	}
}

func setupAPIRoutes(router fiber.Router, svc *appServices, rateLimiter fiber.Handler) {
	var (
		authHandler     = api.NewAuthHandler(svc.authenticator, svc.tracker, svc.tokens)
		resourceHandler = api.NewResourceHandler(api.ResourceServices{
			Students:   svc.students,
			Schedule:   svc.schedule,
			Attendance: svc.attendance,
			Categories: svc.categories,
			Events:     svc.events,
			Reports:    svc.reports,
			Audit:      svc.audit,
		})
	)

	router.Get("/health", authHandler.GetHealth)
	router.Get("/lockout", authHandler.GetLockout)
	router.Post("/token", rateLimiter, authHandler.PostToken)
	router.Get("/students", resourceHandler.GetStudents)
	router.Get("/schedule", resourceHandler.GetSchedule)
	router.Get("/attendance", resourceHandler.GetAttendance)
	router.Get("/categories", resourceHandler.GetCategories)
	router.Get("/events", resourceHandler.GetEvents)
	router.Get("/reports/summary", resourceHandler.GetSummary)
	router.Get("/audit", resourceHandler.GetAudit)
}

func setupWebRoutes(router fiber.Router, svc *appServices, rateLimiter fiber.Handler) {
	var (
		loginHandler     = web.NewLoginHandler(svc.authenticator, svc.settings)
		dashboardHandler = web.NewDashboardHandler(web.Services{
			Settings:   svc.settings,
			Events:     svc.events,
			Students:   svc.students,
			Schedule:   svc.schedule,
			Attendance: svc.attendance,
			Categories: svc.categories,
			Users:      svc.users,
			Reports:    svc.reports,
		}, svc.resolver)
		rosterHandler = web.NewRosterHandler(svc.students, svc.schedule, svc.attendance)
		adminHandler  = web.NewAdminHandler(svc.events, svc.categories, svc.users, svc.settings)
	)

	router.Get("/", dashboardHandler.GetHome)
	router.Get("/login", loginHandler.GetLogin)
	router.Post("/login", rateLimiter, loginHandler.PostLogin)
	router.Post("/logout", loginHandler.PostLogout)

	router.Post("/students", rosterHandler.PostCreateStudent)
	router.Post("/students/:id/update", rosterHandler.PostUpdateStudent)
	router.Post("/students/:id/delete", rosterHandler.PostDeleteStudent)
	router.Post("/schedule", rosterHandler.PostCreateSession)
	router.Post("/schedule/:id/delete", rosterHandler.PostDeleteSession)
	router.Post("/attendance/check-in", rosterHandler.PostCheckIn)
	router.Post("/attendance/:id/check-out", rosterHandler.PostCheckOut)

	router.Post("/events", adminHandler.PostCreateEvent)
	router.Post("/events/:id/update", adminHandler.PostUpdateEvent)
	router.Post("/events/:id/activate", adminHandler.PostActivateEvent)
	router.Post("/events/:id/delete", adminHandler.PostDeleteEvent)
	router.Post("/categories", adminHandler.PostCreateCategory)
	router.Post("/categories/:id/update", adminHandler.PostUpdateCategory)
	router.Post("/categories/:id/delete", adminHandler.PostDeleteCategory)
	router.Post("/users/:id/role", adminHandler.PostChangeRole)
	router.Post("/settings", adminHandler.PostUpdateSettings)
}

func run(ctx *cli.Context) error {
	cfg, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}

	mustInitLogger(cfg.Debug || ctx.IsSet(debugFlag.Name))

	globalVars := fiber.Map{
		"siteName": cfg.SiteName,
		"baseURL":  cfg.BaseURL,
	}
	if err := render.Initialize(globalVars, cfg.TemplateDir); err != nil {
		slog.Error("Failed to load templates", "error", err)
		return err
	}
	db := mustInitDatabase(cfg.MySQL)

	readinessChecks := []common.ReadinessCheck{common.DatabaseCheck(db)}
	var sharedStorage fiber.Storage = store.NewMemoryStorage()
	if cfg.Redis.URL != "" {
		redisStorage := mustInitRedisStorage(cfg.Redis)
		sharedStorage = redisStorage
		readinessChecks = append(readinessChecks, common.RedisCheck(redisStorage.Conn()))
	}
	lockoutStorage := fiber.Storage(store.NewMemoryStorage())
	if cfg.Lockout.Backend == config.LockoutBackendRedis {
		lockoutStorage = sharedStorage
	}
	slog.Info("Sign-in lockout configured",
		"backend", cfg.Lockout.Backend,
		"maxAttempts", cfg.Lockout.MaxAttempts,
		"window", cfg.Lockout.Window,
		"duration", cfg.Lockout.Duration,
	)

	tracker := lockout.NewTracker(lockout.NewStore(lockoutStorage),
		lockout.WithMaxAttempts(cfg.Lockout.MaxAttempts),
		lockout.WithWindow(cfg.Lockout.Window),
		lockout.WithDuration(cfg.Lockout.Duration),
	)
	tokens := identity.NewTokenProvider(mustInitJWTSecret(cfg.JWTSecret), params.APITokenExpiration, nil)
	svc := newAppServices(db, cfg.SiteName, tracker, tokens)

	router := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		BodyLimit:     params.ServerBodyLimit,
		IdleTimeout:   params.ServerIdleTimeout,
		ReadTimeout:   params.ServerReadTimeout,
		WriteTimeout:  params.ServerWriteTimeout,
		ErrorHandler:  middlewares.ErrorHandler,
	})

	router.Use(recover.New())
	router.Use(logger.New())
	router.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	router.Use(sessions.New(sessions.Config{
		Storage:        store.StorageWithPrefix(sharedStorage, params.SessionKeyPrefix),
		SessionMaxAge:  cfg.Session.SessionMaxAge,
		CookieSecure:   cfg.Session.CookieSecure,
		CookieHttpOnly: cfg.Session.CookieHttpOnly,
		CookieName:     cfg.Session.CookieName,
	}))
	router.Use(csrf.New(csrf.Config{ExcludePaths: []string{"/api/*", "/api/*/*"}}))
	router.Use(identity.Middleware(svc.users, tokens))

	rateLimiter := newRateLimiter(sharedStorage)
	setupAPIRoutes(router.Group("/api"), svc, rateLimiter)
	setupWebRoutes(router, svc, rateLimiter)

	healthCheckCtx, term := context.WithCancel(ctx.Context)
	done := make(chan struct{})
	go common.StartHealthCheckServer(healthCheckCtx, done, readinessChecks...)
	defer func() {
		term()
		<-done
	}()
	return router.Listen(cfg.ListenAddr)
}

func createUser(ctx *cli.Context) error {
	cfg, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}
	mustInitLogger(cfg.Debug || ctx.IsSet(debugFlag.Name))

	role, err := model.ParseRole(ctx.String(roleFlag.Name))
	if err != nil {
		return err
	}

	db := mustInitDatabase(cfg.MySQL)
	g := guard.New(guard.ContextProvider{}, events.NewResolver(events.NewEventRepository(db)), guard.NewScopeRepository(db))
	userService := users.NewUserService(g, users.NewUserRepository(db), audit.NewWriter(audit.NewAuditRepository(db)))
	user, err := userService.CreateUser(ctx.Context, users.CreateUserOptions{
		Email:    ctx.String(emailFlag.Name),
		FullName: ctx.String(nameFlag.Name),
		Password: ctx.String(passwordFlag.Name),
		Role:     role,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created %s user %s (id %d)\n", user.Role, user.Email, user.ID)
	return nil
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
