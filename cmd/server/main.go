package main

import (
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"conforma_app_echo/internal/handlers"
	authMiddleware "conforma_app_echo/internal/middleware"
	"conforma_app_echo/internal/nav"
	"conforma_app_echo/internal/services"
)

// TemplateRenderer is a custom html/template renderer for Echo
// Uses per-page template cloning to allow each page to define its own blocks
type TemplateRenderer struct {
	templates map[string]*template.Template
}

// NewTemplateRenderer creates a template renderer with per-page cloning
func NewTemplateRenderer() *TemplateRenderer {
	templates := make(map[string]*template.Template)

	// Parse base layout and partials as the foundation
	baseTemplate := template.Must(template.ParseGlob("web/templates/layouts/*.html"))
	template.Must(baseTemplate.ParseGlob("web/templates/partials/*.html"))

	// Find all page templates and clone base for each
	pages, err := filepath.Glob("web/templates/pages/*.html")
	if err != nil {
		log.Fatal(err)
	}

	for _, page := range pages {
		pageName := filepath.Base(page)
		// Clone the base template for this page
		pageTemplate := template.Must(baseTemplate.Clone())
		// Parse the page-specific template
		template.Must(pageTemplate.ParseFiles(page))
		templates[pageName] = pageTemplate
	}

	// Also parse standalone templates (like login) that don't use the base layout
	standalonePages, _ := filepath.Glob("web/templates/*.html")
	for _, page := range standalonePages {
		pageName := filepath.Base(page)
		if _, exists := templates[pageName]; !exists {
			templates[pageName] = template.Must(template.ParseFiles(page))
		}
	}

	return &TemplateRenderer{templates: templates}
}

// Render renders a template document
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}
	// Page templates render through the base layout, standalone
	// templates (like login) execute directly
	if tmpl.Lookup("base") != nil {
		return tmpl.ExecuteTemplate(w, "base", data)
	}
	return tmpl.Execute(w, data)
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize Firebase
	credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credPath == "" {
		credPath = "./firebase-service-account.json"
	}

	authClient, err := services.InitFirebase(credPath)
	if err != nil {
		log.Printf("Warning: Firebase initialization failed: %v", err)
		log.Println("Auth features will not work until valid credentials are provided")
	}

	// Initialize Database
	var db *gorm.DB
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL != "" {
		var err error
		db, err = services.InitDB(databaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		// Run auto-migration
		if err := services.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}

		// Load the built-in framework catalogs
		if err := services.SeedFrameworks(db); err != nil {
			log.Fatalf("Failed to seed frameworks: %v", err)
		}
	} else {
		log.Println("Warning: DATABASE_URL not set, database features disabled")
	}

	// Initialize Redis cache
	var cache *services.RedisCache
	redisURL := os.Getenv("REDIS_URL")
	if redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			log.Printf("Warning: Redis initialization failed: %v", err)
			log.Println("Dashboard metrics will be computed on every request")
			cache = nil
		}
	} else {
		log.Println("Warning: REDIS_URL not set, caching disabled")
	}

	// Breadcrumb configuration
	navCfgPath := os.Getenv("NAV_CONFIG_PATH")
	if navCfgPath == "" {
		navCfgPath = "config/navigation.yaml"
	}
	navCfg, err := nav.LoadConfig(navCfgPath)
	if err != nil {
		log.Fatalf("Failed to load navigation config: %v", err)
	}
	trail := handlers.NewTrail(navCfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = authMiddleware.CustomErrorHandler

	// Template renderer with per-page cloning
	e.Renderer = NewTemplateRenderer()

	// Static file serving
	e.Static("/static", "web/static")

	// Services
	metrics := services.NewMetricsService(db, cache)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authClient, db)
	dashboardHandler := handlers.NewDashboardHandler(metrics, trail)
	frameworkHandler := handlers.NewFrameworkHandler(db, trail)
	assessmentHandler := handlers.NewAssessmentHandler(db, metrics, trail)
	evalHandler := handlers.NewEvalHandler(db, trail)
	settingsHandler := handlers.NewSettingsHandler(db, trail)
	userHandler := handlers.NewUserHandler(db, trail)
	navHandler := handlers.NewNavHandler(trail)

	// Public routes
	e.GET("/login", authHandler.LoginPage)
	e.POST("/auth/login", authHandler.HandleLogin)
	e.POST("/auth/logout", authHandler.HandleLogout)
	e.GET("/share/assessments/:token", assessmentHandler.ShowShared)

	// Protected routes
	protected := e.Group("")
	protected.Use(authMiddleware.RequireAuth(authClient))

	// Dashboards
	protected.GET("/dashboard", dashboardHandler.Executive)
	protected.GET("/dashboard/compliance", dashboardHandler.Compliance)
	protected.GET("/dashboard/risk", dashboardHandler.Risk)

	// Framework browsing
	protected.GET("/frameworks", frameworkHandler.ListFrameworks)
	protected.GET("/frameworks/:code", frameworkHandler.ShowFramework)
	protected.GET("/frameworks/:code/controls/:id", frameworkHandler.ShowControl)

	// Assessments
	protected.GET("/assessments", assessmentHandler.ListAssessments)
	protected.GET("/assessments/:id/edit", assessmentHandler.EditAssessmentPage)
	protected.POST("/assessments/:id/update", assessmentHandler.UpdateAssessment)

	// Eval workbench
	protected.GET("/evals", evalHandler.ListDatasets)
	protected.GET("/evals/create", evalHandler.CreateDatasetPage)
	protected.POST("/evals", evalHandler.StoreDataset)
	protected.GET("/evals/:id", evalHandler.ShowDataset)
	protected.POST("/evals/:id/update", evalHandler.UpdateDataset)
	protected.POST("/evals/:id/samples", evalHandler.AddSample)
	protected.POST("/evals/:id/samples/:sampleId/delete", evalHandler.DeleteSample)
	protected.GET("/evals/:id/experiments/:experimentId", evalHandler.ShowExperiment)

	// Settings
	protected.GET("/settings/api-keys", settingsHandler.ListAPIKeys)
	protected.POST("/settings/api-keys", settingsHandler.CreateAPIKey)
	protected.POST("/settings/api-keys/:id/revoke", settingsHandler.RevokeAPIKey)
	protected.GET("/settings/integrations", settingsHandler.ListIntegrations)
	protected.POST("/settings/integrations", settingsHandler.CreateIntegration)
	protected.POST("/settings/integrations/:id/toggle", settingsHandler.ToggleIntegration)
	protected.POST("/settings/integrations/:id/test", settingsHandler.TestIntegration)
	protected.GET("/users/:id/notifications", settingsHandler.GetNotifPreference)
	protected.POST("/users/:id/notifications", settingsHandler.UpdateNotifPreference)

	// User management
	protected.GET("/users", userHandler.ListUsers)
	protected.GET("/users/create", userHandler.CreateUserPage)
	protected.POST("/users", userHandler.StoreUser)
	protected.GET("/users/:id/edit", userHandler.EditUserPage)
	protected.POST("/users/:id/update", userHandler.UpdateUser)
	protected.POST("/users/:id/delete", userHandler.DeleteUser)

	// Breadcrumb activation for HTMX clients
	protected.POST("/nav/crumb", navHandler.ActivateCrumb)

	// Machine API, authenticated by API key
	api := e.Group("/api/v1")
	api.Use(authMiddleware.RequireAPIKey(db))
	api.GET("/metrics", dashboardHandler.MetricsJSON)

	// Redirect root to dashboard (or login if not authenticated)
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusTemporaryRedirect, "/dashboard")
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
