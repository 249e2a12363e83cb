package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	flags "github.com/jessevdk/go-flags"

	"github.com/Arkcutt12/calculadora-presupuestos-laser/config"
	"github.com/Arkcutt12/calculadora-presupuestos-laser/database"
	"github.com/Arkcutt12/calculadora-presupuestos-laser/engine"
	"github.com/Arkcutt12/calculadora-presupuestos-laser/handlers"
	"github.com/Arkcutt12/calculadora-presupuestos-laser/middleware"
)

type options struct {
	Config   string `long:"config" default:"laser_config.json" description:"Configuration document"`
	DB       string `long:"db" default:"presupuestos.db" description:"SQLite database for users and quote history"`
	Port     string `long:"port" default:"8000" description:"HTTP listen port"`
	Job      string `long:"job" description:"Compute one quote from a canonical job JSON file and exit"`
	Frontend string `long:"frontend" description:"Compute one quote from a raw frontend JSON file and exit"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	store := config.NewStore(opts.Config)

	if opts.Job != "" || opts.Frontend != "" {
		runOnce(store, opts)
		return
	}

	database.InitDB(opts.DB)

	r := gin.Default()
	r.LoadHTMLGlob("templates/*")
	r.Use(middleware.CORS())
	r.Use(middleware.RequestID())

	sessionStore := cookie.NewStore([]byte(sessionSecret()))
	r.Use(sessions.Sessions("presupuestos_session", sessionStore))

	env := &handlers.Env{Cfg: store}

	r.GET("/", env.Root)
	r.GET("/health", env.Health)
	r.GET("/materiales", env.Materials)
	r.GET("/config", env.GetConfig)
	r.POST("/calculate", env.Calculate)
	r.POST("/calculate/job", env.CalculateJob)

	r.GET("/login", env.ShowLogin)
	r.POST("/login", env.Login)
	r.GET("/logout", env.Logout)

	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/quotes/save", env.SaveQuote)
		authorized.GET("/history", env.ShowHistory)
		authorized.GET("/quotes/:id/print", env.PrintQuote)

		admin := authorized.Group("/settings")
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("", env.ShowSettings)
			admin.POST("/global", env.UpdateGlobal)
			admin.POST("/material/update", env.UpdateMaterial)
			admin.POST("/material/add", env.AddMaterial)
		}
	}

	r.Run(":" + opts.Port)
}

func sessionSecret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "presupuestos-dev-secret"
}

// runOnce computes a single quote from a file and prints the text
// breakdown.
func runOnce(store *config.Store, opts options) {
	cfg := store.Snapshot()

	var job engine.Job
	var err error

	if opts.Frontend != "" {
		var raw map[string]any
		if err := readJSON(opts.Frontend, &raw); err != nil {
			log.Fatalf("No se pudo leer el JSON del frontend: %v", err)
		}
		job, err = engine.Normalize(raw)
		if err != nil {
			log.Fatalf("No se pudo normalizar el JSON del frontend: %v", err)
		}
	} else {
		if err := readJSON(opts.Job, &job); err != nil {
			log.Fatalf("No se pudo leer el job JSON: %v", err)
		}
	}

	res, err := engine.Aggregate(cfg, job)
	if err != nil {
		var notFound *engine.MaterialNotFoundError
		if errors.As(err, &notFound) {
			fmt.Println(engine.FormatMaterialNotFound(notFound))
			os.Exit(1)
		}
		log.Fatalf("Error calculando presupuesto: %v", err)
	}

	fmt.Println(engine.FormatBudget(res, cfg.MarginPercent))
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
