// @title Waypoint API
// @description API for the personal goal dashboard "Waypoint"
// @BasePath /api/v1
// @schemes http
package main

import (
	"database/sql"
	"log"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/limbo/waypoint/internal/api"
	"github.com/limbo/waypoint/internal/repository"
	"github.com/limbo/waypoint/internal/service"
	"github.com/limbo/waypoint/migrations"
	"github.com/limbo/waypoint/pkg/cleanup"
	"github.com/limbo/waypoint/pkg/config"
	jwtservice "github.com/limbo/waypoint/pkg/jwt_service"
)

func init() {
	service.InitValidator()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	if err := runMigrations(dbCfg.ConnString()); err != nil {
		log.Fatal("migrations error: " + err.Error())
	}
	defer cleanup.CleanUp()

	goalsRepo := repository.NewGoalsRepo(&dbCfg)
	entriesRepo := repository.NewEntriesRepo(&dbCfg)
	serv := api.New(&api.ServicesList{
		UserService:      service.NewUserService(repository.NewUsersRepo(&dbCfg)),
		GoalsService:     service.NewGoalsService(goalsRepo),
		EntriesService:   service.NewEntriesService(goalsRepo, entriesRepo),
		MemosService:     service.NewMemosService(repository.NewMemosRepo(&dbCfg)),
		DashboardService: service.NewDashboardService(goalsRepo, entriesRepo, nil),
		JwtService:       jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetStringOr("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}

func runMigrations(connString string) error {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return err
	}
	defer db.Close()
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
