package main

import (
	"fmt"
	"net/http"

	"github.com/peoplecore/leave-engine-go/internal/config"
	appHTTP "github.com/peoplecore/leave-engine-go/internal/handler/http"
	"github.com/peoplecore/leave-engine-go/internal/pkg/database"
	"github.com/peoplecore/leave-engine-go/internal/pkg/jwt"
	"github.com/peoplecore/leave-engine-go/internal/repository/postgresql"
	leaveService "github.com/peoplecore/leave-engine-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	transactor := postgresql.NewTransactor(db)

	jwtService := jwt.NewService(cfg.JWT.Secret)
	leaveSvc := leaveService.NewService(transactor, leaveRequestRepo)

	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	router := appHTTP.NewRouter(jwtService, leaveHandler, cfg.App.Env, cfg.App.AllowedOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Leave engine running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
