package main

import (
	"github.com/Sorawitt/account-svc/config"
	"github.com/Sorawitt/account-svc/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
