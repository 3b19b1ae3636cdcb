package main

import (
	"errors"
	"os"

	cmd "github.com/MrSnakeDoc/boxkeep/internal"
	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/MrSnakeDoc/boxkeep/internal/middleware"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, middleware.ErrLogged) {
			logger.LogError("%v", err)
		}
		os.Exit(1)
	}
}
