package util

import (
	"context"
	"log"

	"github.com/jackc/pgx/v4"
)

type DatabaseLogger struct{}

func (d *DatabaseLogger) Log(ctx context.Context, level pgx.LogLevel, msg string, data map[string]interface{}) {
	log.Println("DatabaseLogger:", msg, data["sql"], data["args"])
	if data["err"] != nil {
		log.Println("DatabaseLogger:", "Error:", data["err"])
	}
}
