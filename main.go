package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	s3blob "github.com/geuresti/Hack-The-Woodz-Backend/blob/s3"
	_redis "github.com/geuresti/Hack-The-Woodz-Backend/cache/redis"
	"github.com/geuresti/Hack-The-Woodz-Backend/config"
	"github.com/geuresti/Hack-The-Woodz-Backend/credential"
	handler "github.com/geuresti/Hack-The-Woodz-Backend/handler"
	_pg "github.com/geuresti/Hack-The-Woodz-Backend/repository/pg"
	util "github.com/geuresti/Hack-The-Woodz-Backend/util"
	"github.com/geuresti/Hack-The-Woodz-Backend/util/middleware"

	goredis "github.com/go-redis/redis/v8"
)

func initDatabase(cfg config.DatabaseConfig) *pgxpool.Pool {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		log.Fatalln("Unable to parse database config. error:", err)
	}

	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.Logger = &util.DatabaseLogger{}
	poolConfig.ConnConfig.LogLevel = pgx.LogLevelDebug

	ctx, cancel := util.GetContextWithTimeout(context.Background())
	defer cancel()
	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalln("Unable to create connection pool. error:", err)
	}

	queries := []string{
		_pg.CreateAccountTable(),
		_pg.CreateProfileTable(),
		_pg.CreateProjectTable(),
	}

	for _, q := range queries {
		ctx, cancel = util.GetContextWithTimeout(context.Background())
		defer cancel()
		if _, err := pool.Exec(ctx, q); err != nil {
			log.Fatalln(err)
		}
	}

	return pool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	pool := initDatabase(cfg.Database)
	defer pool.Close()

	rdb := goredis.NewClient(&goredis.Options{
		Addr:            cfg.Redis.Addr,
		Password:        cfg.Redis.Password,
		DB:              _redis.REDIS_DATABASE_AUTH,
		MinRetryBackoff: _redis.REDIS_MIN_RETRY_BACKOFF,
		MaxRetryBackoff: _redis.REDIS_MAX_RETRY_BACKOFF,
	})

	accountRepo := _pg.NewAccountPostgresRepository(pool)
	projectRepo := _pg.NewProjectPostgresRepository(pool)
	tokens := _redis.NewAuthRedisCache(rdb, cfg.Auth.TokenExpiry)
	creds := credential.NewService(accountRepo, tokens)

	ctx, cancel := util.GetContextWithTimeout(context.Background())
	defer cancel()
	blob, err := s3blob.New(
		ctx,
		cfg.S3.Endpoint,
		cfg.S3.Region,
		cfg.S3.AccessKey,
		cfg.S3.SecretKey,
		cfg.S3.Bucket,
		cfg.S3.URLExpiry,
	)
	if err != nil {
		log.Fatalln("Unable to create blob store. error:", err)
	}

	r := mux.NewRouter()
	r.Use(middleware.LoggerMiddleware)

	authMiddleware := func(next http.Handler) http.Handler {
		return middleware.TokenAuthMiddleware(tokens, next)
	}

	handler.NewProjectHandler(
		r,
		authMiddleware,
		projectRepo,
		blob,
	)

	handler.NewAccountHandler(
		r,
		authMiddleware,
		accountRepo,
		projectRepo,
		creds,
	)

	log.Fatal(http.ListenAndServe(cfg.ListenAddr, r))
}
