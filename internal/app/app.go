package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/shop-console/internal/cfg"
	v1Grpc "github.com/DRSN-tech/shop-console/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/shop-console/internal/delivery/v1/http"
	"github.com/DRSN-tech/shop-console/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/shop-console/internal/infrastructure/minio"
	"github.com/DRSN-tech/shop-console/internal/infrastructure/shopapi"
	s3Repo "github.com/DRSN-tech/shop-console/internal/repository/minio"
	"github.com/DRSN-tech/shop-console/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/shop-console/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/shop-console/internal/repository/redis"
	redisConv "github.com/DRSN-tech/shop-console/internal/repository/redis/converter"
	"github.com/DRSN-tech/shop-console/internal/usecase"
	"github.com/DRSN-tech/shop-console/pkg/clients"
	"github.com/DRSN-tech/shop-console/pkg/closer"
	"github.com/DRSN-tech/shop-console/pkg/e"
	"github.com/DRSN-tech/shop-console/pkg/logger"
	"github.com/DRSN-tech/shop-console/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	migrationsSource = "file://db/migrations"
	initTimeout      = 10 * time.Second
	shutdownTimeout  = 15 * time.Second
	healthInterval   = 15 * time.Second
	imageProbeTO     = 5 * time.Second
	kafkaTopicTO     = 10 * time.Second
)

// App — корень композиции консоли: держит серверы и всё, что нужно закрыть при остановке.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv  *v1Http.Server
	grpcSrv  *v1Grpc.GRPCServer
	health   *v1Grpc.HealthReporter
	worker   *kafka.OutboxWorker
	bgCtx    context.Context
	bgCancel context.CancelFunc
}

// NewApp поднимает зависимости. При ошибке уже открытые ресурсы закрываются.
func NewApp(cfg *config.Config, log logger.Logger) (_ *App, err error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0),
	}
	a.bgCtx, a.bgCancel = context.WithCancel(context.Background())

	defer func() {
		if err != nil {
			a.bgCancel()
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if closeErr := a.closer.Close(ctx); closeErr != nil {
				log.Warnf("partial init cleanup: %v", closeErr)
			}
		}
	}()

	initCtx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	db, err := a.initPGDB(initCtx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		log.Errorf(err, "failed to initialize minio client")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := clients.EnsureBucket(initCtx, minioClient, cfg.Minio.BucketName); err != nil {
		log.Errorf(err, "failed to initialize MinIO bucket")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redisClient := clients.NewRedisClient(cfg.Redis)
	a.closer.Add("redis", func(context.Context) error { return redisClient.Close() })
	if err := redisClient.Ping(initCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	shopAPI := shopapi.NewClient(cfg.ShopAPI, log)
	if status, err := shopAPI.Status(initCtx); err != nil {
		// Консоль поднимается и без API: список будет пустым, пока API не ответит.
		log.Warnf("shop API %s is not reachable: %v", cfg.ShopAPI.BaseURL, err)
	} else {
		log.Infof("shop API %s status: %s", cfg.ShopAPI.BaseURL, status)
	}
	probe := shopapi.NewImageProbe(imageProbeTO, log)

	producer := kafka.NewProducer(log, cfg.Kafka)
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })
	if err := producer.EnsureTopic(kafkaTopicTO); err != nil {
		log.Errorf(err, "failed to ensure kafka topic")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	sessionRepo := redis.NewSessionRepo(redisClient, redisConv.NewSessionConverter(), cfg.Session, log)
	imageRepo := s3Repo.NewImageRepo(minioClient)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverter())

	// Очистка MinIO должна пережить остановку серверов, поэтому у неё свой контекст.
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, log, cleanupCtx)
	a.closer.Add("minio cleanup", func(ctx context.Context) error {
		defer cleanupCancel()
		return imagesInfra.WaitForCleanup(ctx)
	})

	journal := usecase.NewAuditJournal(outboxRepo, kafka.NewAuditEncoder(), db.Pool, log)

	a.worker = kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)
	a.closer.AddFunc("outbox worker", a.worker.Stop)

	consoleUC := usecase.NewConsoleUC(sessionRepo, shopAPI, imagesInfra, probe, journal, log, cfg.ShopAPI.ListLimit)

	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, log)
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	a.health = v1Grpc.NewHealthReporter(a.grpcSrv.Health(), healthInterval, log,
		v1Grpc.Check{Name: "postgres", Probe: db.Ping},
		v1Grpc.Check{Name: "redis", Probe: redisClient.Ping},
		v1Grpc.Check{Name: "shop api", Probe: func(ctx context.Context) error {
			_, err := shopAPI.Status(ctx)
			return err
		}},
	)

	router := v1Http.NewRouter(chi.NewRouter(), log)
	router.Init(consoleUC, cfg.Http, cfg.Session)

	a.httpSrv = v1Http.NewServer(router, cfg.Http)
	a.closer.Add("http server", a.httpSrv.Stop)

	return a, nil
}

// Run запускает серверы и фоновые задачи и блокируется до сигнала или падения сервера.
func (a *App) Run() error {
	a.worker.Start(a.bgCtx)
	go a.health.Run(a.bgCtx)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			grpcErrCh <- err
		}
	}()

	httpErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			httpErrCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-httpErrCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	return errors.Join(appErr, a.stop())
}

func (a *App) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.bgCancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		return err
	}

	a.logger.Infof("Application shutdown complete")
	return nil
}

func (a *App) initPGDB(ctx context.Context) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, a.cfg.Db)
	if err != nil {
		a.logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.AddFunc("postgres", db.Close)

	if err := db.RunMigrations(migrationsSource, a.logger); err != nil {
		a.logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
