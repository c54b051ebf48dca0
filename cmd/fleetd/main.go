package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	fleetpb "github.com/fleetdocs/fleetdocs/gen/proto/fleet/v1"
	"github.com/fleetdocs/fleetdocs/internal/assignments"
	"github.com/fleetdocs/fleetdocs/internal/common"
	"github.com/fleetdocs/fleetdocs/internal/companies"
	"github.com/fleetdocs/fleetdocs/internal/detect"
	"github.com/fleetdocs/fleetdocs/internal/drivers"
	"github.com/fleetdocs/fleetdocs/internal/export"
	"github.com/fleetdocs/fleetdocs/internal/ingest"
	"github.com/fleetdocs/fleetdocs/internal/notify"
	"github.com/fleetdocs/fleetdocs/internal/ratelimit"
	repo "github.com/fleetdocs/fleetdocs/internal/repository"
	"github.com/fleetdocs/fleetdocs/internal/scheduler"
	svc "github.com/fleetdocs/fleetdocs/internal/server"
	"github.com/fleetdocs/fleetdocs/internal/storage"
	"github.com/fleetdocs/fleetdocs/internal/trucks"
)

func main() {
	// Structured logger: message plus variables, no time/level noise.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if cfg.Database.DSN == "" {
		logger.Error("missing DB_URL environment variable")
		os.Exit(1)
	}
	if cfg.AWS.Region == "" || cfg.AWS.Bucket == "" {
		logger.Error("AWS_REGION and S3_BUCKET_NAME env vars are required")
		os.Exit(2)
	}
	// GRPC_ADDR accepts a bare port for convenience.
	addr := cfg.Server.GRPCAddr
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entc, pool, err := repo.Open(ctx, repo.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close(entc, pool, logger)

	if err := repo.HealthCheck(ctx, pool, 5*time.Second, logger); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	// Document pipeline: S3 for files, Textract for text.
	store, err := storage.NewS3Store(ctx, cfg.AWS.Bucket, cfg.AWS.Region, logger)
	if err != nil {
		logger.Error("failed to build object store", "error", err)
		os.Exit(1)
	}
	detector, err := detect.NewTextractDetector(ctx, cfg.AWS.Bucket, cfg.AWS.Region, logger)
	if err != nil {
		logger.Error("failed to build text detector", "error", err)
		os.Exit(1)
	}
	orch := ingest.NewOrchestrator(store, detector, ingest.Config{
		PollInterval: cfg.Ingest.PollInterval,
		MaxPolls:     cfg.Ingest.MaxPolls,
	}, logger)

	companyRepo := repo.NewCompanyRepository(entc, logger)
	truckRepo := repo.NewTruckRepository(entc, logger)
	driverRepo := repo.NewDriverRepository(entc, logger)
	assignmentRepo := repo.NewAssignmentRepository(entc, logger)

	// Notifications: SES when a sender address is configured, log otherwise.
	var sender notify.Sender
	if cfg.Notify.FromAddress != "" {
		sender, err = notify.NewSESSender(ctx, cfg.Notify.FromAddress, cfg.AWS.Region)
		if err != nil {
			logger.Error("failed to build ses sender", "error", err)
			os.Exit(1)
		}
	} else {
		sender = notify.NewLogSender(logger)
	}
	queue := notify.NewQueue(sender, logger,
		notify.WithWorkers(cfg.Notify.Workers),
		notify.WithQueueSize(512),
	)

	limiter := ratelimit.New(5, time.Minute)
	limiter.StartSweeper(ctx, 10*time.Minute)

	sched := scheduler.New(assignmentRepo, scheduler.Config{
		ArchiveEvery: cfg.Scheduler.ArchiveEvery,
		ArchiveAfter: cfg.Scheduler.ArchiveAfter,
		PurgeEvery:   cfg.Scheduler.PurgeEvery,
		PurgeAfter:   cfg.Scheduler.PurgeAfter,
	}, logger)
	sched.Start(ctx)

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", addr, "error", err)
		os.Exit(1)
	}
	grpcServer := grpc.NewServer()

	companySvc := companies.NewService(companyRepo, logger)
	fleetpb.RegisterCompaniesServiceServer(grpcServer, svc.NewCompanyServer(companySvc, logger))

	truckSvc := trucks.NewService(truckRepo, companyRepo, assignmentRepo, orch, store, queue, limiter, logger)
	fleetpb.RegisterTrucksServiceServer(grpcServer, svc.NewTruckServer(truckSvc, logger))

	driverSvc := drivers.NewService(driverRepo, companyRepo, assignmentRepo, orch, store, queue, logger)
	fleetpb.RegisterDriversServiceServer(grpcServer, svc.NewDriverServer(driverSvc, logger))

	assignmentSvc := assignments.NewService(assignmentRepo, truckRepo, driverRepo, logger)
	fleetpb.RegisterAssignmentsServiceServer(grpcServer, svc.NewAssignmentServer(assignmentSvc, logger))

	fleetpb.RegisterIngestionServiceServer(grpcServer, svc.NewIngestionServer(orch, logger))

	exportSvc := export.NewService(truckRepo, logger)
	fleetpb.RegisterExportServiceServer(grpcServer, svc.NewExportServer(exportSvc, logger))

	// Register gRPC health service
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	logger.Info("fleetd listening", "addr", addr)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			slog.Error("gRPC serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	queue.Shutdown(context.Background())
	grpcServer.GracefulStop()
	sched.Wait()
}
