package services

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	MONITORING_SVC          = "monitoring_svc"
	SERVICE_NAME            = "talynk_admin_backend"
	DEFAULT_PROMETHEUS_PORT = 2112
)

// Domain metrics
var (
	adminSearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_searches_total",
			Help: "Total admin post searches by search type",
		},
		[]string{"type"},
	)

	rateLimitRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Total rate limited requests by route class",
		},
		[]string{"class"},
	)

	reviewDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_decisions_total",
			Help: "Total post review decisions by outcome",
		},
		[]string{"status"},
	)
)

// Runtime metrics
var (
	heapAllocBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "heap_alloc_bytes",
		Help: "Bytes of allocated heap objects",
	})

	gcTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gc_cycles_total",
		Help: "Completed GC cycles",
	})
)

type MonitoringService struct {
	context.DefaultService

	port     int
	register *prometheus.Registry
	server   *fiber.App
	closed   chan struct{}
}

func (svc MonitoringService) Id() string {
	return MONITORING_SVC
}

func (svc *MonitoringService) Configure(ctx *context.Context) error {
	svc.closed = make(chan struct{}, 1)
	return svc.DefaultService.Configure(ctx)
}

func (svc *MonitoringService) Start() error {
	port, err := strconv.Atoi(os.Getenv("PROMETHEUS_PORT"))
	if err != nil {
		port = DEFAULT_PROMETHEUS_PORT
	}
	svc.port = port

	reg := prometheus.NewRegistry()

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	reg.MustRegister(
		adminSearchesTotal,
		rateLimitRejectionsTotal,
		reviewDecisionsTotal,
		heapAllocBytes,
		gcTotal,
	)

	svc.register = reg

	go svc.updateMemoryMetrics()

	config := fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		},
	}

	svc.server = fiber.New(config)
	svc.server.Use(recover.New())

	svc.server.Get("/metrics", svc.metricsHandler)
	svc.server.Get("/health", svc.healthHandler)

	log.Info().Int("port", svc.port).Msg("Prometheus metrics server started")
	return svc.server.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *MonitoringService) Shutdown() {
	svc.closed <- struct{}{}
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *MonitoringService) metricsHandler(c *fiber.Ctx) error {
	handler := promhttp.HandlerFor(svc.register, promhttp.HandlerOpts{})
	return adaptor.HTTPHandler(handler)(c)
}

func (svc *MonitoringService) healthHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "healthy",
		"service":   SERVICE_NAME,
		"timestamp": time.Now().Unix(),
	})
}

func (svc *MonitoringService) updateMemoryMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-svc.closed:
			return
		case <-ticker.C:
			var stats runtime.MemStats
			runtime.ReadMemStats(&stats)

			heapAllocBytes.Set(float64(stats.HeapAlloc))
			gcTotal.Set(float64(stats.NumGC))
		}
	}
}
