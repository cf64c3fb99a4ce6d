package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/app"
	"github.com/km-arc/go-inject/framework/container"
	gohttp "github.com/km-arc/go-inject/framework/http"
	"github.com/km-arc/go-inject/routing"
)

// ── Tokens ───────────────────────────────────────────────────────────────────

var (
	DSN      = container.NewToken[string]("dsn")
	Store    = container.NewToken[Storage]("store")
	Greeter  = container.NewToken[*GreetService]("greeter")
	Reporter = container.NewToken[*ReportService]("reporter")

	// Offline selects the in-memory store for whoever carries it.
	Offline = container.NewTag("offline")
)

// ── Services ─────────────────────────────────────────────────────────────────

type Storage interface {
	Name() string
}

type remoteStorage struct{ dsn string }

func (s *remoteStorage) Name() string { return "remote(" + s.dsn + ")" }

type memoryStorage struct{}

func (memoryStorage) Name() string { return "memory" }

// GreetService is built once per request container.
type GreetService struct {
	store Storage
	req   *http.Request
}

func (g *GreetService) Greet(name string) map[string]any {
	return map[string]any{
		"message": "Hello, " + name,
		"store":   g.store.Name(),
		"agent":   g.req.UserAgent(),
	}
}

// ReportService is tagged Offline and therefore gets the memory store.
type ReportService struct{ store Storage }

// ── Targets ──────────────────────────────────────────────────────────────────

var (
	NewRemoteStorage = container.Injected(container.NewTarget("NewRemoteStorage", func(dsn string) Storage {
		return &remoteStorage{dsn: dsn}
	}), DSN)

	NewMemoryStorage = container.NewTarget("NewMemoryStorage", func() Storage { return memoryStorage{} })

	NewGreetService = container.Injected(container.NewTarget("NewGreetService", func(s Storage, r *http.Request) *GreetService {
		return &GreetService{store: s, req: r}
	}), Store, gohttp.RequestToken)

	NewReportService = container.Tagged(container.Injected(container.NewTarget("NewReportService", func(s Storage) *ReportService {
		return &ReportService{store: s}
	}), Store), Offline)
)

// storageModule keeps the DSN private; only Store is lent to the app.
func storageModule() *container.DependencyModule {
	m := container.NewDependencyModule()
	m.Bind(DSN).ToConstant(os.Getenv("STORE_DSN"))
	m.Bind(Store).ToInstance(NewRemoteStorage).InSingletonScope()
	return m
}

func main() {
	application := app.New() // loads .env automatically

	application.Use(Store).From(storageModule())
	application.When(Offline).Bind(Store).ToInstance(NewMemoryStorage).InSingletonScope()
	application.Bind(Greeter).ToInstance(NewGreetService).InContainerScope()
	application.Bind(Reporter).ToInstance(NewReportService).InSingletonScope()

	r := application.Router()

	r.Get("/hello/{name}", func(w http.ResponseWriter, req *http.Request) {
		res := gohttp.NewResponse(w)
		greeter, err := gohttp.Resolve(req, Greeter)
		if err != nil {
			res.Failed(err)
			return
		}
		res.Success(greeter.Greet(routing.Param(req, "name")))
	})

	r.Get("/report", func(w http.ResponseWriter, req *http.Request) {
		res := gohttp.NewResponse(w)
		reporter, err := gohttp.Resolve(req, Reporter)
		if err != nil {
			res.Failed(err)
			return
		}
		res.Success(map[string]any{"store": reporter.store.Name()})
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Logger().Fatal("server failed", zap.Error(err))
	}
}
