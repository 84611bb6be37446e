package router

import (
	"github.com/oksasatya/noteful/internal/application"
	"github.com/oksasatya/noteful/internal/container"
	"github.com/oksasatya/noteful/internal/domain/entity"
	handlers "github.com/oksasatya/noteful/internal/interface/http"
	"github.com/oksasatya/noteful/internal/interface/middleware"
	"github.com/oksasatya/noteful/internal/router/modules"
	"github.com/oksasatya/noteful/pkg/helpers"
)

// Deps holds the handlers and guards shared by the feature modules.
type Deps struct {
	Auth    *handlers.AuthHandler
	Users   *handlers.UserHandler
	Folders *handlers.NamedHandler[entity.Folder]
	Tags    *handlers.NamedHandler[entity.Tag]
	Notes   *handlers.NoteHandler
	Health  *handlers.HealthHandler
	Guard   modules.Guard
}

func buildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	st := container.GetStores()
	hasher := helpers.BcryptHasher{Cost: cfg.BcryptCost}

	authSvc := application.NewAuthService(st.Users, hasher, container.GetJWT(), logger)

	userSvc := application.NewUserService(st.Users, hasher, logger)
	if cfg.MailSendEnabled {
		if pub := container.GetRabbitPub(); pub != nil {
			userSvc.WithSignupNotifications(pub, cfg.AppName, cfg.MailNotifyTo)
		}
	}

	cascade := application.NewCascadeCoordinator(st.Tx, st.Folders, st.Tags, st.Notes, logger)
	cascade.Metrics = container.GetMetrics()

	validator := application.NewReferenceValidator(st.Folders, st.Tags)

	return Deps{
		Auth:    handlers.NewAuthHandler(authSvc, logger),
		Users:   handlers.NewUserHandler(userSvc, logger),
		Folders: handlers.NewFolderHandler(application.NewFolderService(st.Folders, cascade, logger), logger),
		Tags:    handlers.NewTagHandler(application.NewTagService(st.Tags, cascade, logger), logger),
		Notes:   handlers.NewNoteHandler(application.NewNoteService(st.Notes, st.Tags, validator, logger), logger),
		Health:  &handlers.HealthHandler{Store: pingFunc(st.Ping)},
		Guard:   newGuard(authSvc),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	d := buildDeps()
	r.Add(modules.NewAuthModule(d.Auth, d.Guard))
	r.Add(modules.NewUserModule(d.Users, d.Guard))
	r.Add(modules.NewNamedModule("/folders", d.Folders, d.Guard))
	r.Add(modules.NewNamedModule("/tags", d.Tags, d.Guard))
	r.Add(modules.NewNoteModule(d.Notes, d.Guard))
	r.AddRoot(modules.NewOpsModule(d.Health, container.GetMetricsRegistry()))
}

func newGuard(auth *application.AuthService) modules.Guard {
	cfg := container.GetConfig()
	rec := container.GetMetrics()
	g := modules.Guard{Auth: middleware.Auth(auth)}
	if !cfg.RateLimitEnabled {
		return g
	}
	newLimiter := func(max int) middleware.Limiter {
		if rdb := container.GetRedis(); rdb != nil {
			return middleware.NewRedisLimiter(rdb, max, cfg.RateLimitWindow)
		}
		return middleware.NewLocalLimiter(max, cfg.RateLimitWindow)
	}
	allow := bypass(cfg.RateLimitBypassPrivate, cfg.BypassPaths())
	g.Login = middleware.RateLimit(newLimiter(cfg.RateLimitLogin), middleware.KeyByIPAndPath(), allow, rec)
	g.Register = middleware.RateLimit(newLimiter(cfg.RateLimitRegister), middleware.KeyByIPAndPath(), allow, rec)
	g.API = middleware.RateLimit(newLimiter(cfg.RateLimitAPI), middleware.KeyByUserID(), allow, rec)
	return g
}

// bypass returns nil when no rule is configured.
func bypass(privateIPs bool, paths []string) middleware.AllowFunc {
	var rules []middleware.AllowFunc
	if privateIPs {
		rules = append(rules, middleware.AllowPrivateIP())
	}
	if len(paths) > 0 {
		rules = append(rules, middleware.AllowPaths(paths...))
	}
	if len(rules) == 0 {
		return nil
	}
	return middleware.AnyAllow(rules...)
}
