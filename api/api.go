package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/brightpath/academy/api/middleware"
	"github.com/brightpath/academy/api/web"
	"github.com/brightpath/academy/config"
	"github.com/brightpath/academy/core/auth"
	"github.com/brightpath/academy/core/certificate"
	"github.com/brightpath/academy/core/checkout"
	"github.com/brightpath/academy/core/course"
	"github.com/brightpath/academy/core/enrollment"
	"github.com/brightpath/academy/core/payment"
	"github.com/brightpath/academy/core/progress"
	"github.com/brightpath/academy/core/student"
	"github.com/brightpath/academy/rate"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/plutov/paypal/v4"
	"github.com/sirupsen/logrus"
	stripecl "github.com/stripe/stripe-go/v74/client"
)

type APIConfig struct {
	CorsOrigin       string
	Log              logrus.FieldLogger
	DB               *sqlx.DB
	Session          *scs.SessionManager
	Paypal           *paypal.Client
	Stripe           *stripecl.API
	StripeCfg        config.Stripe
	Providers        map[string]auth.Provider
	LoginRedirectURL string
	LoginLimiter     *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Session)
	admin := auth.Admin(cfg.Session)

	a.Handle(http.MethodPost, "/auth/signup", auth.HandleSignup(cfg.DB, cfg.Session))
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.DB, cfg.Session, cfg.LoginLimiter))
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session))
	a.Handle(http.MethodGet, "/auth/oauth-login/{provider}", auth.HandleOauthLogin(cfg.Session, cfg.Providers))
	a.Handle(http.MethodGet, "/auth/oauth-callback/{provider}", auth.HandleOauthCallback(cfg.DB, cfg.Session, cfg.Providers, cfg.LoginRedirectURL))

	a.Handle(http.MethodGet, "/students/current", student.HandleShowCurrent(cfg.DB), authen)
	a.Handle(http.MethodGet, "/students/{id}", student.HandleShow(cfg.DB), authen)

	a.Handle(http.MethodGet, "/courses/{course_id}/enrollments", enrollment.HandleListByCourse(cfg.DB), admin)
	a.Handle(http.MethodPost, "/courses/{course_id}/modules", course.HandleCreateModule(cfg.DB), admin)
	a.Handle(http.MethodGet, "/courses/{id}", course.HandleShow(cfg.DB))
	a.Handle(http.MethodGet, "/courses", course.HandleList(cfg.DB))
	a.Handle(http.MethodPost, "/courses", course.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodPut, "/courses/{id}", course.HandleUpdate(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/courses/{id}", course.HandleDelete(cfg.DB), admin)

	a.Handle(http.MethodPost, "/modules/{module_id}/lessons", course.HandleCreateLesson(cfg.DB), admin)
	a.Handle(http.MethodPut, "/modules/{id}", course.HandleUpdateModule(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/modules/{id}", course.HandleDeleteModule(cfg.DB), admin)

	a.Handle(http.MethodGet, "/lessons/{id}/full", enrollment.HandleShowLessonFull(cfg.DB), authen)
	a.Handle(http.MethodGet, "/lessons/{id}/free", enrollment.HandleShowLessonFree(cfg.DB))
	a.Handle(http.MethodPut, "/lessons/{id}", course.HandleUpdateLesson(cfg.DB), admin)
	a.Handle(http.MethodDelete, "/lessons/{id}", course.HandleDeleteLesson(cfg.DB), admin)

	a.Handle(http.MethodPost, "/enrollments/free", enrollment.HandleEnrollFree(cfg.DB), authen)
	a.Handle(http.MethodGet, "/enrollments", enrollment.HandleList(cfg.DB), authen)
	a.Handle(http.MethodGet, "/enrollments/{id}", enrollment.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodPut, "/enrollments/{id}/lessons/{lesson_id}/complete", progress.HandleMarkComplete(cfg.DB), authen)
	a.Handle(http.MethodGet, "/enrollments/{id}/progress", progress.HandleList(cfg.DB), authen)
	a.Handle(http.MethodPost, "/enrollments/{id}/certificate", certificate.HandleIssue(cfg.DB), authen)

	a.Handle(http.MethodGet, "/payments", payment.HandleList(cfg.DB), authen)

	a.Handle(http.MethodPost, "/checkout/paypal", checkout.HandlePaypalCheckout(cfg.DB, cfg.Paypal), authen)
	a.Handle(http.MethodPost, "/checkout/paypal/{id}/capture", checkout.HandlePaypalCapture(cfg.DB, cfg.Paypal), authen)
	a.Handle(http.MethodPost, "/checkout/stripe", checkout.HandleStripeCheckout(cfg.DB, cfg.Stripe, cfg.StripeCfg), authen)
	a.Handle(http.MethodPost, "/checkout/stripe/capture", checkout.HandleStripeCapture(cfg.DB, cfg.StripeCfg))

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {
	handler = web.WrapMiddleware(mw, handler)
	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {
			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
