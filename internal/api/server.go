package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/limbo/waypoint/internal/service"
)

type Server struct {
	mx               *chi.Mux
	userService      service.UserServiceI
	goalsService     service.GoalsServiceI
	entriesService   service.EntriesServiceI
	memosService     service.MemosServiceI
	dashboardService service.DashboardServiceI
	jwtService       JWTServiceI
}

type ServicesList struct {
	UserService      service.UserServiceI
	GoalsService     service.GoalsServiceI
	EntriesService   service.EntriesServiceI
	MemosService     service.MemosServiceI
	DashboardService service.DashboardServiceI
	JwtService       JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:               chi.NewMux(),
		userService:      servicesOptions.UserService,
		goalsService:     servicesOptions.GoalsService,
		entriesService:   servicesOptions.EntriesService,
		memosService:     servicesOptions.MemosService,
		dashboardService: servicesOptions.DashboardService,
		jwtService:       servicesOptions.JwtService,
	}
}

func (s *Server) setupRoutes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Delete("/account", s.DeleteAccount)
			r.Get("/dashboard", s.GetDashboard)
			r.Route("/goals", func(r chi.Router) {
				r.Post("/", s.CreateGoal)
				r.Get("/", s.GetGoals)
				r.Get("/{id}", s.GetGoal)
				r.Put("/{id}", s.UpdateGoal)
				r.Delete("/{id}", s.DeleteGoal)
				r.Patch("/{id}/pin", s.PinGoal)
				r.Get("/{id}/detail", s.GetGoalDetail)
				r.Post("/{id}/entries", s.LogEntry)
				r.Get("/{id}/entries", s.GetEntries)
			})
			r.Delete("/entries/{id}", s.DeleteEntry)
			r.Route("/memos", func(r chi.Router) {
				r.Get("/", s.GetMemos)
				r.Put("/{topic}", s.SaveMemo)
				r.Get("/{topic}", s.GetMemo)
				r.Delete("/{topic}", s.DeleteMemo)
			})
		})
	})
}

func (s *Server) Run(addr string) error {
	s.setupRoutes()
	return http.ListenAndServe(addr, s.mx)
}

// Handler exposes the routed mux, used by the handler tests.
func (s *Server) Handler() http.Handler {
	s.setupRoutes()
	return s.mx
}
