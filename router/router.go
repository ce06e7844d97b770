package router

import (
	"net/http"

	"active-teams-api/common"
	"active-teams-api/handler"
	"active-teams-api/model"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "active-teams-api/docs"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Person    *handler.PersonHandler
	Event     *handler.EventHandler
	CellGroup *handler.CellGroupHandler
	Task      *handler.TaskHandler
	AuthMW    *handler.AuthMiddleware
}

// NewRouter declares every route with its role requirements in one place.
// Authentication failures are 401s, role failures 403s; both are produced
// by the middleware, not by handlers.
func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()
	m := h.AuthMW

	wrap := handler.ErrorHandlingMiddleware

	// authed requires a valid access token only.
	authed := func(fn func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return m.Authenticate(wrap(fn))
	}
	// registrant requires the registrant role (admins bypass).
	registrant := func(fn func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return m.Authenticate(m.RequireRole(model.RoleRegistrant)(wrap(fn)))
	}
	// admin is an empty allow-list: only the admin bypass passes it.
	admin := func(fn func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return m.Authenticate(m.RequireRole()(wrap(fn)))
	}

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Session endpoints.
	mux.Handle("POST /signup", wrap(h.Auth.Signup))
	mux.Handle("POST /login", wrap(h.Auth.Login))
	mux.Handle("POST /token/refresh", wrap(h.Auth.Refresh))
	mux.Handle("POST /api/logout", authed(h.Auth.Logout))

	// People registry.
	mux.Handle("POST /api/people", registrant(h.Person.CreatePerson))
	mux.Handle("GET /api/people", authed(h.Person.ListPeople))
	mux.Handle("GET /api/people/search", authed(h.Person.SearchPeople))
	mux.Handle("GET /api/people/{id}", authed(h.Person.GetPerson))
	mux.Handle("PUT /api/people/{id}", registrant(h.Person.UpdatePerson))
	mux.Handle("DELETE /api/people/{id}", registrant(h.Person.DeletePerson))

	// Events and attendance.
	mux.Handle("POST /api/events", registrant(h.Event.CreateEvent))
	mux.Handle("GET /api/events", authed(h.Event.ListEvents))
	mux.Handle("GET /api/events/{id}", authed(h.Event.GetEvent))
	mux.Handle("GET /api/events/{id}/checkins", registrant(h.Event.ListCheckins))
	mux.Handle("POST /api/checkin", registrant(h.Event.CheckIn))
	mux.Handle("POST /api/uncapture", registrant(h.Event.CheckOut))

	// Cell groups. Creation is open to any authenticated user, who becomes
	// the group's leader; membership changes are authorized in the service.
	mux.Handle("POST /api/cell-groups", authed(h.CellGroup.CreateCellGroup))
	mux.Handle("GET /api/cell-groups", authed(h.CellGroup.ListCellGroups))
	mux.Handle("GET /api/cell-groups/{id}/meetings", authed(h.CellGroup.UpcomingMeetings))
	mux.Handle("GET /api/cell-groups/{id}/members", authed(h.CellGroup.ListMembers))
	mux.Handle("POST /api/cell-groups/{id}/members", authed(h.CellGroup.AddMember))
	mux.Handle("DELETE /api/cell-groups/{id}/members/{personID}", authed(h.CellGroup.RemoveMember))

	// Follow-up tasks.
	mux.Handle("POST /api/tasks", authed(h.Task.CreateTask))
	mux.Handle("GET /api/tasks", authed(h.Task.ListTasks))
	mux.Handle("POST /api/tasks/{id}/complete", authed(h.Task.CompleteTask))

	// Admin.
	mux.Handle("GET /api/admin/users", admin(h.User.ListUsers))
	mux.Handle("PATCH /api/admin/users/{id}/role", admin(h.User.UpdateUserRole))

	return mux
}
