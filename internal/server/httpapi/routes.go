package httpapi

import "github.com/gin-gonic/gin"

// route declares one endpoint: its method/path, whether it is exempt
// from authentication, and the guard stages that must pass before the
// handler runs. Routes are protected unless explicitly marked public.
type route struct {
	method  string
	path    string
	public  bool
	guards  []gin.HandlerFunc
	handler gin.HandlerFunc
}

// routes is the static endpoint table. It is built once at router
// construction and never mutated afterwards; the authentication guard
// consults the derived public-route set on every request.
func (s *Server) routes() []route {
	return []route{
		{method: "POST", path: "/users/register", public: true, handler: s.registerUser},
		{method: "POST", path: "/users/login", public: true, handler: s.loginUser},
		{method: "GET", path: "/users/me", handler: s.me},
		{method: "PATCH", path: "/users/:id", guards: []gin.HandlerFunc{s.requireSelf()}, handler: s.updateUser},
		{method: "DELETE", path: "/users/:id", guards: []gin.HandlerFunc{s.requireSelf()}, handler: s.deleteUser},

		{method: "POST", path: "/posts", handler: s.createPost},
		{method: "GET", path: "/posts", public: true, handler: s.listPosts},
		{method: "GET", path: "/posts/:id", public: true, handler: s.getPost},
		{method: "PATCH", path: "/posts/:id", guards: []gin.HandlerFunc{s.requirePostAuthor()}, handler: s.updatePost},
		{method: "DELETE", path: "/posts/:id", guards: []gin.HandlerFunc{s.requirePostAuthor()}, handler: s.deletePost},
	}
}

// Router assembles the gin engine: request logging and panic recovery
// first, then the authentication guard, then per-route guard chains.
func (s *Server) Router() *gin.Engine {
	routes := s.routes()

	public := make(map[string]bool, len(routes))
	for _, rt := range routes {
		if rt.public {
			public[rt.method+" "+rt.path] = true
		}
	}

	r := gin.New()
	r.Use(s.requestLogger(), gin.Recovery(), s.authGuard(public))

	for _, rt := range routes {
		handlers := append(append([]gin.HandlerFunc{}, rt.guards...), rt.handler)
		r.Handle(rt.method, rt.path, handlers...)
	}

	return r
}
