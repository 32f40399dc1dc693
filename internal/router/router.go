package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ceordev/pos-ventas/internal/config"
	"github.com/ceordev/pos-ventas/internal/handler"
	"github.com/ceordev/pos-ventas/internal/middleware"
	"github.com/ceordev/pos-ventas/internal/repository"
	"github.com/ceordev/pos-ventas/internal/service"
	"github.com/ceordev/pos-ventas/internal/supabase"
)

// Services groups the long-lived application services so that cmd/server can
// run their startup sequence (session resolution, initial catalog load)
// after the engine is built.
type Services struct {
	Auth     *service.AuthService
	Catalogo *service.CatalogoService
	Caja     *service.CajaService
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Supabase client
func New(cfg *config.Config, db *supabase.Client) (*gin.Engine, *Services) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	empresaRepo := repository.NewEmpresaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	carrito := service.NewCarrito()
	catalogoSvc := service.NewCatalogoService(productoRepo, categoriaRepo, cfg.PageSize)
	cajaSvc := service.NewCajaService(cajaRepo, usuarioRepo, db.Auth())
	ventaSvc := service.NewVentaService(ventaRepo, carrito, catalogoSvc)
	authSvc := service.NewAuthService(db.Auth(), usuarioRepo, empresaRepo)
	imagenesSvc := service.NewImagenesService(db.Storage(), cfg.StorageBucket, cfg.StorageFolder, cfg.UploadTimeout())

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	ventasH := handler.NewVentasHandler(carrito, ventaSvc, cajaSvc, usuarioRepo, db.Auth())
	imagenesH := handler.NewImagenesHandler(imagenesSvc)
	diagnosticoH := handler.NewDiagnosticoHandler(db.Auth(), usuarioRepo, cajaSvc, imagenesSvc, cfg.AuthTimeout())

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, cfg.ConnectTimeout()))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
			auth.POST("/registro", authH.Registro)
			auth.POST("/logout", authH.Logout)
			auth.GET("/estado", authH.Estado)
			auth.POST("/empresa", authH.CrearEmpresa)
		}

		api.GET("/productos", catalogoH.Buscar)
		api.GET("/categorias", catalogoH.Categorias)

		carritoG := api.Group("/carrito")
		{
			carritoG.GET("", ventasH.VerCarrito)
			carritoG.POST("/items", ventasH.AgregarItem)
			carritoG.PUT("/items/:id/cantidad", ventasH.ActualizarCantidad)
			carritoG.PUT("/items/:id/descuento", ventasH.AplicarDescuento)
			carritoG.PUT("/items/:id/observacion", ventasH.ActualizarObservacion)
			carritoG.DELETE("/items/:id", ventasH.QuitarItem)
			carritoG.DELETE("", ventasH.VaciarCarrito)
		}
		api.POST("/ventas", ventasH.Cobrar)

		caja := api.Group("/caja")
		{
			caja.POST("/abrir", cajaH.Abrir)
			caja.POST("/cerrar", cajaH.Cerrar)
			caja.GET("/:id/datos-cierre", cajaH.DatosCierre)
			caja.GET("/estado", diagnosticoH.CajaEstado)
		}

		api.POST("/imagenes/productos", imagenesH.SubirProducto)

		// Deployment diagnostics
		api.POST("/test-auth", middleware.LoginRateLimiter(), diagnosticoH.TestAuth)
		api.GET("/storage/check", diagnosticoH.StorageCheck)
		api.POST("/storage/test", diagnosticoH.StorageTest)
	}

	return r, &Services{Auth: authSvc, Catalogo: catalogoSvc, Caja: cajaSvc}
}
