package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/inspirefinder/likes-backend/internal/api/http"
	"github.com/inspirefinder/likes-backend/internal/api/http/middleware"
	"github.com/inspirefinder/likes-backend/internal/cache"
	cataloghttp "github.com/inspirefinder/likes-backend/internal/catalog/http"
	catalogrepo "github.com/inspirefinder/likes-backend/internal/catalog/repository"
	catalogsvc "github.com/inspirefinder/likes-backend/internal/catalog/service"
	likeshttp "github.com/inspirefinder/likes-backend/internal/likes/http"
	likesrepo "github.com/inspirefinder/likes-backend/internal/likes/repository"
	likessvc "github.com/inspirefinder/likes-backend/internal/likes/service"
	recommendhttp "github.com/inspirefinder/likes-backend/internal/recommend/http"
	recommendrepo "github.com/inspirefinder/likes-backend/internal/recommend/repository"
	recommendsvc "github.com/inspirefinder/likes-backend/internal/recommend/service"
	"github.com/inspirefinder/likes-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	SQLDB       *sql.DB
	Redis       *redis.Client
	Logger      *zap.Logger
	Defaults    recommendhttp.Defaults
}

func SetGinMode(env string) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestID(dep.Logger))

	aggCache := cache.New(dep.Redis)

	catalogHandler := cataloghttp.New(
		catalogsvc.NewCatalogService(catalogrepo.NewRepo(dep.DB), aggCache, dep.Logger),
	)
	catalogHandler.Register(api)

	likesHandler := likeshttp.New(
		likessvc.NewLikeService(likesrepo.NewLikeRepository(dep.DB), dep.Logger),
	)
	likesHandler.Register(api)

	engine := recommendsvc.NewEngine(
		recommendrepo.NewLikeStore(dep.DB),
		recommendrepo.NewPopularityStore(dep.SQLDB),
		aggCache,
		dep.Logger,
	)
	recommendHandler := recommendhttp.New(engine, users.NewRepo(dep.DB), aggCache, dep.Defaults)
	recommendHandler.Register(api)

	return r
}
