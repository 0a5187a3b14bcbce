// Package swagger serves the generated OpenAPI assets.
package swagger

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

const assetsEnv = "SWAGGER_ASSETS_DIR"

// Register mounts the OpenAPI assets directory under /v1/swagger. The
// directory defaults to docs/openapi next to the binary and can be moved with
// SWAGGER_ASSETS_DIR.
func Register(router *gin.Engine) {
	dir := os.Getenv(assetsEnv)
	if dir == "" {
		dir = filepath.Join(".", "docs", "openapi")
	}
	router.StaticFS("/v1/swagger", gin.Dir(dir, false))
}
