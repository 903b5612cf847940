package httpserver

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// VersionHeader es la cabecera con la versión de API que respondió.
const VersionHeader = "X-API-Version"

// APIVersion describe una versión publicada de la API.
type APIVersion struct {
	Version         string     `json:"version"`
	BasePath        string     `json:"basePath"`
	Deprecated      bool       `json:"isDeprecated"`
	DeprecationDate *time.Time `json:"deprecationDate,omitempty"`
	SunsetDate      *time.Time `json:"sunsetDate,omitempty"`
	Description     string     `json:"description"`
}

const (
	V1 = "v1"
	V2 = "v2"
)

// APIVersions es el registro de versiones, en orden.
var APIVersions = []APIVersion{
	{
		Version:     V1,
		BasePath:    "/api/v1",
		Description: "Initial API version - Returns simple greeting message",
	},
	{
		Version:     V2,
		BasePath:    "/api/v2",
		Description: "Enhanced API version - Includes timestamp and version information",
	},
}

// LookupVersion busca una versión por nombre.
func LookupVersion(version string) (APIVersion, bool) {
	return lo.Find(APIVersions, func(v APIVersion) bool { return v.Version == version })
}

// VersionGroup crea el grupo /api/<version> con la cabecera de versión
// y, si está deprecada, las cabeceras Deprecation y Sunset.
func VersionGroup(r gin.IRouter, version string) *gin.RouterGroup {
	v, ok := LookupVersion(version)
	if !ok {
		v = APIVersion{Version: version, BasePath: "/api/" + version}
	}
	return r.Group(v.BasePath, versionHeaders(v))
}

func versionHeaders(v APIVersion) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header(VersionHeader, v.Version)
		if v.Deprecated {
			c.Header("Deprecation", "true")
			if v.SunsetDate != nil {
				c.Header("Sunset", v.SunsetDate.UTC().Format(time.RFC1123))
			}
		}
		c.Next()
	}
}
