package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig controls which browser origins may drive the desktop.
type CORSConfig struct {
	Origins []string
	MaxAge  time.Duration
}

var (
	corsMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsHeaders = []string{"Content-Type", "Accept", "Origin", "Cache-Control", RequestIDHeader}
)

// DefaultCORSConfig accepts any origin.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{Origins: []string{"*"}, MaxAge: 12 * time.Hour}
}

// ParseOrigins splits a comma separated origin list. An empty list means any origin.
func ParseOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, strings.TrimSuffix(o, "/"))
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func (c CORSConfig) wildcard() bool {
	for _, o := range c.Origins {
		if o == "*" {
			return true
		}
	}
	return len(c.Origins) == 0
}

// CORS creates the CORS middleware. Credentials are only allowed for an
// explicit origin list since browsers reject them with a wildcard.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:  corsMethods,
		AllowHeaders:  corsHeaders,
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        cfg.MaxAge,
	}
	if cfg.wildcard() {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = cfg.Origins
		conf.AllowCredentials = true
	}
	return cors.New(conf)
}
