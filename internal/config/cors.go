package config

import "strings"

// CORSConfig defines the cross-origin policy applied to every route.  The
// browser front-end posts credentials, so AllowCredentials defaults to true
// and origins must be listed explicitly.
type CORSConfig struct {
    AllowOrigins     []string
    AllowCredentials bool
}

// LoadCORSConfig reads CORS_ALLOWED_ORIGINS (comma separated) and
// CORS_ALLOW_CREDENTIALS.  The default origin is the local Vite dev server.
func LoadCORSConfig() CORSConfig {
    return CORSConfig{
        AllowOrigins:     splitList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
        AllowCredentials: envBool("CORS_ALLOW_CREDENTIALS", true),
    }
}

func splitList(s string) []string {
    var out []string
    for _, p := range strings.Split(s, ",") {
        p = strings.TrimSpace(p)
        if p != "" {
            out = append(out, p)
        }
    }
    return out
}
