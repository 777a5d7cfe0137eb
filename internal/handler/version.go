package handler

import "net/http"

// Build metadata, overridable at link time.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// VersionResponse reports the running build
type VersionResponse struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
}

// HandleVersion returns the running build metadata
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionResponse{
			Version:   Version,
			BuildTime: BuildTime,
		})
	}
}
