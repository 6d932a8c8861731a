package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RespondJSONWithETag writes the payload with a strong ETag and short-circuits
// to 304 when the client already holds the current version.
func RespondJSONWithETag(ctx *gin.Context, status int, payload interface{}) {
	body, err := json.Marshal(payload)

	if err != nil {
		// fall back to a plain response rather than failing the request
		ctx.JSON(status, payload)
		return
	}

	sum := sha256.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:]) + `"`

	ctx.Header("ETag", etag)

	if etagMatches(ctx.GetHeader("If-None-Match"), etag) {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.Data(status, "application/json; charset=utf-8", body)
}

func etagMatches(ifNoneMatch, etag string) bool {
	ifNoneMatch = strings.TrimSpace(ifNoneMatch)

	if ifNoneMatch == "" {
		return false
	}

	if ifNoneMatch == "*" {
		return true
	}

	for _, part := range strings.Split(ifNoneMatch, ",") {
		part = strings.TrimSpace(part)

		// weak validators compare equal to their strong form here
		part = strings.TrimPrefix(part, "W/")

		if part == etag {
			return true
		}
	}

	return false
}
