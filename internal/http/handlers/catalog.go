package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/competence-backend/internal/http/response"
	"github.com/yungbote/competence-backend/internal/platform/apierr"
	"github.com/yungbote/competence-backend/internal/platform/logger"
)

const (
	mimeJSON       = "application/json"
	mimeMergePatch = "application/merge-patch+json"

	codeUnsupportedMedia = "unsupported_media_type"
)

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// writeID parses :id on a write route; a malformed id is answered as idinvalid.
func writeID(c *gin.Context, alerts response.Alerts, entity string) (int64, bool) {
	id, ok := pathID(c)
	if !ok {
		alerts.Failure(c, entity, apierr.CodeIDInvalid)
		response.RespondError(c, http.StatusBadRequest, apierr.CodeIDInvalid, fmt.Errorf("invalid id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

// readID parses :id on a read route; a malformed id names no resource.
func readID(c *gin.Context, entity string) (int64, bool) {
	id, ok := pathID(c)
	if !ok {
		response.RespondError(c, http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("%s not found", entity))
		return 0, false
	}
	return id, true
}

func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidBody, err)
		return false
	}
	return true
}

// bindPatch accepts plain JSON and JSON merge patch bodies.
func bindPatch(c *gin.Context, dst any) bool {
	if ct := c.GetHeader("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || (mt != mimeJSON && mt != mimeMergePatch) {
			response.RespondError(c, http.StatusUnsupportedMediaType, codeUnsupportedMedia, fmt.Errorf("unsupported content type %q", ct))
			return false
		}
	}
	return bindBody(c, dst)
}

func location(plural string, id int64) string {
	return fmt.Sprintf("/api/%s/%d", plural, id)
}

// writeFailed answers a rejected write, adding the failure alert for
// validation errors.
func writeFailed(c *gin.Context, log *logger.Logger, alerts response.Alerts, entity string, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) && ae.IsValidation() {
		alerts.Failure(c, entity, ae.Code)
	}
	response.RespondAPIError(c, log, err)
}
