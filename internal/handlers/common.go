package handlers

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"velodrive/internal/common"

	"github.com/labstack/echo/v4"
)

type okResponse struct {
	OK bool `json:"ok"`
}

type itemResponse struct {
	OK   bool        `json:"ok"`
	Item interface{} `json:"item"`
}

func sendItem(c echo.Context, status int, item interface{}) error {
	return c.JSON(status, itemResponse{OK: true, Item: item})
}

func sendOK(c echo.Context) error {
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// HTTPErrorHandler renders every error that reaches echo as the failure
// envelope. Router errors keep their status.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		status  int
		failure *common.Failure
	)
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		message, isString := he.Message.(string)
		if !isString {
			message = http.StatusText(he.Code)
		}
		failure = common.CreateFailure(httpErrorCode(he.Code), message, "")
	} else {
		status, failure = common.ClassifyError(err)
	}

	if status >= http.StatusInternalServerError {
		log.Printf("ERROR: request_id=%s %s %s: %v", common.GetRequestIDFromContext(c.Request().Context()), c.Request().Method, c.Path(), err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, failure)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

func httpErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	default:
		if status >= http.StatusInternalServerError {
			return "INTERNAL_ERROR"
		}
		return "HTTP_ERROR"
	}
}

// Query parameters that cannot be read are treated as absent.

func queryInt(c echo.Context, name string) *int {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if f > math.MaxInt32 {
		f = math.MaxInt32
	}
	if f < math.MinInt32 {
		f = math.MinInt32
	}
	v := int(f)
	return &v
}

// queryID accepts positive integer ids only. Zero, negative or non-numeric
// ids drop the filter, so categoryId=-1 lists every category.
func queryID(c echo.Context, name string) *int64 {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

func queryString(c echo.Context, name string) *string {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil
	}
	return &raw
}

func queryBool(c echo.Context, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.QueryParam(name))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
