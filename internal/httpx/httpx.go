package httpx

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-formbuilder/internal/log"
)

// LogInternalError logs an error and sends a 500 with the default text.
func LogInternalError(w http.ResponseWriter, code string, err error) {
	log.Errorf("%s: %s", code, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// LogNotFound logs a debug message and sends a 404.
func LogNotFound(w http.ResponseWriter, code string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	w.WriteHeader(http.StatusNotFound)
}

// LogStatus logs an error code at the given level and sends an HTTP response
// with the status' default text.
func LogStatus(w http.ResponseWriter, status int, level log.Level, code string) {
	log.Log(level, code)
	http.Error(w, http.StatusText(status), status)
}

// LogStatusMsg logs an error code and message at the given level and sends
// the formatted message with the given status.
func LogStatusMsg(w http.ResponseWriter, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	http.Error(w, errMsg, status)
}
