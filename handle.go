package authstate

import (
	"net/http"
	"strings"

	"github.com/cccteam/httpio"
	"github.com/cccteam/logger"
)

// handle adapts an error-returning guard handler into an
// http.HandlerFunc. Client-facing denials surface as info-level
// messages; anything else is an error.
func (c *Client) handle(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := handler(w, r)
		if err == nil {
			return
		}

		if httpio.CauseIsError(err) {
			logger.Req(r).Error(err)

			return
		}
		logger.Req(r).Infof("['%s']", strings.Join(httpio.Messages(err), "', '"))
	}
}
