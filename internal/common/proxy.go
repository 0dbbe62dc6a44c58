package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Returned when the local rate limiter sheds a non vital request
var ErrRateLimited = errors.New("request rejected by rate limiter")

const (
	OK                     int = 200
	CREATED                int = 201
	NO_CONTENT             int = 204
	BAD_REQUEST            int = 400
	UNAUTHORIZED           int = 401
	FORBIDDEN              int = 403
	DATA_NOT_FOUND         int = 404
	METHOD_NOT_ALLOWED     int = 405
	CONFLICT               int = 409
	UNSUPPORTED_MEDIA_TYPE int = 415
	RATE_LIMIT_EXCEEDED    int = 429
	INTERNAL_SERVER_ERROR  int = 500
	BAD_GATEWAY            int = 502
	SERVICE_UNAVAILABLE    int = 503
	GATEWAY_TIMEOUT        int = 504
)

var messages = map[int]string{
	OK:                     "OK",
	CREATED:                "Created",
	NO_CONTENT:             "No content",
	BAD_REQUEST:            "Bad request",
	UNAUTHORIZED:           "Unauthorized",
	FORBIDDEN:              "Forbidden",
	DATA_NOT_FOUND:         "Data not found",
	METHOD_NOT_ALLOWED:     "Method not allowed",
	CONFLICT:               "Conflict",
	UNSUPPORTED_MEDIA_TYPE: "Unsupported media type",
	RATE_LIMIT_EXCEEDED:    "Rate limit exceeded",
	INTERNAL_SERVER_ERROR:  "Internal server error",
	BAD_GATEWAY:            "Bad gateway",
	SERVICE_UNAVAILABLE:    "Service unavailable",
	GATEWAY_TIMEOUT:        "Gateway timeout",
}

type Proxy struct {
	header      map[string]string
	client      http.Client
	rateLimiter RateLimiter
}

func NewProxy(header map[string]string, restrictions []Restriction) Proxy {
	return Proxy{header, http.Client{}, NewRateLimiter(restrictions)}
}

// Perform a GET request to the provided url, indicating if it is vital.
// The request will be performed depending on the status of the rate limiter
func (proxy *Proxy) Get(url string, timeout time.Duration, vital bool) ([]byte, error) {
	return proxy.request("GET", url, nil, timeout, vital)
}

// Perform a POST request with an optional JSON body
func (proxy *Proxy) Post(url string, body []byte, timeout time.Duration, vital bool) ([]byte, error) {
	return proxy.request("POST", url, body, timeout, vital)
}

func (proxy *Proxy) request(method string, url string, body []byte, timeout time.Duration, vital bool) ([]byte, error) {

	// ask for permission to execute the request
	// and wait if necessary
	allowedChan := make(chan bool)
	go proxy.rateLimiter.Allowed(vital, allowedChan)
	allowed := <-allowedChan
	if !allowed {
		log.Warn().Msg("Rate limiter is not allowing the request")
		return nil, ErrRateLimited
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Create the request and add the header
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	request, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not create request for url %s", url))
		return nil, err
	}
	for key, value := range proxy.header {
		request.Header.Set(key, value)
	}

	// Perform the request
	res, err := proxy.client.Do(request)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not perform request to url %s", url))
		return nil, err
	}
	defer res.Body.Close()

	// Check if the status of the request is understood
	message, ok := messages[res.StatusCode]
	if !ok {
		log.Error().Msg(fmt.Sprintf("Status code of request (%d) is not understood", res.StatusCode))
		return nil, fmt.Errorf("unexpected status code %d", res.StatusCode)
	}
	log.Debug().Msg(fmt.Sprintf("%d %s", res.StatusCode, message))

	switch res.StatusCode {
	case OK, CREATED:
		// Read the response
		stream, err := io.ReadAll(res.Body)
		if err != nil {
			log.Debug().Msg(fmt.Sprintf("Could not extract the response for url %s", url))
			return nil, err
		}
		return stream, nil
	case NO_CONTENT:
		return nil, nil
	case RATE_LIMIT_EXCEEDED:
		proxy.rateLimiter.ReceivedRateLimit()
		return nil, fmt.Errorf("%d %s", res.StatusCode, message)
	default:
		return nil, fmt.Errorf("%d %s", res.StatusCode, message)
	}
}
