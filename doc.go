// Package gcapi is a Go client for the GCA REST API: user experience,
// stats, short links and moderation warns.
//
// # Installation
//
//	go get github.com/gca-community/gcapi-go
//
// # Quick Start
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//		"os"
//
//		gcapi "github.com/gca-community/gcapi-go"
//	)
//
//	func main() {
//		client, err := gcapi.NewClient(gcapi.Config{
//			APIKey: os.Getenv("GCAPI_API_KEY"),
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer client.Close()
//
//		resp, err := client.GetUserExperience("76561198000000000")
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(string(resp.Body))
//	}
//
// # Operations
//
//   - GetUserExperience: GET /users/{id}/experience
//   - UpdateStats: PUT /stats/{name} with {"value", "append"}
//   - CreateShortLink: POST /shortlinks with {"url", "code"?, "expires_at"?}
//   - GetUserWarns: GET /users/{id}/warn
//   - CreateUserWarn: POST /users/{id}/warn with {"banned_by", "reason"}
//
// Every operation has a WithContext variant.
//
// # Errors
//
// A response whose body carries a non-empty "errorMessages" list is returned
// as *APIError, its message being the list joined with ", ". Errors raised by
// the transport are returned unchanged; the default HTTP transport reports
// non-2xx statuses as *StatusError (see IsNotFound, IsUnauthorized,
// IsRateLimited). There are no automatic retries.
//
// # Transports
//
// Config.Transport accepts any Transport. TransportFunc adapts a plain
// function, which is handy in tests.
//
// # Environment Variables
//
// LoadConfig and NewClientFromEnv read:
//
//   - GCAPI_API_KEY: API key (required)
//   - GCAPI_HOST: API host (defaults to api.g-ca.fr)
//   - GCAPI_PROTOCOL: http or https (defaults to https)
//   - GCAPI_API_VERSION: API version (defaults to 1)
//   - GCAPI_TIMEOUT: request timeout as a Go duration, e.g. 1500ms
//   - GCAPI_DEBUG: log every request and response at debug level
//   - GCAPI_RATE_LIMIT, GCAPI_RATE_BURST: client-side requests per second
//   - GCAPI_PROXY: proxy URL for the default transport
package gcapi
