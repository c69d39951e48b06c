package client

import (
	"fmt"
	"strings"

	"github.com/rezonia/avalara-go/internal/transport"
)

// ServiceError is returned when the service accepts a request but reports
// a ResultCode of Error
type ServiceError struct {
	Endpoint string
	Messages []string
	Response transport.Response
}

func (e *ServiceError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("%s: service returned an error", e.Endpoint)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, strings.Join(e.Messages, "; "))
}

// NewServiceError collects message summaries from a failed response
func NewServiceError(endpoint string, resp transport.Response) *ServiceError {
	err := &ServiceError{Endpoint: endpoint, Response: resp}
	items, _ := resp["Messages"].([]interface{})
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if s, _ := m["Summary"].(string); s != "" {
			err.Messages = append(err.Messages, s)
		}
	}
	return err
}
