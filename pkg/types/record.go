// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Provider is the literal provider tag written at the start of every Agora record.
const Provider = `"MINHA CDN"`

// AgoraFields lists the Agora field names in output order.
var AgoraFields = []string{
	"provider",
	"http-method",
	"status-code",
	"uri-path",
	"time-taken",
	"response-size",
	"cache-status",
}

// LogRecord is one access-log entry, named by its Agora fields.
// Values are kept as the raw text tokens of the source line.
type LogRecord struct {
	HTTPMethod   string `json:"http_method" yaml:"http_method"`
	StatusCode   string `json:"status_code" yaml:"status_code"`
	URIPath      string `json:"uri_path" yaml:"uri_path"`
	TimeTaken    string `json:"time_taken" yaml:"time_taken"`
	ResponseSize string `json:"response_size" yaml:"response_size"`
	CacheStatus  string `json:"cache_status" yaml:"cache_status"`
}

// String renders the record as one Agora line, without a line terminator.
func (r LogRecord) String() string {
	return strings.Join([]string{
		Provider,
		r.HTTPMethod,
		r.StatusCode,
		r.URIPath,
		r.TimeTaken,
		r.ResponseSize,
		r.CacheStatus,
	}, " ")
}
