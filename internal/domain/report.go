package domain

import (
	"fmt"
	"time"
)

// ReportInfo describes the stored tabular report without its content.
type ReportInfo struct {
	Path       string
	Size       int64
	ModifiedAt time.Time
}

// CacheKey identifies one version of the report file.
func (i ReportInfo) CacheKey() string {
	return fmt.Sprintf("report:%s:%d:%d", i.Path, i.ModifiedAt.UnixNano(), i.Size)
}

// Report is the tabular report as served to clients.
type Report struct {
	ReportInfo
	Content []byte
}
